package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoArmGo/CafeApp/internal/domain"
)

func newTestLikeStorage(t *testing.T) (*GormLikeStorage, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// одна in-memory бд на соединение
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&domain.City{}, &domain.Cafe{}, &domain.Like{}))

	require.NoError(t, db.Create(&domain.City{Code: "sf", Name: "San Francisco", State: "CA"}).Error)
	for _, name := range []string{"Zeitgeist", "Andytown", "Reveille"} {
		require.NoError(t, db.Create(&domain.Cafe{Name: name, Address: "somewhere", CityCode: "sf", ImageURL: domain.DefaultCafeImageURL}).Error)
	}

	return NewGormLikeStorage(db, slog.New(slog.NewTextHandler(io.Discard, nil))), db
}

func TestGormLikeStorage_AddAndRemove(t *testing.T) {
	storage, _ := newTestLikeStorage(t)
	ctx := context.Background()

	liked, err := storage.HasLike(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, storage.AddLike(ctx, 1, 2))
	// повторный лайк не ошибка и не дубликат
	require.NoError(t, storage.AddLike(ctx, 1, 2))

	liked, err = storage.HasLike(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, storage.RemoveLike(ctx, 1, 2))
	require.NoError(t, storage.RemoveLike(ctx, 1, 2))

	liked, err = storage.HasLike(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestGormLikeStorage_OnePerPair(t *testing.T) {
	storage, db := newTestLikeStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.AddLike(ctx, 1, 1))
	require.NoError(t, storage.AddLike(ctx, 1, 1))
	require.NoError(t, storage.AddLike(ctx, 2, 1))

	var count int64
	require.NoError(t, db.Model(&domain.Like{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGormLikeStorage_ListLikedCafes(t *testing.T) {
	storage, _ := newTestLikeStorage(t)
	ctx := context.Background()

	// id: 1 Zeitgeist, 2 Andytown, 3 Reveille
	require.NoError(t, storage.AddLike(ctx, 7, 1))
	require.NoError(t, storage.AddLike(ctx, 7, 2))
	require.NoError(t, storage.AddLike(ctx, 8, 3))

	cafes, err := storage.ListLikedCafes(ctx, 7)
	require.NoError(t, err)
	require.Len(t, cafes, 2)
	assert.Equal(t, "Andytown", cafes[0].Name)
	assert.Equal(t, "Zeitgeist", cafes[1].Name)

	cafes, err = storage.ListLikedCafes(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, cafes)
}
