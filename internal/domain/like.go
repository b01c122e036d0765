package domain

// Like связывает пользователя и понравившееся ему кафе,
// соответствует таблице likes. Пара (user_id, cafe_id) уникальна.
type Like struct {
	UserID int64 `json:"user_id" db:"user_id" gorm:"primaryKey;autoIncrement:false"`
	CafeID int64 `json:"cafe_id" db:"cafe_id" gorm:"primaryKey;autoIncrement:false"`
}

func (Like) TableName() string {
	return "likes"
}
