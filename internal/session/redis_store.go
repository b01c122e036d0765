package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	fieldUserID = "user_id"
	fieldCSRF   = "csrf_token"
)

// RedisStore хранит сессии в Redis: hash session:<id> и список session:<id>:flashes.
// TTL абсолютный: задаётся при создании и не продлевается.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisStore создаёт хранилище сессий поверх готового клиента Redis.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

// NewRedisClient разбирает REDIS_URL и проверяет соединение.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func sessionKey(id string) string { return "session:" + id }
func flashKey(id string) string   { return "session:" + id + ":flashes" }

// Create заводит новую анонимную сессию со своим CSRF-токеном.
func (s *RedisStore) Create(ctx context.Context) (*Data, error) {
	data := &Data{ID: uuid.NewString(), CSRFToken: uuid.NewString()}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, sessionKey(data.ID), fieldUserID, "0", fieldCSRF, data.CSRFToken)
		pipe.Expire(ctx, sessionKey(data.ID), s.ttl)
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create session", "error", err)
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Debug("session created", "session_id", data.ID)
	return data, nil
}

// Load читает сессию.
func (s *RedisStore) Load(ctx context.Context, id string) (*Data, error) {
	values, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		s.logger.Error("failed to load session", "session_id", id, "error", err)
		return nil, fmt.Errorf("load session: %w", err)
	}

	if len(values) == 0 {
		return nil, ErrSessionNotFound
	}

	userID, err := strconv.ParseInt(values[fieldUserID], 10, 64)
	if err != nil {
		s.logger.Warn("corrupted user id in session", "session_id", id, "value", values[fieldUserID])
		userID = 0
	}

	return &Data{ID: id, UserID: userID, CSRFToken: values[fieldCSRF]}, nil
}

// BindUser привязывает пользователя к существующей сессии.
func (s *RedisStore) BindUser(ctx context.Context, id string, userID int64) error {
	return s.setUser(ctx, id, userID)
}

// UnbindUser отвязывает пользователя; повторный вызов ничего не меняет.
func (s *RedisStore) UnbindUser(ctx context.Context, id string) error {
	return s.setUser(ctx, id, 0)
}

// setUserScript меняет поле только у существующей сессии, TTL ключа при этом сохраняется
var setUserScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
return 1
`)

func (s *RedisStore) setUser(ctx context.Context, id string, userID int64) error {
	updated, err := setUserScript.Run(ctx, s.client, []string{sessionKey(id)}, fieldUserID, strconv.FormatInt(userID, 10)).Int()
	if err != nil {
		s.logger.Error("failed to update session user", "session_id", id, "error", err)
		return fmt.Errorf("update session user: %w", err)
	}
	if updated == 0 {
		return ErrSessionNotFound
	}

	s.logger.Info("session user updated", "session_id", id, "user_id", userID)
	return nil
}

// AddFlash добавляет flash-сообщение в сессию.
func (s *RedisStore) AddFlash(ctx context.Context, id string, flash Flash) error {
	body, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, flashKey(id), body)
		pipe.Expire(ctx, flashKey(id), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

// PopFlashes возвращает накопленные flash-сообщения и очищает их.
func (s *RedisStore) PopFlashes(ctx context.Context, id string) ([]Flash, error) {
	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, flashKey(id), 0, -1)
		pipe.Del(ctx, flashKey(id))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("pop flashes: %w", err)
	}

	flashes := make([]Flash, 0, len(items.Val()))
	for _, raw := range items.Val() {
		var f Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			s.logger.Warn("skipping malformed flash", "session_id", id, "error", err)
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}
