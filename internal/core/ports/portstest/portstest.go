// Package portstest содержит in-memory реализации портов для тестов.
package portstest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/GoArmGo/CafeApp/internal/messaging/payloads"
	"github.com/GoArmGo/CafeApp/internal/session"
)

// DefaultCities — те же города, что засевает миграция
func DefaultCities() []domain.City {
	return []domain.City{
		{Code: "berk", Name: "Berkeley", State: "CA"},
		{Code: "oak", Name: "Oakland", State: "CA"},
		{Code: "sf", Name: "San Francisco", State: "CA"},
	}
}

// CityStorage — справочник городов в памяти
type CityStorage struct {
	mu     sync.Mutex
	cities []domain.City
	Err    error
}

func NewCityStorage(cities ...domain.City) *CityStorage {
	if len(cities) == 0 {
		cities = DefaultCities()
	}
	return &CityStorage{cities: cities}
}

func (s *CityStorage) ListCities(ctx context.Context) ([]domain.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := append([]domain.City(nil), s.cities...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Add добавляет город, как будто его вставили в справочник.
func (s *CityStorage) Add(c domain.City) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = append(s.cities, c)
}

func (s *CityStorage) find(code string) (domain.City, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cities {
		if c.Code == code {
			return c, true
		}
	}
	return domain.City{}, false
}

// CafeStorage — кафе в памяти; проверяет ссылку на город, как внешний ключ
type CafeStorage struct {
	mu     sync.Mutex
	cities *CityStorage
	cafes  map[int64]domain.Cafe
	nextID int64
}

func NewCafeStorage(cities *CityStorage) *CafeStorage {
	return &CafeStorage{cities: cities, cafes: map[int64]domain.Cafe{}}
}

func (s *CafeStorage) details(c domain.Cafe) domain.CafeDetails {
	city, _ := s.cities.find(c.CityCode)
	return domain.CafeDetails{Cafe: c, CityName: city.Name, CityState: city.State}
}

func (s *CafeStorage) ListCafes(ctx context.Context) ([]domain.CafeDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CafeDetails, 0, len(s.cafes))
	for _, c := range s.cafes {
		out = append(out, s.details(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *CafeStorage) GetCafeByID(ctx context.Context, id int64) (*domain.CafeDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cafes[id]
	if !ok {
		return nil, domain.ErrCafeNotFound
	}
	d := s.details(c)
	return &d, nil
}

func (s *CafeStorage) CreateCafe(ctx context.Context, cafe *domain.Cafe) error {
	if _, ok := s.cities.find(cafe.CityCode); !ok {
		return fmt.Errorf("insert cafe: %w", domain.ErrCityNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	cafe.ID = s.nextID
	s.cafes[cafe.ID] = *cafe
	return nil
}

func (s *CafeStorage) UpdateCafe(ctx context.Context, cafe *domain.Cafe) error {
	if _, ok := s.cities.find(cafe.CityCode); !ok {
		return fmt.Errorf("update cafe: %w", domain.ErrCityNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cafes[cafe.ID]; !ok {
		return domain.ErrCafeNotFound
	}
	s.cafes[cafe.ID] = *cafe
	return nil
}

// UserStorage — пользователи в памяти с уникальным username
type UserStorage struct {
	mu     sync.Mutex
	users  map[int64]domain.User
	nextID int64
	// Err, если задан, возвращается из GetUserByUsername
	Err error
}

func NewUserStorage() *UserStorage {
	return &UserStorage{users: map[int64]domain.User{}}
}

func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = *user
	return nil
}

func (s *UserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s *UserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	s.users[user.ID] = *user
	return nil
}

// Count возвращает число пользователей с данным username.
func (s *UserStorage) Count(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, u := range s.users {
		if u.Username == username {
			n++
		}
	}
	return n
}

// Delete удаляет пользователя, чтобы проверить "висячий" ID в сессии.
func (s *UserStorage) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type likeKey struct{ userID, cafeID int64 }

// LikeStorage — лайки в памяти
type LikeStorage struct {
	mu    sync.Mutex
	cafes *CafeStorage
	likes map[likeKey]struct{}
}

func NewLikeStorage(cafes *CafeStorage) *LikeStorage {
	return &LikeStorage{cafes: cafes, likes: map[likeKey]struct{}{}}
}

func (s *LikeStorage) AddLike(ctx context.Context, userID, cafeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likes[likeKey{userID, cafeID}] = struct{}{}
	return nil
}

func (s *LikeStorage) RemoveLike(ctx context.Context, userID, cafeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.likes, likeKey{userID, cafeID})
	return nil
}

func (s *LikeStorage) HasLike(ctx context.Context, userID, cafeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.likes[likeKey{userID, cafeID}]
	return ok, nil
}

func (s *LikeStorage) ListLikedCafes(ctx context.Context, userID int64) ([]domain.Cafe, error) {
	s.mu.Lock()
	var ids []int64
	for k := range s.likes {
		if k.userID == userID {
			ids = append(ids, k.cafeID)
		}
	}
	s.mu.Unlock()

	var out []domain.Cafe
	for _, id := range ids {
		d, err := s.cafes.GetCafeByID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, d.Cafe)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SessionStore — серверные сессии в памяти
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session.Data
	flashes  map[string][]session.Flash
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: map[string]session.Data{},
		flashes:  map[string][]session.Flash{},
	}
}

func (s *SessionStore) Create(ctx context.Context) (*session.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := session.Data{ID: uuid.NewString(), CSRFToken: uuid.NewString()}
	s.sessions[d.ID] = d
	return &d, nil
}

func (s *SessionStore) Load(ctx context.Context, id string) (*session.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return &d, nil
}

func (s *SessionStore) BindUser(ctx context.Context, id string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.sessions[id]
	if !ok {
		return session.ErrSessionNotFound
	}
	d.UserID = userID
	s.sessions[id] = d
	return nil
}

func (s *SessionStore) UnbindUser(ctx context.Context, id string) error {
	return s.BindUser(ctx, id, 0)
}

func (s *SessionStore) AddFlash(ctx context.Context, id string, flash session.Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes[id] = append(s.flashes[id], flash)
	return nil
}

func (s *SessionStore) PopFlashes(ctx context.Context, id string) ([]session.Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes[id]
	delete(s.flashes, id)
	return out, nil
}

// Peek возвращает копию сессии без изменений.
func (s *SessionStore) Peek(id string) (session.Data, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.sessions[id]
	return d, ok
}

// Sessions возвращает все сессии.
func (s *SessionStore) Sessions() []session.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]session.Data, 0, len(s.sessions))
	for _, d := range s.sessions {
		out = append(out, d)
	}
	return out
}

// Publisher запоминает опубликованные задачи
type Publisher struct {
	mu       sync.Mutex
	Payloads []payloads.CafeImagePayload
	Err      error
}

func (p *Publisher) PublishCafeImage(ctx context.Context, payload payloads.CafeImagePayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Payloads = append(p.Payloads, payload)
	return nil
}

// Published возвращает копию опубликованных задач.
func (p *Publisher) Published() []payloads.CafeImagePayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]payloads.CafeImagePayload(nil), p.Payloads...)
}
