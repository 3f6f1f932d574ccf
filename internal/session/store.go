// Package session keeps per-client state (typed cart + admin capability) in
// redis under an opaque session id. State is a capability handed to handlers,
// not ambient global data.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"school-store/internal/cart"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type State struct {
	Cart    cart.Cart `json:"cart"`
	IsAdmin bool      `json:"is_admin"`
}

func NewState() *State { return &State{} }

type Store struct {
	client *redis.Client
	log    *zap.Logger
	ttl    time.Duration
}

func NewStore(addr, password string, db int, ttl time.Duration, log *zap.Logger) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis connected successfully", zap.String("addr", addr))

	return &Store{
		client: rdb,
		log:    log,
		ttl:    ttl,
	}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func sessionKey(sid string) string { return fmt.Sprintf("session:%s", sid) }

// Get возвращает состояние сессии; отсутствующий ключ — пустое состояние.
func (s *Store) Get(ctx context.Context, sid string) (*State, error) {
	raw, err := s.client.Get(ctx, sessionKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewState(), nil
	}
	if err != nil {
		return nil, err
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		// Битое состояние не должно ломать запрос — начинаем с чистой сессии
		s.log.Warn("corrupted session state, resetting", zap.String("sid", sid), zap.Error(err))
		return NewState(), nil
	}
	return &st, nil
}

// Save пишет состояние и продлевает TTL сессии.
func (s *Store) Save(ctx context.Context, sid string, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sid), raw, s.ttl).Err()
}

func (s *Store) Destroy(ctx context.Context, sid string) error {
	return s.client.Del(ctx, sessionKey(sid)).Err()
}
