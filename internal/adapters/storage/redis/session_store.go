// Package redis implementa el session store sobre Redis. El vencimiento lo maneja Redis (SET EX).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"animal-sos/internal/session"

	"github.com/go-redis/redis/v8"
)

const DefaultPrefix = "sess:"

type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

type SessionStore struct {
	c      *redis.Client
	prefix string
	ttl    time.Duration
	owned  bool
}

var _ session.Store = (*SessionStore)(nil)

// Connect crea el cliente y hace ping; el store es dueño del cliente y lo cierra en Close.
func Connect(ctx context.Context, opts Options) (*SessionStore, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	s := NewSessionStore(c, opts.Prefix, opts.TTL)
	s.owned = true
	return s, nil
}

// NewSessionStore usa un cliente existente (no lo cierra).
func NewSessionStore(c *redis.Client, prefix string, ttl time.Duration) *SessionStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &SessionStore{c: c, prefix: prefix, ttl: ttl}
}

func (s *SessionStore) key(sid string) string { return s.prefix + sid }

func (s *SessionStore) Get(ctx context.Context, sid string) ([]byte, bool, error) {
	b, err := s.c.Get(ctx, s.key(sid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get session: %w", err)
	}
	return b, true, nil
}

func (s *SessionStore) Set(ctx context.Context, sid string, data []byte) error {
	if err := s.c.Set(ctx, s.key(sid), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *SessionStore) Destroy(ctx context.Context, sid string) error {
	if err := s.c.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func (s *SessionStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.c.Close()
}
