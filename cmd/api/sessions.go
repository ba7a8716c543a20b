package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionCookie = "session_id"
	sessionTTL    = time.Hour
)

var errNoSession = errors.New("session not found")

// sessionStore issues and resolves login sessions.
type sessionStore interface {
	Create(ctx context.Context, user string) (string, error)
	Lookup(ctx context.Context, sid string) (string, error)
}

// redisSessions keeps sessions in Redis under session:<id> with a TTL.
type redisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisSessions(client *redis.Client) *redisSessions {
	return &redisSessions{client: client, ttl: sessionTTL}
}

func (s *redisSessions) Create(ctx context.Context, user string) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, "session:"+sid, user, s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *redisSessions) Lookup(ctx context.Context, sid string) (string, error) {
	user, err := s.client.Get(ctx, "session:"+sid).Result()
	if errors.Is(err, redis.Nil) || (err == nil && user == "") {
		return "", errNoSession
	}
	return user, err
}

type memorySession struct {
	user    string
	expires time.Time
}

// memorySessions keeps sessions in process when no Redis is configured.
type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

func newMemorySessions(now func() time.Time) *memorySessions {
	return &memorySessions{sessions: make(map[string]memorySession), ttl: sessionTTL, now: now}
}

func (s *memorySessions) Create(_ context.Context, user string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sid := uuid.NewString()
	s.sessions[sid] = memorySession{user: user, expires: s.now().Add(s.ttl)}
	return sid, nil
}

func (s *memorySessions) Lookup(_ context.Context, sid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return "", errNoSession
	}
	if !s.now().Before(sess.expires) {
		delete(s.sessions, sid)
		return "", errNoSession
	}
	return sess.user, nil
}
