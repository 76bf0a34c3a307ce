package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Identity is the resolved user behind a request. It is stored in the
// session at sign-in time and injected into the request context by the
// guards, so handlers never reach into ambient state.
type Identity struct {
	UserID  int
	IsAdmin bool
}

// Store persists sessions and one-shot flash messages.
type Store interface {
	Create(identity Identity) (string, error)
	Get(id string) (Identity, bool, error)
	Delete(id string) error
	SetFlash(id, message string) error
	PopFlash(id string) (string, error)
}

const (
	sessionTTL = 30 * 24 * time.Hour
	flashTTL   = 5 * time.Minute
)

// RedisStore keeps sessions in Redis hashes keyed by a random session id.
type RedisStore struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisStore(rdb *redis.Client, ctx context.Context) (*RedisStore, error) {
	if rdb == nil {
		return nil, errors.New("redis client must be non-nil")
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{rdb: rdb, ctx: ctx}, nil
}

func (s *RedisStore) Create(identity Identity) (string, error) {
	id := uuid.NewString()
	err := s.rdb.HSet(s.ctx, sessionKey(id), "userId", identity.UserID, "isAdmin", strconv.FormatBool(identity.IsAdmin)).Err()
	if err != nil {
		return "", err
	}
	s.rdb.Expire(s.ctx, sessionKey(id), sessionTTL)
	return id, nil
}

func (s *RedisStore) Get(id string) (Identity, bool, error) {
	val, err := s.rdb.HGetAll(s.ctx, sessionKey(id)).Result()
	if err != nil {
		return Identity{}, false, err
	}
	if len(val) == 0 {
		return Identity{}, false, nil
	}
	userID, _ := strconv.Atoi(val["userId"])
	isAdmin, _ := strconv.ParseBool(val["isAdmin"])
	return Identity{UserID: userID, IsAdmin: isAdmin}, true, nil
}

func (s *RedisStore) Delete(id string) error {
	return s.rdb.Del(s.ctx, sessionKey(id)).Err()
}

func (s *RedisStore) SetFlash(id, message string) error {
	return s.rdb.Set(s.ctx, flashKey(id), message, flashTTL).Err()
}

// PopFlash returns the pending flash message for id and clears it.
// A missing message is not an error; it returns the empty string.
func (s *RedisStore) PopFlash(id string) (string, error) {
	val, err := s.rdb.GetDel(s.ctx, flashKey(id)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func sessionKey(id string) string { return "session:" + id }
func flashKey(id string) string   { return "flash:" + id }
