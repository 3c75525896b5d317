package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	sessionKeyPrefix = "diary-session||"
	tokensSetKey     = "diary-sessions"
)

// Identity is the signed in user behind a session token.
type Identity struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

type sessionValue struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}

// Sessions keeps login sessions in redis. Every token is also kept in a
// set, so stale sessions can be found and cleaned.
type Sessions struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewSessions(redisClient *redis.Client, ttl time.Duration) *Sessions {
	return &Sessions{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

func (s *Sessions) Create(ctx context.Context, token string, identity Identity, createdAt time.Time) error {
	payload, err := json.Marshal(sessionValue{
		UserID:    identity.UserID,
		Email:     identity.Email,
		CreatedAt: createdAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.Set(ctx, sessionKey, payload, s.ttl).Err(); err != nil {
		return err
	}

	// add token to the set of sessions
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return err
	}

	return nil
}

// Get returns ErrNotLoggedIn when the session is missing or expired.
func (s *Sessions) Get(ctx context.Context, token string, now time.Time) (*Identity, error) {
	value, err := s.get(ctx, token)
	if err != nil {
		return nil, err
	}

	if now.Sub(time.Unix(value.CreatedAt, 0)) > s.ttl {
		return nil, ErrNotLoggedIn
	}

	return &Identity{
		UserID: value.UserID,
		Email:  value.Email,
	}, nil
}

func (s *Sessions) get(ctx context.Context, token string) (*sessionValue, error) {
	cmd := s.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	var value sessionValue
	if err := json.Unmarshal([]byte(cmd.Val()), &value); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &value, nil
}

func (s *Sessions) Delete(ctx context.Context, token string) error {
	if err := s.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return err
	}

	// remove token from the set of sessions
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return err
	}

	return nil
}

// ScanAndClean runs through all sessions and removes the expired ones.
// It returns the number of removed sessions.
func (s *Sessions) ScanAndClean(ctx context.Context, now time.Time) int {
	cmd := s.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("sessions scan and clean, get sessions: %s", err)
		return 0
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugln("sessions scan and clean: no sessions")
		return 0
	}

	log.Debugf("sessions scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		value, err := s.get(ctx, token)
		if err != nil {
			if errors.Is(err, ErrNotLoggedIn) {
				// session key already expired in redis
				toRemove = append(toRemove, token)
				continue
			}
			log.Errorf("sessions scan and clean, token %s: %s", token, err)
			continue
		}

		if now.Sub(time.Unix(value.CreatedAt, 0)) > s.ttl {
			toRemove = append(toRemove, token)
		}
	}

	removed := 0
	for _, token := range toRemove {
		if err := s.Delete(ctx, token); err != nil {
			log.Errorf("sessions scan and clean, remove token %s: %s", token, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Infof("sessions scan and clean: removed %d stale sessions", removed)
	}
	return removed
}
