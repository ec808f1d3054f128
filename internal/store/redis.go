package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const fieldPrefix = "question_"

// RedisStore keeps each session as one Redis hash, one field per answered
// question. Sessions never expire on their own; lifecycle is caller-driven.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix sets the Redis key prefix. Default is "canvass".
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "canvass"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping verifies store connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Answers loads and decodes all answer fields for a session.
func (s *RedisStore) Answers(ctx context.Context, sessionID string) (map[int]Answer, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	fields, err := s.client.HGetAll(ctx, s.sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	answers := make(map[int]Answer, len(fields))
	for field, raw := range fields {
		index, err := parseFieldIndex(field)
		if err != nil {
			return nil, fmt.Errorf("session %s field %q: %w", sessionID, field, ErrCorruptRecord)
		}
		var answer Answer
		if err := json.Unmarshal([]byte(raw), &answer); err != nil {
			return nil, fmt.Errorf("session %s field %q: %w: %s", sessionID, field, ErrCorruptRecord, err)
		}
		answers[index] = answer
	}
	return answers, nil
}

// SetAnswer writes one answer field.
func (s *RedisStore) SetAnswer(ctx context.Context, sessionID string, index int, answer Answer) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	if index < 0 {
		return fmt.Errorf("negative question index %d", index)
	}

	data, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}
	if err := s.client.HSet(ctx, s.sessionKey(sessionID), fieldKey(index), data).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	return nil
}

// DeleteAnswer removes one answer field.
func (s *RedisStore) DeleteAnswer(ctx context.Context, sessionID string, index int) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	if err := s.client.HDel(ctx, s.sessionKey(sessionID), fieldKey(index)).Err(); err != nil {
		return fmt.Errorf("redis hdel failed: %w", err)
	}
	return nil
}

// Clear removes the session hash entirely.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	if err := s.client.Del(ctx, s.sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (s *RedisStore) sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, sessionID)
}

func fieldKey(index int) string {
	return fieldPrefix + strconv.Itoa(index)
}

func parseFieldIndex(field string) (int, error) {
	suffix, ok := strings.CutPrefix(field, fieldPrefix)
	if !ok {
		return 0, fmt.Errorf("missing %q prefix", fieldPrefix)
	}
	index, err := strconv.Atoi(suffix)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("bad index suffix %q", suffix)
	}
	return index, nil
}
