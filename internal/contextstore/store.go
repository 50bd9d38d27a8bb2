package contextstore

import (
	"context"
	"encoding/json"
	"fmt"

	"mockmate/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisContextStore implements domain.ContextStore on redis. The message log
// is an unbounded RPUSH list; the window cap is applied at read time so the
// full history stays available to the audit path. Topics live in a set, the
// free-form context map in a hash.
type RedisContextStore struct {
	client     *redis.Client
	classifier domain.TopicClassifier
	windowSize int
	logger     *zap.Logger
}

// NewRedisContextStore creates the store. windowSize is the read-time cap on
// entries surfaced to callers.
func NewRedisContextStore(client *redis.Client, classifier domain.TopicClassifier, windowSize int, logger *zap.Logger) *RedisContextStore {
	if windowSize <= 0 {
		windowSize = 10
	}
	return &RedisContextStore{
		client:     client,
		classifier: classifier,
		windowSize: windowSize,
		logger:     logger,
	}
}

// AddMessage implements domain.ContextStore. The entry is always appended;
// topic extraction merges into the set so topics stay unique.
func (s *RedisContextStore) AddMessage(ctx context.Context, sessionID string, entry domain.ContextEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal context entry: %w", err)
	}

	if err := s.client.RPush(ctx, contextKey("log", sessionID), data).Err(); err != nil {
		return fmt.Errorf("failed to append context entry: %w", err)
	}

	if topics := s.classifier.Topics(entry.Content); len(topics) > 0 {
		members := make([]interface{}, len(topics))
		for i, t := range topics {
			members[i] = t
		}
		if err := s.client.SAdd(ctx, contextKey("topics", sessionID), members...).Err(); err != nil {
			// Topic extraction is opportunistic; the appended entry stands.
			s.logger.Warn("Failed to merge context topics",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Window implements domain.ContextStore: only the most recent N entries.
func (s *RedisContextStore) Window(ctx context.Context, sessionID string) ([]domain.ContextEntry, error) {
	return s.entries(ctx, sessionID, int64(-s.windowSize), -1)
}

// All implements domain.ContextStore: the full append log, for audit.
func (s *RedisContextStore) All(ctx context.Context, sessionID string) ([]domain.ContextEntry, error) {
	return s.entries(ctx, sessionID, 0, -1)
}

func (s *RedisContextStore) entries(ctx context.Context, sessionID string, start, stop int64) ([]domain.ContextEntry, error) {
	raw, err := s.client.LRange(ctx, contextKey("log", sessionID), start, stop).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read context log: %w", err)
	}

	entries := make([]domain.ContextEntry, 0, len(raw))
	for _, item := range raw {
		var entry domain.ContextEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			s.logger.Warn("Skipping malformed context entry",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Topics implements domain.ContextStore
func (s *RedisContextStore) Topics(ctx context.Context, sessionID string) ([]string, error) {
	topics, err := s.client.SMembers(ctx, contextKey("topics", sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read context topics: %w", err)
	}
	return topics, nil
}

// SetContextValue implements domain.ContextStore
func (s *RedisContextStore) SetContextValue(ctx context.Context, sessionID, key, value string) error {
	return s.client.HSet(ctx, contextKey("map", sessionID), key, value).Err()
}

// ContextMap implements domain.ContextStore
func (s *RedisContextStore) ContextMap(ctx context.Context, sessionID string) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, contextKey("map", sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read context map: %w", err)
	}
	return values, nil
}

// Archive implements domain.ContextStore: a flag, not a delete.
func (s *RedisContextStore) Archive(ctx context.Context, sessionID string) error {
	return s.client.Set(ctx, contextKey("archived", sessionID), "1", 0).Err()
}

var _ domain.ContextStore = (*RedisContextStore)(nil)
