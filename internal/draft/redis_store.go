package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cardcomposer/internal/models"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *redisStore) Load(ctx context.Context, sessionID string) (*models.Draft, bool) {

	data, err := r.client.Get(ctx, Key(sessionID)).Bytes()
	if err != nil {

		if err != redis.Nil {
			slog.Debug("draft load failed", slog.String("session", sessionID), slog.String("error", err.Error()))
		}

		return nil, false
	}

	var draft models.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		slog.Debug("draft blob unparsable, treating as absent",
			slog.String("session", sessionID),
			slog.String("error", err.Error()))

		return nil, false
	}

	return &draft, true
}

func (r *redisStore) Save(ctx context.Context, sessionID string, fields map[string]any, keywords []string) error {

	draft := models.Draft{Fields: fields, Keywords: keywords}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft for session %s: %w", sessionID, err)
	}

	if err := r.client.Set(ctx, Key(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft for session %s: %w", sessionID, err)
	}

	return nil
}

func (r *redisStore) Clear(ctx context.Context, sessionID string) error {

	if err := r.client.Del(ctx, Key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear draft for session %s: %w", sessionID, err)
	}

	return nil
}
