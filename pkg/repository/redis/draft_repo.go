package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/artem13815/cvbuilder/pkg/form"
)

// DraftRepository keeps form drafts as JSON values that expire after ttl
// of inactivity.
type DraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftRepository(client *redis.Client, ttl time.Duration) *DraftRepository {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &DraftRepository{client: client, ttl: ttl}
}

func draftKey(userID uuid.UUID) string {
	return fmt.Sprintf("cv:draft:%s", userID)
}

func (r *DraftRepository) Get(ctx context.Context, userID uuid.UUID) (form.State, error) {
	data, err := r.client.Get(ctx, draftKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return form.State{}, form.ErrDraftNotFound
	}
	if err != nil {
		return form.State{}, err
	}
	var s form.State
	if err := json.Unmarshal(data, &s); err != nil {
		return form.State{}, fmt.Errorf("decode draft: %w", err)
	}
	return s, nil
}

func (r *DraftRepository) Put(ctx context.Context, userID uuid.UUID, s form.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return r.client.Set(ctx, draftKey(userID), data, r.ttl).Err()
}

func (r *DraftRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	n, err := r.client.Del(ctx, draftKey(userID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return form.ErrDraftNotFound
	}
	return nil
}

// DiscardUser drops the user's draft; a missing draft is not an error.
func (r *DraftRepository) DiscardUser(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, draftKey(userID)).Err()
}
