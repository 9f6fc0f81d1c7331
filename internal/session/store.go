// internal/session/store.go

// Package session persists per-conversation attributes in Redis so the edge
// stays stateless across replicas.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dining-concierge/internal/models"
)

// Store keeps one hash per session, expiring after the configured TTL. Every
// touch refreshes the expiry.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Save writes the session hash and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sess models.DialogSession) error {
	key := sessionKey(sess.SessionID)

	fields := map[string]interface{}{
		"intent_name": sess.IntentName,
		"state":       sess.State,
	}
	for name, v := range sess.Attributes {
		fields["attr:"+name] = v
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session %s: %w", sess.SessionID, err)
	}
	return nil
}

// Get loads one session, or (nil, nil) when it does not exist or expired.
func (s *Store) Get(ctx context.Context, sessionID string) (*models.DialogSession, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	sess := &models.DialogSession{
		SessionID:  sessionID,
		IntentName: fields["intent_name"],
		State:      fields["state"],
		Attributes: map[string]string{},
	}
	for name, v := range fields {
		if len(name) > 5 && name[:5] == "attr:" {
			sess.Attributes[name[5:]] = v
		}
	}
	return sess, nil
}

// Touch refreshes the TTL without rewriting the hash.
func (s *Store) Touch(ctx context.Context, sessionID string) error {
	if err := s.client.Expire(ctx, sessionKey(sessionID), s.ttl).Err(); err != nil {
		return fmt.Errorf("touch session %s: %w", sessionID, err)
	}
	return nil
}

// Delete removes one session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
