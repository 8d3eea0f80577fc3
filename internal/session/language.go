// Package session remembers per-session convenience defaults. The only thing
// stored today is the last detected language, used when a timeline request
// does not name a language explicitly. Reads and writes are last-writer-wins;
// losing one is harmless since the value only affects a default.
package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// languageTTL keeps stale preferences from outliving the user's interest.
const languageTTL = 30 * 24 * time.Hour

// LanguageStore reads and writes the session-remembered language preference.
type LanguageStore interface {
	// LastLanguage returns the remembered language for a session, if any.
	LastLanguage(ctx context.Context, sessionID string) (string, bool)
	// RememberLanguage records the language detected for a session.
	RememberLanguage(ctx context.Context, sessionID, lang string)
}

// RedisLanguageStore implements LanguageStore on Redis.
type RedisLanguageStore struct {
	client *redis.Client
}

// NewRedisLanguageStore connects to Redis using a redis:// URL.
func NewRedisLanguageStore(redisURL string) (*RedisLanguageStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &RedisLanguageStore{client: redis.NewClient(opts)}, nil
}

func languageKey(sessionID string) string {
	return "aynstyn:session:" + sessionID + ":lang"
}

// LastLanguage returns the remembered language, absorbing any Redis failure.
func (s *RedisLanguageStore) LastLanguage(ctx context.Context, sessionID string) (string, bool) {
	if sessionID == "" {
		return "", false
	}
	lang, err := s.client.Get(ctx, languageKey(sessionID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("session: language lookup failed for %s: %v", sessionID, err)
		}
		return "", false
	}
	return lang, lang != ""
}

// RememberLanguage records the language, absorbing any Redis failure.
func (s *RedisLanguageStore) RememberLanguage(ctx context.Context, sessionID, lang string) {
	if sessionID == "" || lang == "" {
		return
	}
	if err := s.client.Set(ctx, languageKey(sessionID), lang, languageTTL).Err(); err != nil {
		log.Printf("session: language save failed for %s: %v", sessionID, err)
	}
}

// Close releases the Redis connection.
func (s *RedisLanguageStore) Close() error {
	return s.client.Close()
}

// NoopLanguageStore is used when no Redis is configured; the language cascade
// simply skips the session step.
type NoopLanguageStore struct{}

// LastLanguage always reports no remembered language.
func (NoopLanguageStore) LastLanguage(context.Context, string) (string, bool) { return "", false }

// RememberLanguage discards the value.
func (NoopLanguageStore) RememberLanguage(context.Context, string, string) {}
