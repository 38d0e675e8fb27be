// internal/structuring/roster/store.go
package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"warroom-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "roster:clients"

// Store loads the client roster from postgres with a redis cache in front.
// The pipeline itself never talks to the store; the worker manager loads the
// roster once at startup and hands the value to the pipeline.
type Store struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewStore(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *Store {
	return &Store{
		db:       db,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "roster-store"}),
	}
}

// Load returns the active client roster. Cache misses fall through to
// postgres; a populated cache entry is returned as-is.
func (s *Store) Load(ctx context.Context) (Roster, error) {
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached Roster
			if err := json.Unmarshal([]byte(val), &cached); err == nil && len(cached) > 0 {
				return cached, nil
			}
		}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM clients WHERE active = TRUE ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query client roster: %w", err)
	}
	defer rows.Close()

	var out Roster
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan client name: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client roster: %w", err)
	}

	if s.redis != nil && len(out) > 0 {
		payload, _ := json.Marshal(out)
		if err := s.redis.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("roster cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return out, nil
}

// Invalidate drops the cached roster so the next Load hits postgres.
func (s *Store) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, cacheKey).Err()
}
