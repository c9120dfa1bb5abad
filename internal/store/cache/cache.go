// Package cache puts a Redis read-through layer in front of another
// engine.Repository. Only jobs and candidates are cached: they are read once
// per scored application and change rarely. Applications and resumes always
// go to the backing store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ranking-workers/internal/common/logger"
	"ranking-workers/internal/common/metrics"
	"ranking-workers/internal/models"
	"ranking-workers/internal/ranking/engine"
)

const keyPrefix = "ranking:"

type Store struct {
	engine.Repository
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// New wraps next. A ttl of zero caches entries without expiry.
func New(next engine.Repository, client *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{
		Repository: next,
		redis:      client,
		ttl:        ttl,
		logger:     log.WithFields(map[string]interface{}{"store": "redis-cache"}),
	}
}

func JobKey(jobID int64) string {
	return fmt.Sprintf("%sjob:%d", keyPrefix, jobID)
}

func CandidateKey(candidateID int64) string {
	return fmt.Sprintf("%scandidate:%d", keyPrefix, candidateID)
}

func (r *Store) FindJob(ctx context.Context, jobID int64) (*models.Job, error) {
	var job models.Job
	if r.get(ctx, "job", JobKey(jobID), &job) {
		return &job, nil
	}

	found, err := r.Repository.FindJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	r.set(ctx, JobKey(jobID), found)
	return found, nil
}

func (r *Store) FindCandidate(ctx context.Context, candidateID int64) (*models.Candidate, error) {
	var candidate models.Candidate
	if r.get(ctx, "candidate", CandidateKey(candidateID), &candidate) {
		return &candidate, nil
	}

	found, err := r.Repository.FindCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	r.set(ctx, CandidateKey(candidateID), found)
	return found, nil
}

// InvalidateJob drops a cached job so the next lookup reads the store.
func (r *Store) InvalidateJob(ctx context.Context, jobID int64) error {
	return r.redis.Del(ctx, JobKey(jobID)).Err()
}

func (r *Store) InvalidateCandidate(ctx context.Context, candidateID int64) error {
	return r.redis.Del(ctx, CandidateKey(candidateID)).Err()
}

// get reports a hit only when the value was present and decoded. Redis
// failures are logged and treated as a miss.
func (r *Store) get(ctx context.Context, entity, key string, dest interface{}) bool {
	val, err := r.redis.Get(ctx, key).Bytes()
	switch {
	case err == redis.Nil:
		metrics.CacheLookups.WithLabelValues(entity, "miss").Inc()
		return false
	case err != nil:
		metrics.CacheLookups.WithLabelValues(entity, "error").Inc()
		r.logger.Warn("Cache read failed, falling back to store", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheLookups.WithLabelValues(entity, "error").Inc()
		r.logger.Warn("Discarding undecodable cache entry", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		r.redis.Del(ctx, key)
		return false
	}
	metrics.CacheLookups.WithLabelValues(entity, "hit").Inc()
	return true
}

func (r *Store) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
	}
}
