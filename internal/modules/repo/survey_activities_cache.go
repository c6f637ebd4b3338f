package repo

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const resultsKeyPrefix = "quokkabay:results:"

// cachedSurveyActivitiesRepo keeps stored results hot in redis. Entries are immutable once
// written, so the cache never needs invalidation; the TTL only bounds memory.
type cachedSurveyActivitiesRepo struct {
	next SurveyActivitiesRepo
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

func NewCachedSurveyActivitiesRepo(next SurveyActivitiesRepo, rdb *redis.Client, ttl time.Duration, log *zap.Logger) SurveyActivitiesRepo {
	return &cachedSurveyActivitiesRepo{next: next, rdb: rdb, ttl: ttl, log: log}
}

func resultsKey(surveyID uuid.UUID) string {
	return resultsKeyPrefix + surveyID.String()
}

func (r *cachedSurveyActivitiesRepo) GetBySurveyID(ctx context.Context, userID, surveyID uuid.UUID) (*model.SurveyActivities, error) {
	if sa, ok := r.load(ctx, surveyID); ok && sa.UserID == userID {
		return sa, nil
	}

	sa, err := r.next.GetBySurveyID(ctx, userID, surveyID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, sa)
	return sa, nil
}

func (r *cachedSurveyActivitiesRepo) CreateOnce(ctx context.Context, entry *model.SurveyActivities) (*model.SurveyActivities, bool, error) {
	stored, created, err := r.next.CreateOnce(ctx, entry)
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, stored)
	return stored, created, nil
}

func (r *cachedSurveyActivitiesRepo) load(ctx context.Context, surveyID uuid.UUID) (*model.SurveyActivities, bool) {
	raw, err := r.rdb.Get(ctx, resultsKey(surveyID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("results cache read failed", zap.String("survey_id", surveyID.String()), zap.Error(err))
		}
		return nil, false
	}

	var sa model.SurveyActivities
	if err := sonic.Unmarshal(raw, &sa); err != nil {
		r.log.Warn("results cache entry corrupt", zap.String("survey_id", surveyID.String()), zap.Error(err))
		_ = r.rdb.Del(ctx, resultsKey(surveyID)).Err()
		return nil, false
	}
	return &sa, true
}

func (r *cachedSurveyActivitiesRepo) store(ctx context.Context, sa *model.SurveyActivities) {
	b, err := sonic.Marshal(sa)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, resultsKey(sa.SurveyID), b, r.ttl).Err(); err != nil {
		r.log.Warn("results cache write failed", zap.String("survey_id", sa.SurveyID.String()), zap.Error(err))
	}
}
