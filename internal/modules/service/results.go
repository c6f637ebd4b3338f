package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/quokkabay/quokkabay/internal/infra/cache"
	mq "github.com/quokkabay/quokkabay/internal/infra/queue"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/quokkabay/quokkabay/internal/modules/repo"
	"github.com/quokkabay/quokkabay/internal/pkg/suggestion"
	"github.com/quokkabay/quokkabay/internal/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Results struct {
	Survey     *model.Survey
	Activities []model.Activity
	// Cached is true when the activities were produced by an earlier request.
	Cached bool
}

// ResultsService returns the stored activities for a survey, generating and storing them on
// first view. Once stored, a survey's activities never change.
type ResultsService interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID, ref SurveyRef) (*Results, error)
}

type ResultsOptions struct {
	// LeaseTTL bounds how long another process's in-flight generation is waited for.
	LeaseTTL     time.Duration
	PollInterval time.Duration
}

type resultsService struct {
	surveys repo.SurveyRepo
	results repo.SurveyActivitiesRepo
	gen     ActivityGenerator
	locker  cache.Locker
	pub     mq.EventPublisher
	opts    ResultsOptions
	log     *zap.Logger

	inflight singleflight.Group
}

func NewResultsService(
	surveys repo.SurveyRepo,
	results repo.SurveyActivitiesRepo,
	gen ActivityGenerator,
	locker cache.Locker,
	pub mq.EventPublisher,
	opts ResultsOptions,
	log *zap.Logger,
) ResultsService {
	if opts.LeaseTTL <= 0 {
		opts.LeaseTTL = time.Minute
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 250 * time.Millisecond
	}
	if locker == nil {
		locker = cache.NewNoopLocker()
	}
	return &resultsService{
		surveys: surveys,
		results: results,
		gen:     gen,
		locker:  locker,
		pub:     pub,
		opts:    opts,
		log:     log,
	}
}

type stored struct {
	entry   *model.SurveyActivities
	created bool
}

func (s *resultsService) GetOrCreate(ctx context.Context, userID uuid.UUID, ref SurveyRef) (*Results, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	survey, err := resolveSurvey(ctx, s.surveys, userID, ref)
	if err != nil {
		return nil, err
	}

	entry, err := s.results.GetBySurveyID(ctx, userID, survey.ID)
	if err == nil {
		telemetry.RecordResultsLookup(telemetry.LookupHit)
		return &Results{Survey: survey, Activities: entry.List(), Cached: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr("load results", err)
	}

	// Concurrent first views in this process share one generation. The shared call must
	// outlive any single caller's cancellation.
	v, err, _ := s.inflight.Do(survey.ID.String(), func() (interface{}, error) {
		return s.generateOnce(context.WithoutCancel(ctx), survey)
	})
	if err != nil {
		return nil, err
	}

	res := v.(*stored)
	if res.created {
		telemetry.RecordResultsLookup(telemetry.LookupMiss)
	} else {
		telemetry.RecordResultsLookup(telemetry.LookupRaceLost)
	}
	return &Results{Survey: survey, Activities: res.entry.List(), Cached: !res.created}, nil
}

func (s *resultsService) generateOnce(ctx context.Context, survey *model.Survey) (*stored, error) {
	release, err := s.locker.Acquire(ctx, survey.ID.String(), s.opts.LeaseTTL)
	switch {
	case errors.Is(err, cache.ErrLeaseHeld):
		if entry := s.waitForEntry(ctx, survey); entry != nil {
			return &stored{entry: entry}, nil
		}
		s.log.Warn("generation lease expired without result, generating",
			zap.String("survey_id", survey.ID.String()))
	case err != nil:
		s.log.Warn("acquire generation lease", zap.String("survey_id", survey.ID.String()), zap.Error(err))
	default:
		defer release()
		// The previous holder may have finished between our cache check and the lease.
		if entry, err := s.results.GetBySurveyID(ctx, survey.UserID, survey.ID); err == nil {
			return &stored{entry: entry}, nil
		}
	}

	gen, err := s.gen.Generate(ctx, survey.Hobbies, survey.ZipCode)
	if err != nil {
		return nil, err
	}

	entry := &model.SurveyActivities{
		SurveyID:     survey.ID,
		UserID:       survey.UserID,
		Activities:   datatypes.NewJSONType(suggestion.EnsureCoordinates(gen.Activities)),
		Model:        gen.Model,
		PromptTokens: gen.PromptTokens,
	}
	saved, created, err := s.results.CreateOnce(ctx, entry)
	if err != nil {
		return nil, storeErr("save results", err)
	}

	if created {
		publish(ctx, s.pub, s.log, mq.Event{
			Type:     mq.EventActivitiesGenerated,
			UserID:   survey.UserID,
			SurveyID: &survey.ID,
			Attributes: map[string]string{
				"provider": gen.Provider,
				"model":    gen.Model,
			},
		})
	}
	return &stored{entry: saved, created: created}, nil
}

// waitForEntry polls for the lease holder's result until the lease would have expired.
func (s *resultsService) waitForEntry(ctx context.Context, survey *model.Survey) *model.SurveyActivities {
	deadline := time.NewTimer(s.opts.LeaseTTL)
	defer deadline.Stop()
	tick := time.NewTicker(s.opts.PollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-deadline.C:
			return nil
		case <-tick.C:
			entry, err := s.results.GetBySurveyID(ctx, survey.UserID, survey.ID)
			if err == nil {
				return entry
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Warn("poll results", zap.String("survey_id", survey.ID.String()), zap.Error(err))
			}
		}
	}
}
