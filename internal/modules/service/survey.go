package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	mq "github.com/quokkabay/quokkabay/internal/infra/queue"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/quokkabay/quokkabay/internal/modules/repo"
	"github.com/quokkabay/quokkabay/internal/pkg/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SurveyRef selects a survey either by id or as the caller's most recent one.
type SurveyRef struct {
	ID     uuid.UUID
	Latest bool
}

var LatestSurvey = SurveyRef{Latest: true}

// ParseSurveyRef accepts "latest" or a UUID. Anything else cannot name a survey the
// caller owns and is reported as not found.
func ParseSurveyRef(s string) (SurveyRef, error) {
	if strings.EqualFold(s, "latest") {
		return LatestSurvey, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return SurveyRef{}, ErrSurveyNotFound
	}
	return SurveyRef{ID: id}, nil
}

type CreateSurveyInput struct {
	Hobbies []string
	ZipCode string
}

type SurveyService interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateSurveyInput) (*model.Survey, error)
	Get(ctx context.Context, userID uuid.UUID, ref SurveyRef) (*model.Survey, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Survey, error)
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type surveyService struct {
	r   repo.SurveyRepo
	pub mq.EventPublisher
	log *zap.Logger
}

func NewSurveyService(r repo.SurveyRepo, pub mq.EventPublisher, log *zap.Logger) SurveyService {
	return &surveyService{r: r, pub: pub, log: log}
}

func (s *surveyService) Create(ctx context.Context, userID uuid.UUID, in CreateSurveyInput) (*model.Survey, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	zip := strings.TrimSpace(in.ZipCode)
	if !validation.ZipCode(zip) {
		return nil, ErrInvalidZipCode
	}
	hobbies, ok := validation.Hobbies(in.Hobbies)
	if !ok {
		return nil, ErrInvalidHobbies
	}

	survey := &model.Survey{
		UserID:  userID,
		Hobbies: hobbies,
		ZipCode: zip,
	}
	if err := s.r.Create(ctx, survey); err != nil {
		return nil, storeErr("create survey", err)
	}

	publish(ctx, s.pub, s.log, mq.Event{
		Type:     mq.EventSurveyCreated,
		UserID:   userID,
		SurveyID: &survey.ID,
	})
	return survey, nil
}

func (s *surveyService) Get(ctx context.Context, userID uuid.UUID, ref SurveyRef) (*model.Survey, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	return resolveSurvey(ctx, s.r, userID, ref)
}

func (s *surveyService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Survey, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	surveys, err := s.r.List(ctx, userID, limit)
	if err != nil {
		return nil, storeErr("list surveys", err)
	}
	return surveys, nil
}

func (s *surveyService) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, ErrUnauthenticated
	}
	ok, err := s.r.Exists(ctx, userID)
	if err != nil {
		return false, storeErr("check surveys", err)
	}
	return ok, nil
}

func resolveSurvey(ctx context.Context, r repo.SurveyRepo, userID uuid.UUID, ref SurveyRef) (*model.Survey, error) {
	var (
		survey *model.Survey
		err    error
	)
	if ref.Latest {
		survey, err = r.Latest(ctx, userID)
	} else {
		survey, err = r.GetByID(ctx, userID, ref.ID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSurveyNotFound
	}
	if err != nil {
		return nil, storeErr("load survey", err)
	}
	return survey, nil
}

// publish is fire-and-forget: a broker outage never fails the request that caused the event.
func publish(ctx context.Context, pub mq.EventPublisher, log *zap.Logger, ev mq.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, ev); err != nil {
		log.Warn("publish event failed", zap.String("type", ev.Type), zap.Error(err))
	}
}
