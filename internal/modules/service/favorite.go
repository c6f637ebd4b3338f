package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	mq "github.com/quokkabay/quokkabay/internal/infra/queue"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/quokkabay/quokkabay/internal/modules/repo"
	"github.com/quokkabay/quokkabay/internal/telemetry"
	"go.uber.org/zap"
)

type AddFavoriteInput struct {
	SurveyID *uuid.UUID
	Activity model.Activity
}

// FavoriteService keeps at most one favorite per (user, activity name, activity link), with a
// missing link counting as its own value.
type FavoriteService interface {
	Add(ctx context.Context, userID uuid.UUID, in AddFavoriteInput) (*model.Favorite, error)
	Remove(ctx context.Context, userID uuid.UUID, name string, link *string) error
	List(ctx context.Context, userID uuid.UUID) ([]*model.Favorite, error)
}

type favoriteService struct {
	r       repo.FavoriteRepo
	surveys repo.SurveyRepo
	pub     mq.EventPublisher
	log     *zap.Logger
}

func NewFavoriteService(r repo.FavoriteRepo, surveys repo.SurveyRepo, pub mq.EventPublisher, log *zap.Logger) FavoriteService {
	return &favoriteService{r: r, surveys: surveys, pub: pub, log: log}
}

func (s *favoriteService) Add(ctx context.Context, userID uuid.UUID, in AddFavoriteInput) (*model.Favorite, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	a := in.Activity
	a.Name = strings.TrimSpace(a.Name)
	a.Link = strings.TrimSpace(a.Link)
	if a.Name == "" {
		return nil, ErrInvalidActivity
	}

	if in.SurveyID != nil {
		if _, err := resolveSurvey(ctx, s.surveys, userID, SurveyRef{ID: *in.SurveyID}); err != nil {
			return nil, err
		}
	}

	fav, err := s.r.Upsert(ctx, model.NewFavorite(userID, in.SurveyID, a))
	if err != nil {
		return nil, storeErr("save favorite", err)
	}

	telemetry.RecordFavoriteMutation("save")
	publish(ctx, s.pub, s.log, mq.Event{
		Type:       mq.EventFavoriteSaved,
		UserID:     userID,
		SurveyID:   in.SurveyID,
		Attributes: map[string]string{"activity_name": a.Name},
	})
	return fav, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID uuid.UUID, name string, link *string) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidActivity
	}
	if link != nil {
		l := strings.TrimSpace(*link)
		link = nil
		if l != "" {
			link = &l
		}
	}

	n, err := s.r.Delete(ctx, userID, name, link)
	if err != nil {
		return storeErr("remove favorite", err)
	}
	if n > 0 {
		telemetry.RecordFavoriteMutation("remove")
		publish(ctx, s.pub, s.log, mq.Event{
			Type:       mq.EventFavoriteRemoved,
			UserID:     userID,
			Attributes: map[string]string{"activity_name": name},
		})
	}
	return nil
}

func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]*model.Favorite, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	favs, err := s.r.List(ctx, userID)
	if err != nil {
		return nil, storeErr("list favorites", err)
	}
	return favs, nil
}
