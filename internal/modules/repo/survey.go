package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"gorm.io/gorm"
)

// SurveyRepo reads and writes surveys. Every lookup is scoped to the owning user; a survey
// that exists but belongs to someone else is reported as gorm.ErrRecordNotFound.
type SurveyRepo interface {
	Create(ctx context.Context, s *model.Survey) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Survey, error)
	Latest(ctx context.Context, userID uuid.UUID) (*model.Survey, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Survey, error)
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type surveyRepo struct{ db *gorm.DB }

func NewSurveyRepo(db *gorm.DB) SurveyRepo {
	return &surveyRepo{db: db}
}

func (r *surveyRepo) Create(ctx context.Context, s *model.Survey) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *surveyRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Survey, error) {
	var s model.Survey
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *surveyRepo) Latest(ctx context.Context, userID uuid.UUID) (*model.Survey, error) {
	var s model.Survey
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *surveyRepo) List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Survey, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var surveys []*model.Survey
	return surveys, q.Find(&surveys).Error
}

func (r *surveyRepo) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM surveys WHERE user_id = ?)", userID).
		Scan(&exists).Error
	return exists, err
}
