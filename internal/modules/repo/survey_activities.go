package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SurveyActivitiesRepo interface {
	// GetBySurveyID returns gorm.ErrRecordNotFound when no result has been stored yet.
	GetBySurveyID(ctx context.Context, userID, surveyID uuid.UUID) (*model.SurveyActivities, error)
	// CreateOnce stores entry unless the survey already has one. It returns the entry that
	// is stored afterwards and whether it was this call that wrote it.
	CreateOnce(ctx context.Context, entry *model.SurveyActivities) (*model.SurveyActivities, bool, error)
}

type surveyActivitiesRepo struct{ db *gorm.DB }

func NewSurveyActivitiesRepo(db *gorm.DB) SurveyActivitiesRepo {
	return &surveyActivitiesRepo{db: db}
}

func (r *surveyActivitiesRepo) GetBySurveyID(ctx context.Context, userID, surveyID uuid.UUID) (*model.SurveyActivities, error) {
	var sa model.SurveyActivities
	err := r.db.WithContext(ctx).
		Where("survey_id = ? AND user_id = ?", surveyID, userID).
		First(&sa).Error
	if err != nil {
		return nil, err
	}
	return &sa, nil
}

func (r *surveyActivitiesRepo) CreateOnce(ctx context.Context, entry *model.SurveyActivities) (*model.SurveyActivities, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "survey_id"}},
			DoNothing: true,
		}).
		Create(entry)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return entry, true, nil
	}

	// Lost the race: someone else stored a result for this survey first.
	existing, err := r.GetBySurveyID(ctx, entry.UserID, entry.SurveyID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
