package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SurveyActivities is the cached generation result for one survey. At most one row
// exists per survey; rows are never updated.
type SurveyActivities struct {
	ID           uuid.UUID                      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SurveyID     uuid.UUID                      `gorm:"type:uuid;not null;uniqueIndex:idx_survey_activities_survey" json:"survey_id"`
	UserID       uuid.UUID                      `gorm:"type:uuid;not null;index" json:"user_id"`
	Activities   datatypes.JSONType[[]Activity] `gorm:"type:jsonb;not null" swaggertype:"array,object" json:"activities"`
	Model        string                         `gorm:"type:text;not null" json:"model"`
	PromptTokens int                            `gorm:"not null;default:0" json:"prompt_tokens"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// SurveyActivities <-> Survey
	Survey *Survey `gorm:"foreignKey:SurveyID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (SurveyActivities) TableName() string { return "survey_activities" }

func (s *SurveyActivities) List() []Activity {
	if s == nil {
		return nil
	}
	return s.Activities.Data()
}
