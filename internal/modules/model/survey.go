package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Survey struct {
	ID      uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_surveys_user_created,priority:1" json:"user_id"`
	Hobbies pq.StringArray `gorm:"type:text[];not null" swaggertype:"array,string" json:"hobbies"`
	ZipCode string         `gorm:"type:text;not null" json:"zip_code"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP;index:idx_surveys_user_created,priority:2,sort:desc" json:"created_at"`

	// Survey <-> SurveyActivities
	Results *SurveyActivities `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Survey) TableName() string { return "surveys" }

// HobbyOptions is the vocabulary offered by the survey form. Free-form hobbies are
// accepted as well.
var HobbyOptions = []string{
	"Gardening", "Baking", "Cooking", "Gaming", "Dancing", "Arts", "Movies", "Music",
	"Hiking", "Photography", "Traveling", "Reading", "Writing", "Sports", "Crafts", "Yoga",
	"Fitness", "Board Games", "Volunteering", "Fishing", "Cycling", "Shopping", "Technology", "Pets", "Other",
}
