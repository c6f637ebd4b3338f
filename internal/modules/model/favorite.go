package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Favorite is a user's saved activity. (UserID, ActivityName, ActivityLinkKey) is unique;
// ActivityLinkKey mirrors ActivityLink with null stored as "" so that two null links collide.
type Favorite struct {
	ID              uuid.UUID                    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_activity,priority:1;index:idx_favorites_user_created,priority:1" json:"user_id"`
	SurveyID        *uuid.UUID                   `gorm:"type:uuid;index" json:"survey_id"`
	Activity        datatypes.JSONType[Activity] `gorm:"type:jsonb;not null" swaggertype:"object" json:"activity"`
	ActivityName    string                       `gorm:"type:text;not null;uniqueIndex:idx_favorites_user_activity,priority:2" json:"activity_name"`
	ActivityLink    *string                      `gorm:"type:text" json:"activity_link"`
	ActivityLinkKey string                       `gorm:"type:text;not null;default:'';uniqueIndex:idx_favorites_user_activity,priority:3" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP;index:idx_favorites_user_created,priority:2,sort:desc" json:"created_at"`
}

func (Favorite) TableName() string { return "favorites" }

// NewFavorite derives the denormalized key columns from the embedded activity.
func NewFavorite(userID uuid.UUID, surveyID *uuid.UUID, a Activity) *Favorite {
	link := a.LinkPtr()
	return &Favorite{
		UserID:          userID,
		SurveyID:        surveyID,
		Activity:        datatypes.NewJSONType(a),
		ActivityName:    a.Name,
		ActivityLink:    link,
		ActivityLinkKey: LinkKey(link),
	}
}

// LinkKey maps a nullable link onto the non-null unique key column.
func LinkKey(link *string) string {
	if link == nil {
		return ""
	}
	return *link
}
