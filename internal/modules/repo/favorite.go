package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepo interface {
	// Upsert inserts f or, when the user already saved an activity with the same name and
	// link, replaces its payload. The stored row is returned.
	Upsert(ctx context.Context, f *model.Favorite) (*model.Favorite, error)
	// Delete removes the user's favorite with this name and link. A nil link only matches
	// rows whose link is null.
	Delete(ctx context.Context, userID uuid.UUID, name string, link *string) (int64, error)
	List(ctx context.Context, userID uuid.UUID) ([]*model.Favorite, error)
}

type favoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepo(db *gorm.DB) FavoriteRepo {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Upsert(ctx context.Context, f *model.Favorite) (*model.Favorite, error) {
	f.ActivityLinkKey = model.LinkKey(f.ActivityLink)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "activity_name"},
				{Name: "activity_link_key"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"survey_id", "activity", "activity_link"}),
		}).
		Create(f).Error
	if err != nil {
		return nil, err
	}

	// Re-read so an update reports the original id and created_at.
	var stored model.Favorite
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND activity_name = ? AND activity_link_key = ?", f.UserID, f.ActivityName, f.ActivityLinkKey).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *favoriteRepo) Delete(ctx context.Context, userID uuid.UUID, name string, link *string) (int64, error) {
	q := r.db.WithContext(ctx).Where("user_id = ? AND activity_name = ?", userID, name)
	if link == nil {
		q = q.Where("activity_link IS NULL")
	} else {
		q = q.Where("activity_link = ?", *link)
	}
	res := q.Delete(&model.Favorite{})
	return res.RowsAffected, res.Error
}

func (r *favoriteRepo) List(ctx context.Context, userID uuid.UUID) ([]*model.Favorite, error) {
	var favs []*model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&favs).Error
	return favs, err
}
