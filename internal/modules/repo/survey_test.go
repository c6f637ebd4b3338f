package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestSurveyRepo(t *testing.T) {
	gdb := setupTestDB(t)
	if gdb == nil {
		return
	}

	repo := NewSurveyRepo(gdb)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()
	defer cleanupUser(gdb, alice)
	defer cleanupUser(gdb, bob)

	exists, err := repo.Exists(ctx, alice)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Latest(ctx, alice)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	first := &model.Survey{UserID: alice, Hobbies: []string{"Hiking"}, ZipCode: "10001"}
	require.NoError(t, repo.Create(ctx, first))
	require.NotEqual(t, uuid.Nil, first.ID)

	time.Sleep(5 * time.Millisecond)
	second := &model.Survey{UserID: alice, Hobbies: []string{"Baking", "Yoga"}, ZipCode: "94110"}
	require.NoError(t, repo.Create(ctx, second))

	t.Run("latest is the newest survey", func(t *testing.T) {
		got, err := repo.Latest(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
		assert.Equal(t, []string{"Baking", "Yoga"}, []string(got.Hobbies))
	})

	t.Run("list newest first", func(t *testing.T) {
		got, err := repo.List(ctx, alice, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, first.ID, got[1].ID)

		limited, err := repo.List(ctx, alice, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("other users cannot read the survey", func(t *testing.T) {
		_, err := repo.GetByID(ctx, bob, first.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		got, err := repo.GetByID(ctx, alice, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "10001", got.ZipCode)

		exists, err := repo.Exists(ctx, bob)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestSurveyActivitiesRepo_CreateOnce(t *testing.T) {
	gdb := setupTestDB(t)
	if gdb == nil {
		return
	}

	surveys := NewSurveyRepo(gdb)
	repo := NewSurveyActivitiesRepo(gdb)
	ctx := context.Background()
	userID := uuid.New()
	defer cleanupUser(gdb, userID)

	s := &model.Survey{UserID: userID, Hobbies: []string{"Music"}, ZipCode: "02139"}
	require.NoError(t, surveys.Create(ctx, s))

	_, err := repo.GetBySurveyID(ctx, userID, s.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	entry := func(name string) *model.SurveyActivities {
		return &model.SurveyActivities{
			SurveyID:   s.ID,
			UserID:     userID,
			Activities: datatypes.NewJSONType([]model.Activity{{Name: name, CostRange: model.CostFree}}),
			Model:      "gpt-4o-mini",
		}
	}

	const racers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		names   = map[string]struct{}{}
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stored, ok, err := repo.CreateOnce(ctx, entry(string(rune('A'+i))))
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if ok {
				created++
			}
			names[stored.List()[0].Name] = struct{}{}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created, "exactly one writer wins")
	assert.Len(t, names, 1, "every caller sees the winner's activities")

	var count int64
	require.NoError(t, gdb.Model(&model.SurveyActivities{}).Where("survey_id = ?", s.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = repo.GetBySurveyID(ctx, uuid.New(), s.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
