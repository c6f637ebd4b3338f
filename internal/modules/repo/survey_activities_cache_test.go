package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MockSurveyActivitiesRepo struct {
	mock.Mock
}

func (m *MockSurveyActivitiesRepo) GetBySurveyID(ctx context.Context, userID, surveyID uuid.UUID) (*model.SurveyActivities, error) {
	args := m.Called(ctx, userID, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SurveyActivities), args.Error(1)
}

func (m *MockSurveyActivitiesRepo) CreateOnce(ctx context.Context, entry *model.SurveyActivities) (*model.SurveyActivities, bool, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*model.SurveyActivities), args.Bool(1), args.Error(2)
}

func newCachedRepo(t *testing.T) (*miniredis.Miniredis, *MockSurveyActivitiesRepo, SurveyActivitiesRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	next := &MockSurveyActivitiesRepo{}
	return mr, next, NewCachedSurveyActivitiesRepo(next, rdb, time.Hour, zap.NewNop())
}

func sampleEntry(userID, surveyID uuid.UUID) *model.SurveyActivities {
	coords := model.Coordinates{Lat: 40.7, Lng: -74}
	return &model.SurveyActivities{
		ID:       uuid.New(),
		SurveyID: surveyID,
		UserID:   userID,
		Activities: datatypes.NewJSONType([]model.Activity{
			{Name: "Pottery", CostRange: model.CostMedium, Coordinates: &coords},
		}),
		Model: "gpt-4o-mini",
	}
}

func TestCachedSurveyActivitiesRepo_ReadThrough(t *testing.T) {
	mr, next, repo := newCachedRepo(t)
	ctx := context.Background()
	userID, surveyID := uuid.New(), uuid.New()
	entry := sampleEntry(userID, surveyID)

	next.On("GetBySurveyID", mock.Anything, userID, surveyID).Return(entry, nil).Once()

	got, err := repo.GetBySurveyID(ctx, userID, surveyID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	assert.True(t, mr.Exists(resultsKey(surveyID)))
	assert.Equal(t, time.Hour, mr.TTL(resultsKey(surveyID)))

	// Second read is served from redis; the mock allows only one call.
	got, err = repo.GetBySurveyID(ctx, userID, surveyID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	require.Len(t, got.List(), 1)
	assert.Equal(t, "Pottery", got.List()[0].Name)
	assert.Equal(t, 40.7, got.List()[0].Coordinates.Lat)
	next.AssertExpectations(t)
}

func TestCachedSurveyActivitiesRepo_OwnerMismatchFallsThrough(t *testing.T) {
	_, next, repo := newCachedRepo(t)
	ctx := context.Background()
	owner, intruder, surveyID := uuid.New(), uuid.New(), uuid.New()

	next.On("CreateOnce", mock.Anything, mock.Anything).Return(sampleEntry(owner, surveyID), true, nil)
	_, created, err := repo.CreateOnce(ctx, sampleEntry(owner, surveyID))
	require.NoError(t, err)
	assert.True(t, created)

	next.On("GetBySurveyID", mock.Anything, intruder, surveyID).Return(nil, gorm.ErrRecordNotFound)
	_, err = repo.GetBySurveyID(ctx, intruder, surveyID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCachedSurveyActivitiesRepo_CorruptEntryIsDropped(t *testing.T) {
	mr, next, repo := newCachedRepo(t)
	ctx := context.Background()
	userID, surveyID := uuid.New(), uuid.New()
	require.NoError(t, mr.Set(resultsKey(surveyID), "{not json"))

	next.On("GetBySurveyID", mock.Anything, userID, surveyID).Return(sampleEntry(userID, surveyID), nil)

	got, err := repo.GetBySurveyID(ctx, userID, surveyID)
	require.NoError(t, err)
	assert.Equal(t, surveyID, got.SurveyID)
	next.AssertExpectations(t)
}

func TestCachedSurveyActivitiesRepo_RedisDownStillServes(t *testing.T) {
	mr, next, repo := newCachedRepo(t)
	mr.Close()
	userID, surveyID := uuid.New(), uuid.New()

	next.On("GetBySurveyID", mock.Anything, userID, surveyID).Return(sampleEntry(userID, surveyID), nil)

	got, err := repo.GetBySurveyID(context.Background(), userID, surveyID)
	require.NoError(t, err)
	assert.Equal(t, surveyID, got.SurveyID)
}
