package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quokkabay/quokkabay/internal/infra/llm"
	mq "github.com/quokkabay/quokkabay/internal/infra/queue"
	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockSurveyRepo is a mock implementation of repo.SurveyRepo
type MockSurveyRepo struct {
	mock.Mock
}

func (m *MockSurveyRepo) Create(ctx context.Context, s *model.Survey) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil && s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockSurveyRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Survey, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *MockSurveyRepo) Latest(ctx context.Context, userID uuid.UUID) (*model.Survey, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *MockSurveyRepo) List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Survey, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Survey), args.Error(1)
}

func (m *MockSurveyRepo) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockSurveyActivitiesRepo is a mock implementation of repo.SurveyActivitiesRepo
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
	if fn, ok := args.Get(0).(func(context.Context, *model.SurveyActivities) *model.SurveyActivities); ok {
		return fn(ctx, entry), args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.SurveyActivities), args.Bool(1), args.Error(2)
}

// MockFavoriteRepo is a mock implementation of repo.FavoriteRepo
type MockFavoriteRepo struct {
	mock.Mock
}

func (m *MockFavoriteRepo) Upsert(ctx context.Context, f *model.Favorite) (*model.Favorite, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepo) Delete(ctx context.Context, userID uuid.UUID, name string, link *string) (int64, error) {
	args := m.Called(ctx, userID, name, link)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockFavoriteRepo) List(ctx context.Context, userID uuid.UUID) ([]*model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Favorite), args.Error(1)
}

// MockActivityGenerator is a mock implementation of ActivityGenerator
type MockActivityGenerator struct {
	mock.Mock
}

func (m *MockActivityGenerator) Generate(ctx context.Context, hobbies []string, zipCode string) (*Generation, error) {
	args := m.Called(ctx, hobbies, zipCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Generation), args.Error(1)
}

// MockCompleter is a mock implementation of llm.Completer
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockCompleter) Provider() string { return "mock" }

// MockPublisher is a mock implementation of mq.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, ev mq.Event) error {
	return m.Called(ctx, ev).Error(0)
}

// memStore is an in-memory stand-in for the three repositories with the same uniqueness
// and ownership rules as the database schema.
type memStore struct {
	mu        sync.Mutex
	surveys   map[uuid.UUID]*model.Survey
	results   map[uuid.UUID]*model.SurveyActivities
	favorites []*model.Favorite
	clock     time.Time
}

func newMemStore() *memStore {
	return &memStore{
		surveys: map[uuid.UUID]*model.Survey{},
		results: map[uuid.UUID]*model.SurveyActivities{},
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type memSurveys struct{ *memStore }
type memResults struct{ *memStore }
type memFavorites struct{ *memStore }

func (s memSurveys) Create(_ context.Context, sv *model.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv.ID = uuid.New()
	sv.CreatedAt = s.tick()
	cp := *sv
	s.surveys[sv.ID] = &cp
	return nil
}

func (s memSurveys) GetByID(_ context.Context, userID, id uuid.UUID) (*model.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv, ok := s.surveys[id]
	if !ok || sv.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sv
	return &cp, nil
}

func (s memSurveys) Latest(ctx context.Context, userID uuid.UUID) (*model.Survey, error) {
	list, _ := s.List(ctx, userID, 1)
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return list[0], nil
}

func (s memSurveys) List(_ context.Context, userID uuid.UUID, limit int) ([]*model.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Survey
	for _, sv := range s.surveys {
		if sv.UserID == userID {
			cp := *sv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s memSurveys) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	list, _ := s.List(ctx, userID, 1)
	return len(list) > 0, nil
}

func (s memResults) GetBySurveyID(_ context.Context, userID, surveyID uuid.UUID) (*model.SurveyActivities, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.results[surveyID]
	if !ok || e.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (s memResults) CreateOnce(_ context.Context, entry *model.SurveyActivities) (*model.SurveyActivities, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.results[entry.SurveyID]; ok {
		return e, false, nil
	}
	entry.ID = uuid.New()
	entry.CreatedAt = s.tick()
	s.results[entry.SurveyID] = entry
	return entry, true, nil
}

func (s memFavorites) Upsert(_ context.Context, f *model.Favorite) (*model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := model.LinkKey(f.ActivityLink)
	for _, ex := range s.favorites {
		if ex.UserID == f.UserID && ex.ActivityName == f.ActivityName && ex.ActivityLinkKey == key {
			ex.SurveyID, ex.Activity, ex.ActivityLink = f.SurveyID, f.Activity, f.ActivityLink
			cp := *ex
			return &cp, nil
		}
	}
	cp := *f
	cp.ID = uuid.New()
	cp.ActivityLinkKey = key
	cp.CreatedAt = s.tick()
	s.favorites = append(s.favorites, &cp)
	out := cp
	return &out, nil
}

func (s memFavorites) Delete(_ context.Context, userID uuid.UUID, name string, link *string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	kept := s.favorites[:0]
	for _, f := range s.favorites {
		match := f.UserID == userID && f.ActivityName == name &&
			((link == nil && f.ActivityLink == nil) || (link != nil && f.ActivityLink != nil && *f.ActivityLink == *link))
		if match {
			n++
			continue
		}
		kept = append(kept, f)
	}
	s.favorites = kept
	return n, nil
}

func (s memFavorites) List(_ context.Context, userID uuid.UUID) ([]*model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Favorite
	for _, f := range s.favorites {
		if f.UserID == userID {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
