package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"repair_quotes/internal/domain/entities"
	mock_interfaces "repair_quotes/internal/usecase/interfaces/mocks"

	"github.com/redis/go-redis/v9"
	"go.uber.org/mock/gomock"
)

type fakeStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	down bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *fakeStore) Get(_ context.Context, key string) *redis.StringCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := s.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s *fakeStore) MGet(_ context.Context, keys ...string) *redis.SliceCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return redis.NewSliceResult(nil, errors.New("connection refused"))
	}
	vals := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := s.data[k]; ok {
			vals[i] = v
		}
	}
	return redis.NewSliceResult(vals, nil)
}

func (s *fakeStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	switch v := value.(type) {
	case []byte:
		s.data[key] = string(v)
	case string:
		s.data[key] = v
	}
	s.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func TestCachedCatalogRepository_GetDevice(t *testing.T) {
	device := entities.Device{ID: "dev-1", Name: "Pixel 8", Brand: "Google", Category: "phone", Year: 2023}

	t.Run("miss then hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockICatalogRepository(ctrl)
		store := newFakeStore()
		repo := NewCachedCatalogRepository(source, store, time.Minute)

		source.EXPECT().GetDevice(gomock.Any(), "dev-1").Return(device, nil).Times(1)

		for i := 0; i < 2; i++ {
			got, err := repo.GetDevice(context.Background(), "dev-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != device {
				t.Fatalf("unexpected device: %+v", got)
			}
		}
		if store.ttls["catalog:device:dev-1"] != time.Minute {
			t.Fatalf("expected ttl to be applied")
		}
	})

	t.Run("not found is not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockICatalogRepository(ctrl)
		store := newFakeStore()
		repo := NewCachedCatalogRepository(source, store, time.Minute)

		source.EXPECT().GetDevice(gomock.Any(), "ghost").Return(entities.Device{}, nil).Times(2)

		for i := 0; i < 2; i++ {
			if _, err := repo.GetDevice(context.Background(), "ghost"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if len(store.data) != 0 {
			t.Fatalf("expected empty cache, got %v", store.data)
		}
	})

	t.Run("redis down falls back to source", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockICatalogRepository(ctrl)
		store := newFakeStore()
		store.down = true
		repo := NewCachedCatalogRepository(source, store, time.Minute)

		source.EXPECT().GetDevice(gomock.Any(), "dev-1").Return(device, nil)

		got, err := repo.GetDevice(context.Background(), "dev-1")
		if err != nil || got.ID != "dev-1" {
			t.Fatalf("unexpected result: %+v err=%v", got, err)
		}
	})

	t.Run("source error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockICatalogRepository(ctrl)
		repo := NewCachedCatalogRepository(source, newFakeStore(), time.Minute)

		source.EXPECT().GetDevice(gomock.Any(), "dev-1").Return(entities.Device{}, errors.New("db"))

		if _, err := repo.GetDevice(context.Background(), "dev-1"); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestCachedCatalogRepository_GetIssues(t *testing.T) {
	screen := entities.Issue{ID: "iss-1", Name: "Screen", Category: "screen", TimeMinutes: 90, PartsRequired: []string{"lcd"}}
	battery := entities.Issue{ID: "iss-2", Name: "Battery", Category: "battery", TimeMinutes: 30, PartsRequired: []string{}}

	t.Run("only misses hit the source", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockICatalogRepository(ctrl)
		store := newFakeStore()
		store.data["catalog:issue:iss-1"] = `{"id":"iss-1","name":"Screen","category":"screen","difficulty":"","time_minutes":90,"parts_required":["lcd"]}`
		repo := NewCachedCatalogRepository(source, store, time.Minute)

		source.EXPECT().GetIssues(gomock.Any(), []string{"iss-2", "iss-404"}).Return([]entities.Issue{battery}, nil)

		got, err := repo.GetIssues(context.Background(), []string{"iss-1", "iss-2", "iss-404"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].ID != "iss-1" || got[1].ID != "iss-2" {
			t.Fatalf("unexpected issues: %+v", got)
		}
		if _, ok := store.data["catalog:issue:iss-2"]; !ok {
			t.Fatalf("expected loaded issue to be cached")
		}
		if _, ok := store.data["catalog:issue:iss-404"]; ok {
			t.Fatalf("missing issue must not be cached")
		}
	})

	t.Run("all cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockICatalogRepository(ctrl)
		store := newFakeStore()
		repo := NewCachedCatalogRepository(source, store, time.Minute)
		repo.put(context.Background(), "catalog:issue:iss-1", screen)

		got, err := repo.GetIssues(context.Background(), []string{"iss-1"})
		if err != nil || len(got) != 1 || got[0].PartsRequired[0] != "lcd" {
			t.Fatalf("unexpected result: %+v err=%v", got, err)
		}
	})

	t.Run("redis down loads everything from source", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockICatalogRepository(ctrl)
		store := newFakeStore()
		store.down = true
		repo := NewCachedCatalogRepository(source, store, time.Minute)

		source.EXPECT().GetIssues(gomock.Any(), []string{"iss-1", "iss-2"}).Return([]entities.Issue{screen, battery}, nil)

		got, err := repo.GetIssues(context.Background(), []string{"iss-1", "iss-2"})
		if err != nil || len(got) != 2 {
			t.Fatalf("unexpected result: %+v err=%v", got, err)
		}
	})

	t.Run("empty ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := NewCachedCatalogRepository(mock_interfaces.NewMockICatalogRepository(ctrl), newFakeStore(), time.Minute)

		got, err := repo.GetIssues(context.Background(), nil)
		if err != nil || len(got) != 0 {
			t.Fatalf("unexpected result: %+v err=%v", got, err)
		}
	})
}
