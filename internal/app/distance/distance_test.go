package distance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"shiningstar/internal/app/config"
	"shiningstar/internal/app/distance/mocks"
	"shiningstar/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const origin = "1650 Woodbourn St, Philadelphia, PA"

func TestTable_Resolve(t *testing.T) {
	table := NewTable(map[string]float64{"100 Main St, Levittown PA": 12.5})

	d, err := table.Resolve(context.Background(), origin, "  100 main st,  levittown pa. ")
	require.NoError(t, err)
	assert.Equal(t, 12.5, d)

	_, err = table.Resolve(context.Background(), origin, "1 Unknown Rd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ds.ErrDistanceUnavailable))
}

func TestTable_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTable(nil).Resolve(ctx, origin, "anywhere")
	assert.True(t, errors.Is(err, ds.ErrDistanceUnavailable))
}

func TestMatrixClient_Resolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, origin, r.URL.Query().Get("origins"))
		assert.Equal(t, "200 Oak Ave, Bristol PA", r.URL.Query().Get("destinations"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":16093.44,"text":"10.0 mi"}}]}]}`))
	}))
	defer srv.Close()

	client := NewMatrixClient(srv.URL, "secret", time.Second, 100, 1)
	d, err := client.Resolve(context.Background(), origin, "200 Oak Ave, Bristol PA")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, d, 1e-9)
}

func TestMatrixClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"request denied", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
		}},
		{"route not found", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"NOT_FOUND"}]}]}`))
		}},
		{"garbage", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
		{"slow", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewMatrixClient(srv.URL, "", 50*time.Millisecond, 100, 1)
			_, err := client.Resolve(context.Background(), origin, "somewhere")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ds.ErrDistanceUnavailable), "got %v", err)
		})
	}
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string]float64
}

func (m *memoryCache) GetDistance(_ context.Context, key string) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memoryCache) SetDistance(_ context.Context, key string, miles float64, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = miles
	return nil
}

func TestCached_ResolvesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockResolver(ctrl)
	next.EXPECT().Resolve(gomock.Any(), origin, "12 Pine St").Return(8.25, nil).Times(1)

	cached := NewCached(next, &memoryCache{data: map[string]float64{}}, time.Hour)
	for i := 0; i < 3; i++ {
		d, err := cached.Resolve(context.Background(), origin, "12 Pine St")
		require.NoError(t, err)
		assert.Equal(t, 8.25, d)
	}
}

func TestCached_DoesNotCacheFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockResolver(ctrl)
	next.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(0.0, unavailable("down")).Times(2)

	cache := &memoryCache{data: map[string]float64{}}
	cached := NewCached(next, cache, time.Hour)
	for i := 0; i < 2; i++ {
		_, err := cached.Resolve(context.Background(), origin, "12 Pine St")
		assert.True(t, errors.Is(err, ds.ErrDistanceUnavailable))
	}
	assert.Empty(t, cache.data)
}

func TestCacheKey_Normalized(t *testing.T) {
	assert.Equal(t, CacheKey(origin, "12 Pine St"), CacheKey(origin, " 12  PINE st. "))
	assert.NotEqual(t, CacheKey(origin, "12 Pine St"), CacheKey(origin, "14 Pine St"))
}

func TestFromConfig(t *testing.T) {
	r, err := FromConfig(config.DistanceConfig{Mode: config.DistanceModeTable}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Table{}, r)

	r, err = FromConfig(config.DistanceConfig{Mode: config.DistanceModeMatrix, Endpoint: "http://localhost"}, &memoryCache{})
	require.NoError(t, err)
	assert.IsType(t, &Cached{}, r)

	_, err = FromConfig(config.DistanceConfig{Mode: "geocoder"}, nil)
	assert.Error(t, err)
}
