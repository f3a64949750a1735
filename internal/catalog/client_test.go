package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (r *countingRecorder) CatalogFetch(kind, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = map[string]int{}
	}
	r.outcomes[kind+":"+outcome]++
}

func newBackend(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/courses/java-full-stack", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.Header.Get("Accept") != "application/json" {
			w.WriteHeader(http.StatusNotAcceptable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"slug":"java-full-stack","title":"Java Full Stack","body":"# Java\n\nSpring Boot and **React**.","price":29999,"rating":{"average":4.7,"count":312}}`))
	})
	mux.HandleFunc("/v1/jobs/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/v1/events/garbled", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCourseFetchAndCache(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := newBackend(t, &hits)
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	rec := &countingRecorder{}
	c := New(srv.URL+"/v1/", WithCacheTTL(time.Minute), WithClock(func() time.Time { return now }), WithRecorder(rec))

	course, err := c.Course(context.Background(), "java-full-stack")
	require.NoError(t, err)
	require.Equal(t, "Java Full Stack", course.Title)
	require.Equal(t, 312, *course.Rating.Count)

	_, err = c.Course(context.Background(), "java-full-stack")
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))

	now = now.Add(2 * time.Minute)
	_, err = c.Course(context.Background(), "java-full-stack")
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&hits))

	require.Equal(t, 2, rec.outcomes["courses:ok"])
	require.Equal(t, 1, rec.outcomes["courses:hit"])
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := newBackend(t, &hits)
	c := New(srv.URL + "/v1")
	ctx := context.Background()

	_, err := c.Course(ctx, "missing")
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = c.Job(ctx, "broken")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotFound))
	require.Contains(t, err.Error(), "500")

	_, err = c.Event(ctx, "garbled")
	require.Error(t, err)

	for _, id := range []string{"", "..", "a/b", "x?y"} {
		_, err = c.Course(ctx, id)
		require.Truef(t, errors.Is(err, ErrNotFound), "id %q", id)
	}
	require.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestDisabledClient(t *testing.T) {
	t.Parallel()

	c := New("")
	require.False(t, c.Enabled())
	_, err := c.Course(context.Background(), "go")
	require.True(t, errors.Is(err, ErrDisabled))
}

func TestZeroTTLDisablesCache(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := newBackend(t, &hits)
	c := New(srv.URL+"/v1", WithCacheTTL(0))
	for i := 0; i < 3; i++ {
		_, err := c.Course(context.Background(), "java-full-stack")
		require.NoError(t, err)
	}
	require.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestExpiredEntriesAreEvicted(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/courses/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"slug":"go","title":"Go"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	c := New(srv.URL, WithCacheTTL(time.Minute), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	for _, slug := range []string{"go", "java", "python"} {
		_, err := c.Course(ctx, slug)
		require.NoError(t, err)
	}
	require.Len(t, c.cache, 3)

	now = now.Add(2 * time.Minute)
	_, ok := c.cached("courses|go")
	require.False(t, ok)
	require.Len(t, c.cache, 2)

	_, err := c.Course(ctx, "rust")
	require.NoError(t, err)
	require.Len(t, c.cache, 1)
}
