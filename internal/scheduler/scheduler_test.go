package scheduler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/middleware"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/ratelimit"
)

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func TestScheduler_Add(t *testing.T) {
	s := New(quietLogger())
	require.NoError(t, s.Add("sweep", "@every 5m", func() {}))
	require.NoError(t, s.Add("hourly", "0 * * * *", func() {}))
	assert.Error(t, s.Add("sweep", "@every 1m", func() {}))
	assert.Error(t, s.Add("broken", "every five minutes", func() {}))
	assert.Equal(t, 2, s.Len())
}

func TestScheduler_RunsAndStops(t *testing.T) {
	s := New(quietLogger())
	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add("tick", "@every 1s", func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	}))
	s.Start()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestSweepWindows(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	_, err := store.Hit(context.Background(), "old", time.Now().Add(-time.Hour), time.Minute)
	require.NoError(t, err)
	_, err = store.Hit(context.Background(), "new", time.Now(), time.Minute)
	require.NoError(t, err)

	SweepWindows(store, time.Minute, quietLogger())()
	assert.Equal(t, 1, store.Len())
}

func TestCleanupLogins(t *testing.T) {
	th := middleware.NewLoginThrottle(time.Second, 1)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/admin/login", nil), httptest.NewRecorder())
	require.NoError(t, th.Middleware()(func(echo.Context) error { return nil })(c))
	require.Equal(t, 1, th.Len())

	CleanupLogins(th, time.Hour, quietLogger())()
	assert.Equal(t, 1, th.Len())

	// A negative idle time puts the cutoff in the future.
	CleanupLogins(th, -time.Minute, quietLogger())()
	assert.Equal(t, 0, th.Len())
}
