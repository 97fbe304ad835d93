package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/abdimannabov/CoinFlip/internal/adapters/http"
	"github.com/abdimannabov/CoinFlip/internal/app"
	"github.com/abdimannabov/CoinFlip/internal/domain"
)

type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }

type stubSource struct{ url string }

func (s stubSource) RandomImage(context.Context) (string, error) { return s.url, nil }

type fixture struct {
	clock *clockwork.FakeClock
	seq   *app.FlipSequencer
	e     *echo.Echo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := clockwork.NewFakeClock()
	seq := app.NewFlipSequencer(
		stubSource{url: "https://images.dog.ceo/breeds/pug/1.jpg"},
		stubSource{url: "https://cdn2.thecatapi.com/images/1.jpg"},
		fixedRNG{val: 0},
		app.WithClock(clock),
	)

	e := echo.New()
	e.Use(httpadapter.RequestIDMiddleware())
	httpadapter.NewHandler(seq).Register(e)

	return &fixture{clock: clock, seq: seq, e: e}
}

func (f *fixture) do(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) finishCycle(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, d := range []time.Duration{domain.SpinDuration, domain.RevealPause} {
		require.NoError(t, f.clock.BlockUntilContext(ctx, 1))
		f.clock.Advance(d)
	}
	f.seq.Wait()
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestGetFlip_Idle(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/v1/flip")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpadapter.FlipResponse
	decode(t, rec, &resp)
	assert.Equal(t, domain.PhaseIdle, resp.Phase)
	assert.Nil(t, resp.Outcome)
	assert.True(t, resp.Meta.CanFlip)
	assert.Equal(t, "req-1", resp.Meta.RequestID)
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-Id"))
}

func TestStartFlip_AcceptedThenConflict(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/v1/flip")
	require.Equal(t, http.StatusAccepted, rec.Code)
	var started httpadapter.FlipResponse
	decode(t, rec, &started)
	assert.Equal(t, domain.PhaseFlipping, started.Phase)
	assert.Equal(t, 1800.0, started.Rotation)
	assert.False(t, started.Meta.CanFlip)

	rec = f.do(http.MethodPost, "/v1/flip")
	require.Equal(t, http.StatusConflict, rec.Code)
	var conflict httpadapter.ErrorResponse
	decode(t, rec, &conflict)
	assert.Equal(t, domain.ErrFlipInProgress.Error(), conflict.Error)
	require.NotNil(t, conflict.State)
	assert.Equal(t, started.CycleID, conflict.State.CycleID)

	f.finishCycle(t)

	rec = f.do(http.MethodGet, "/v1/flip")
	var settled httpadapter.FlipResponse
	decode(t, rec, &settled)
	assert.Equal(t, domain.PhaseSettled, settled.Phase)
	require.NotNil(t, settled.Outcome)
	assert.Equal(t, "Heads (Dog)", settled.Outcome.Label)
	assert.Equal(t, "Woof! Woof!", settled.Outcome.Greeting)
	require.NotNil(t, settled.Image)
	assert.Equal(t, domain.Dog, settled.Image.Category)
	assert.Equal(t, "https://images.dog.ceo/breeds/pug/1.jpg", settled.Image.URL)
}

func TestReportImageError(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/v1/flip/nope/image-error")
	assert.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, http.StatusAccepted, f.do(http.MethodPost, "/v1/flip").Code)
	f.finishCycle(t)
	cycle := f.seq.Snapshot().CycleID

	rec = f.do(http.MethodPost, "/v1/flip/"+cycle+"/image-error")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var failed httpadapter.FlipResponse
	decode(t, f.do(http.MethodGet, "/v1/flip"), &failed)
	assert.Equal(t, domain.PhaseFailed, failed.Phase)
	assert.Nil(t, failed.Image)
	assert.Equal(t, "Failed to load dog image. Please try again.", failed.Error)
}

func TestMetricsRoute(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
