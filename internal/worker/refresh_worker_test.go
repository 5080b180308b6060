package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-ds/internal/model"
)

type recordingHandler struct {
	jobs []model.RefreshJob
	err  error
}

func (h *recordingHandler) HandleRefresh(ctx context.Context, job model.RefreshJob) error {
	h.jobs = append(h.jobs, job)
	return h.err
}

func newTestWorker(h RefreshHandler) (*RefreshWorker, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return NewRefreshWorker(nil, h, "test.refresh", logger), hook
}

func TestProcess_DispatchesJob(t *testing.T) {
	h := &recordingHandler{}
	w, hook := newTestWorker(h)

	err := w.process(context.Background(), []byte(`{"job_id":"j-1","names":["금융투자업규정"]}`))

	require.NoError(t, err)
	require.Len(t, h.jobs, 1)
	assert.Equal(t, "j-1", h.jobs[0].JobID)
	assert.Equal(t, []string{"금융투자업규정"}, h.jobs[0].Names)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "refresh job done", hook.LastEntry().Message)
	assert.Equal(t, "j-1", hook.LastEntry().Data["job_id"])
}

func TestProcess_BadPayload(t *testing.T) {
	h := &recordingHandler{}
	w, _ := newTestWorker(h)

	err := w.process(context.Background(), []byte(`not json`))

	assert.ErrorContains(t, err, "decode refresh job failed")
	assert.Empty(t, h.jobs)
}

func TestProcess_HandlerError(t *testing.T) {
	boom := errors.New("catalog missing")
	w, _ := newTestWorker(&recordingHandler{err: boom})

	err := w.process(context.Background(), []byte(`{"job_id":"j-2"}`))

	assert.ErrorIs(t, err, boom)
}

func TestClose_WithoutStart(t *testing.T) {
	w, _ := newTestWorker(&recordingHandler{})

	assert.NotPanics(t, w.Close)
}
