package reporthandler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/errs"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/models"
)

type fakeReporter struct {
	report models.Report
	err    error
	last   models.ReportRequest
	calls  int
}

func (f *fakeReporter) Report(req models.ReportRequest) (models.Report, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return models.Report{}, f.err
	}
	return f.report, nil
}

func newTestHandler(r *fakeReporter) *ReportHandler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, r)
}

func doRequest(t *testing.T, h *ReportHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Report(w, req)
	return w
}

func TestReportCreated(t *testing.T) {
	reporter := &fakeReporter{report: models.Report{
		MovieID:  "uuid-1",
		URL:      "https://pub.example.com/uuid-1.mp4",
		User:     "misoten",
		Location: "osaka-1",
	}}
	h := newTestHandler(reporter)

	w := doRequest(t, h, `{"user":"misoten","location":"osaka-1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&resp))
	require.Equal(t, "misoten", resp.User)
	require.Equal(t, "osaka-1", resp.Location)
	require.Equal(t, "uuid-1", resp.MovieID)
	require.Equal(t, "https://pub.example.com/uuid-1.mp4", resp.URL)
	require.NotEmpty(t, resp.Message)
}

func TestReportAcceptsZonelessGenerateDate(t *testing.T) {
	reporter := &fakeReporter{report: models.Report{
		MovieID:  "uuid-1",
		URL:      "https://pub.example.com/uuid-1.mp4",
		User:     "misoten",
		Location: "osaka-1",
	}}
	h := newTestHandler(reporter)

	w := doRequest(t, h, `{"user":"misoten","location":"osaka-1","generateDate":"2025-11-27T10:42:30"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, reporter.calls)

	// Zoneless values are taken as UTC.
	require.NotNil(t, reporter.last.GenerateDate)
	want := time.Date(2025, 11, 27, 10, 42, 30, 0, time.UTC)
	require.True(t, reporter.last.GenerateDate.Equal(want))
}

func TestReportAcceptsOffsetGenerateDate(t *testing.T) {
	reporter := &fakeReporter{report: models.Report{MovieID: "uuid-1"}}
	h := newTestHandler(reporter)

	w := doRequest(t, h, `{"user":"misoten","location":"osaka-1","generateDate":"2025-11-27T19:42:30+09:00"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	require.NotNil(t, reporter.last.GenerateDate)
	want := time.Date(2025, 11, 27, 10, 42, 30, 0, time.UTC)
	require.True(t, reporter.last.GenerateDate.Equal(want))
}

func TestReportEmptyBody(t *testing.T) {
	reporter := &fakeReporter{}
	h := newTestHandler(reporter)

	w := doRequest(t, h, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, reporter.calls)
}

func TestReportMissingLocation(t *testing.T) {
	reporter := &fakeReporter{}
	h := newTestHandler(reporter)

	w := doRequest(t, h, `{"user":"misoten"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, reporter.calls)
}

func TestReportErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"capture unavailable", errs.ErrCaptureUnavailable, http.StatusBadGateway},
		{"upload failed", errs.ErrUploadFailed, http.StatusInternalServerError},
		{"db write failed", errs.ErrWriteToDB, http.StatusInternalServerError},
		{"store unavailable", errs.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeReporter{err: tt.err})

			w := doRequest(t, h, `{"user":"misoten","location":"osaka-1"}`)
			require.Equal(t, tt.want, w.Code)
		})
	}
}
