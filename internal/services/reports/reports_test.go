package reportservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/errs"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/models"
)

const publicURL = "https://pub.example.com/"

type fakeFetcher struct {
	body        string
	contentType string
	err         error
	calls       int
}

func (f *fakeFetcher) Fetch(location string) (io.ReadCloser, string, error) {
	f.calls++
	if f.err != nil {
		return nil, "", f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), f.contentType, nil
}

type fakeUploader struct {
	err         error
	key         string
	contentType string
	body        []byte
	calls       int
}

func (u *fakeUploader) Upload(_ context.Context, key string, body io.Reader, contentType string) error {
	u.calls++
	if u.err != nil {
		return u.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	u.key = key
	u.contentType = contentType
	u.body = data
	return nil
}

type fakeSaver struct {
	err   error
	saved []models.Video
}

func (s *fakeSaver) Save(v models.Video) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, v)
	return nil
}

func newTestService(f *fakeFetcher, u *fakeUploader, s *fakeSaver) *ReportService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, f, u, s, publicURL)
}

func TestReportSuccess(t *testing.T) {
	fetcher := &fakeFetcher{body: "clip-bytes", contentType: "video/mp4"}
	uploader := &fakeUploader{}
	saver := &fakeSaver{}
	svc := newTestService(fetcher, uploader, saver)

	gd := models.ReportDate{Time: time.Date(2026, 2, 14, 3, 0, 0, 0, time.UTC)}
	report, err := svc.Report(models.ReportRequest{
		User:         "misoten",
		Location:     "osaka-1",
		Title:        "駅前の様子",
		Tags:         []string{" 大阪駅 ", "tag2", ""},
		GenerateDate: &gd,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(report.MovieID)
	require.NoError(t, err)
	require.Equal(t, "misoten", report.User)
	require.Equal(t, "osaka-1", report.Location)
	require.Equal(t, "https://pub.example.com/"+report.MovieID+".mp4", report.URL)

	require.Equal(t, report.MovieID+".mp4", uploader.key)
	require.Equal(t, "video/mp4", uploader.contentType)
	require.Equal(t, []byte("clip-bytes"), uploader.body)

	require.Len(t, saver.saved, 1)
	v := saver.saved[0]
	require.Equal(t, report.MovieID, v.MovieID)
	require.Equal(t, "駅前の様子", v.Title)
	require.Equal(t, []string{"大阪駅", "tag2"}, v.Tags)
	require.Equal(t, "osaka-1", v.Location)
	require.Equal(t, publicURL, v.BaseURL)

	// 03:00 UTC is noon in Tokyo.
	require.Equal(t, 12, v.GenerateDate.Hour())
	require.Equal(t, "Asia/Tokyo", v.GenerateDate.Location().String())
}

func TestReportDefaults(t *testing.T) {
	fetcher := &fakeFetcher{body: "clip", contentType: "video/mp4"}
	uploader := &fakeUploader{}
	saver := &fakeSaver{}
	svc := newTestService(fetcher, uploader, saver)

	before := time.Now()
	_, err := svc.Report(models.ReportRequest{User: "u", Location: "osaka-1"})
	require.NoError(t, err)

	v := saver.saved[0]
	require.Contains(t, defaultTitles, v.Title)
	require.Equal(t, defaultTags, v.Tags)
	require.False(t, v.GenerateDate.Before(before.Add(-time.Second)))
	require.Equal(t, 0, v.GenerateDate.Nanosecond())
}

func TestReportFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errs.ErrCaptureUnavailable}
	uploader := &fakeUploader{}
	saver := &fakeSaver{}
	svc := newTestService(fetcher, uploader, saver)

	_, err := svc.Report(models.ReportRequest{User: "u", Location: "osaka-1"})
	require.ErrorIs(t, err, errs.ErrCaptureUnavailable)
	require.Zero(t, uploader.calls)
	require.Empty(t, saver.saved)
}

func TestReportUploadFailure(t *testing.T) {
	fetcher := &fakeFetcher{body: "clip", contentType: "video/mp4"}
	uploader := &fakeUploader{err: errs.ErrUploadFailed}
	saver := &fakeSaver{}
	svc := newTestService(fetcher, uploader, saver)

	_, err := svc.Report(models.ReportRequest{User: "u", Location: "osaka-1"})
	require.ErrorIs(t, err, errs.ErrUploadFailed)
	require.Empty(t, saver.saved)
}

func TestReportPersistFailure(t *testing.T) {
	fetcher := &fakeFetcher{body: "clip", contentType: "video/mp4"}
	uploader := &fakeUploader{}
	saver := &fakeSaver{err: errors.New("UNIQUE constraint failed")}
	svc := newTestService(fetcher, uploader, saver)

	_, err := svc.Report(models.ReportRequest{User: "u", Location: "osaka-1"})
	require.ErrorIs(t, err, errs.ErrWriteToDB)

	// The upload already happened; the object is orphaned, not rolled back.
	require.Equal(t, 1, uploader.calls)
}

func TestReportMovieIDsDoNotCollide(t *testing.T) {
	fetcher := &fakeFetcher{body: "clip", contentType: "video/mp4"}
	uploader := &fakeUploader{}
	saver := &fakeSaver{}
	svc := newTestService(fetcher, uploader, saver)

	first, err := svc.Report(models.ReportRequest{User: "u", Location: "osaka-1"})
	require.NoError(t, err)
	second, err := svc.Report(models.ReportRequest{User: "u", Location: "osaka-1"})
	require.NoError(t, err)

	require.NotEqual(t, first.MovieID, second.MovieID)
}
