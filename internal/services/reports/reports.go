package reportservice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/errs"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/models"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/jptime"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/sl"
)

// Titles assigned when a report arrives without one.
var defaultTitles = []string{
	"未来創造展で最高の作品に出会った！",
	"これが未来だ！テンション爆上げ中！",
	"未来創造展で感動の瞬間をキャッチ！",
	"学生の創造力がヤバすぎる！アガる！",
	"未来創造展2026、熱気がスゴい！",
	"HAL大阪の技術力に圧倒された！",
	"未来を感じてテンションMAX！",
	"クリエイターの情熱に心が震えた！",
	"未来創造展で夢が広がる瞬間！",
	"最先端の技術に出会ってアガりまくり！",
	"こんな作品見たことない！感動！",
	"未来創造展、期待を超えてきた！",
}

var defaultTags = []string{"未来創造展", "アガる", "未来創造展2026", "HAL大阪"}

// ReportService runs the capture-and-publish pipeline: fetch a clip from
// the capture source, upload it to the object store, then record its
// metadata. The stages are strictly sequential and none is retried; the
// first failure aborts the run.
type ReportService struct {
	log          *slog.Logger
	clipFetcher  ClipFetcher
	clipUploader ClipUploader
	videoSaver   VideoSaver
	publicURL    string
}

type ClipFetcher interface {
	Fetch(location string) (io.ReadCloser, string, error)
}

type ClipUploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
}

type VideoSaver interface {
	Save(v models.Video) error
}

func New(log *slog.Logger, clipFetcher ClipFetcher, clipUploader ClipUploader, videoSaver VideoSaver, publicURL string) *ReportService {
	return &ReportService{
		log:          log,
		clipFetcher:  clipFetcher,
		clipUploader: clipUploader,
		videoSaver:   videoSaver,
		publicURL:    publicURL,
	}
}

// Report processes one capture report. The location is taken as-is and is
// not checked against the cameras table. Once started, a run cannot be
// cancelled; it ends in success, timeout, or error.
func (s *ReportService) Report(req models.ReportRequest) (models.Report, error) {
	const op = "service.reports.Report"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user", req.User),
		slog.String("location", req.Location),
	)

	log.Info("report received")

	stream, contentType, err := s.clipFetcher.Fetch(req.Location)
	if err != nil {
		log.Error("failed to fetch clip", sl.Err(err))

		return models.Report{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stream.Close()

	movieID := uuid.NewString()
	key := movieID + ".mp4"

	log.Info("uploading clip", slog.String("movie_id", movieID), slog.String("content_type", contentType))

	if err := s.clipUploader.Upload(context.Background(), key, stream, contentType); err != nil {
		log.Error("failed to upload clip", sl.Err(err))

		return models.Report{}, fmt.Errorf("%s: %w", op, err)
	}

	video := models.Video{
		Title:        resolveTitle(req.Title),
		Tags:         resolveTags(req.Tags),
		Location:     req.Location,
		GenerateDate: resolveGenerateDate(req.GenerateDate),
		BaseURL:      s.publicURL,
		MovieID:      movieID,
	}

	if err := s.videoSaver.Save(video); err != nil {
		// The clip is already durable under key with no row referencing
		// it. The orphan is logged for operator reconciliation; there is
		// no compensating delete.
		log.Error("failed to save video metadata, object is orphaned",
			slog.String("key", key), sl.Err(err))

		return models.Report{}, errs.ErrWriteToDB
	}

	url := strings.TrimRight(s.publicURL, "/") + "/" + key

	log.Info("report published", slog.String("movie_id", movieID), slog.String("url", url))

	return models.Report{
		MovieID:  movieID,
		URL:      url,
		User:     req.User,
		Location: req.Location,
	}, nil
}

func resolveTitle(title string) string {
	if title != "" {
		return title
	}

	return defaultTitles[rand.Intn(len(defaultTitles))]
}

func resolveTags(tags []string) []string {
	if len(tags) == 0 {
		tags = defaultTags
	}

	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}

	return cleaned
}

// resolveGenerateDate lives in Asia/Tokyo at second precision: the
// caller's value when supplied (zoneless values are taken as UTC),
// otherwise the current time.
func resolveGenerateDate(d *models.ReportDate) time.Time {
	if d != nil {
		return jptime.Normalize(d.Time)
	}

	return jptime.Now()
}
