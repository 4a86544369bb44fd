package videoservice

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/models"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/sl"
)

type VideoService struct {
	log           *slog.Logger
	videoProvider VideoProvider
}

type VideoProvider interface {
	Search(q string, tags []string, limit int) ([]models.Video, error)
	TagStrings() ([]string, error)
	ByMovieIDs(ids []string) ([]models.Video, error)
}

func New(log *slog.Logger, videoProvider VideoProvider) *VideoService {
	return &VideoService{
		log:           log,
		videoProvider: videoProvider,
	}
}

// Search returns videos newest first, filtered by an optional substring
// (matched against title or location) and an optional comma-separated
// tag list. Every tag must be present on a record for it to match.
func (s *VideoService) Search(q, tagsCsv string, limit int) ([]models.Video, error) {
	const op = "service.videos.Search"

	log := s.log.With(
		slog.String("op", op),
		slog.String("q", q),
		slog.String("tags", tagsCsv),
		slog.Int("limit", limit),
	)

	videos, err := s.videoProvider.Search(q, SplitTags(tagsCsv), limit)
	if err != nil {
		log.Error("failed to search videos", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("videos found", slog.Int("count", len(videos)))

	return videos, nil
}

// Tags lists every distinct tag, ordered by first appearance when records
// are scanned oldest first.
func (s *VideoService) Tags() ([]string, error) {
	const op = "service.videos.Tags"

	log := s.log.With(slog.String("op", op))

	tagStrings, err := s.videoProvider.TagStrings()
	if err != nil {
		log.Error("failed to list tags", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]struct{})
	tags := []string{}
	for _, tagString := range tagStrings {
		for _, tag := range SplitTags(tagString) {
			if _, ok := seen[tag]; ok {
				continue
			}

			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return tags, nil
}

// Bulk returns the videos for ids in the exact order and multiplicity
// requested; unknown ids are skipped. Empty input short-circuits without
// touching the store.
func (s *VideoService) Bulk(ids []string) ([]models.Video, error) {
	const op = "service.videos.Bulk"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("requested", len(ids)),
	)

	if len(ids) == 0 {
		return []models.Video{}, nil
	}

	found, err := s.videoProvider.ByMovieIDs(ids)
	if err != nil {
		log.Error("failed to fetch videos", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[string]models.Video, len(found))
	for _, v := range found {
		byID[v.MovieID] = v
	}

	videos := []models.Video{}
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}

	log.Info("videos fetched", slog.Int("count", len(videos)))

	return videos, nil
}

// SplitTags splits a comma-separated tag string, trimming whitespace and
// dropping empty entries.
func SplitTags(csv string) []string {
	var tags []string
	for _, t := range strings.Split(csv, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}
