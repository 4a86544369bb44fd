package videostorage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/models"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/jptime"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/storage/sqlite"
)

type VideoStorage struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *VideoStorage {
	return &VideoStorage{
		db: db,
	}
}

// videoRow mirrors one row of the videos table. Conversion to
// models.Video happens in toVideo and nowhere else.
type videoRow struct {
	ID        int64          `db:"id"`
	Title     sql.NullString `db:"title"`
	Tags      sql.NullString `db:"tags"`
	Location  sql.NullString `db:"location"`
	BaseURL   sql.NullString `db:"baseUrl"`
	MovieID   string         `db:"movieId"`
	CreatedAt sql.NullString `db:"createdAt"`
}

func toVideo(row videoRow) models.Video {
	var tags []string
	for _, t := range strings.Split(row.Tags.String, ",") {
		if t != "" {
			tags = append(tags, t)
		}
	}

	created := jptime.Now()
	if row.CreatedAt.Valid {
		if t, err := jptime.Parse(row.CreatedAt.String); err == nil {
			created = t
		}
	}

	baseURL := row.BaseURL.String

	return models.Video{
		Title:        row.Title.String,
		Tags:         tags,
		Location:     row.Location.String,
		GenerateDate: created,
		BaseURL:      baseURL,
		MovieID:      row.MovieID,
		URL:          fmt.Sprintf("%s/%s.mp4", strings.TrimRight(baseURL, "/"), row.MovieID),
	}
}

func (s *VideoStorage) Save(v models.Video) error {
	const op = "storage.sqlite.videos.Save"

	query := fmt.Sprintf(`INSERT INTO %s (title, tags, location, baseUrl, movieId, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)`, sqlite.VideosTable)

	_, err := s.db.Exec(query,
		v.Title,
		strings.Join(v.Tags, ","),
		v.Location,
		v.BaseURL,
		v.MovieID,
		jptime.FormatDB(v.GenerateDate),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Search filters by optional substring and tag predicates, newest first.
// Substring matching uses SQLite LIKE: case-insensitive for ASCII,
// byte-wise for everything else. A tag matches only as a whole
// comma-delimited token, so "tag2" never matches a record tagged "tag20".
func (s *VideoStorage) Search(q string, tags []string, limit int) ([]models.Video, error) {
	const op = "storage.sqlite.videos.Search"

	query := fmt.Sprintf(`SELECT id, title, tags, location, baseUrl, movieId, createdAt FROM %s WHERE 1=1`, sqlite.VideosTable)
	var args []interface{}

	if q != "" {
		query += " AND (title LIKE ? OR location LIKE ?)"
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}

	for _, t := range tags {
		query += " AND (',' || tags || ',') LIKE ?"
		args = append(args, "%,"+t+",%")
	}

	query += " ORDER BY createdAt DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Queryx(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var row videoRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		videos = append(videos, toVideo(row))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return videos, nil
}

// TagStrings returns the raw stored tag strings scanned oldest-created
// first; splitting and deduplication belong to the service layer.
func (s *VideoStorage) TagStrings() ([]string, error) {
	const op = "storage.sqlite.videos.TagStrings"

	query := fmt.Sprintf(`SELECT tags FROM %s WHERE tags IS NOT NULL AND tags != '' ORDER BY createdAt ASC`, sqlite.VideosTable)

	var tagStrings []string
	if err := s.db.Select(&tagStrings, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tagStrings, nil
}

// ByMovieIDs fetches the records whose movieId is in ids, in no
// particular order. Unknown ids are simply absent from the result.
func (s *VideoStorage) ByMovieIDs(ids []string) ([]models.Video, error) {
	const op = "storage.sqlite.videos.ByMovieIDs"

	query, args, err := sqlx.In(fmt.Sprintf(`SELECT id, title, tags, location, baseUrl, movieId, createdAt FROM %s WHERE movieId IN (?)`, sqlite.VideosTable), ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Queryx(s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var row videoRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		videos = append(videos, toVideo(row))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return videos, nil
}
