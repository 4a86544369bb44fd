package camerastorage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/errs"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/models"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/storage/sqlite"
)

type CameraStorage struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *CameraStorage {
	return &CameraStorage{
		db: db,
	}
}

type cameraRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
	URL       string  `db:"url"`
}

func (s *CameraStorage) Camera(id string) (models.Camera, error) {
	const op = "storage.sqlite.cameras.Camera"

	var row cameraRow
	query := fmt.Sprintf(`SELECT id, name, latitude, longitude, url FROM %s WHERE id = ?`, sqlite.CamerasTable)

	if err := s.db.Get(&row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Camera{}, fmt.Errorf("%s: %w", op, errs.ErrCameraNotFound)
		}
		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Camera{
		Name: row.Name,
		ID:   row.ID,
		Coordinate: models.Coordinate{
			Lat: row.Latitude,
			Lng: row.Longitude,
		},
		URL: row.URL,
	}, nil
}
