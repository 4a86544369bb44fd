package camerastorage

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/errs"
)

func setupDB(t *testing.T) *CameraStorage {
	t.Helper()

	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE cameras (
			id TEXT PRIMARY KEY,
			name TEXT,
			latitude REAL,
			longitude REAL,
			url TEXT
		)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO cameras (id, name, latitude, longitude, url) VALUES (?, ?, ?, ?, ?)`,
		"osaka-1", "大阪駅前カメラ", 34.702485, 135.495951, "osaka-1")
	require.NoError(t, err)

	return New(db)
}

func TestCamera(t *testing.T) {
	s := setupDB(t)

	cam, err := s.Camera("osaka-1")
	require.NoError(t, err)
	require.Equal(t, "osaka-1", cam.ID)
	require.Equal(t, "大阪駅前カメラ", cam.Name)
	require.Equal(t, 34.702485, cam.Coordinate.Lat)
	require.Equal(t, 135.495951, cam.Coordinate.Lng)
}

func TestCameraNotFound(t *testing.T) {
	s := setupDB(t)

	_, err := s.Camera("unknown-id")
	require.ErrorIs(t, err, errs.ErrCameraNotFound)
}
