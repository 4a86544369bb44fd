package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/config"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/errs"
)

const (
	VideosTable  = "videos"
	CamerasTable = "cameras"
)

// New opens the metadata database. The file must already exist and be
// provisioned (see cmd/migrator); a missing or unreadable file surfaces
// as ErrStoreUnavailable.
func New(cfg config.DB) (*sqlx.DB, error) {
	const op = "storage.sqlite.New"

	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=rw", cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, errs.ErrStoreUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, errs.ErrStoreUnavailable, err)
	}

	return db, nil
}
