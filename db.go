package monopng

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ScreenDB caches encoded screens.
type ScreenDB struct {
	db *sql.DB
}

// NewScreenDB opens or creates the cache in file.
func NewScreenDB(file string) (*ScreenDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS screen (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, settings TEXT NOT NULL, png BLOB NOT NULL, UNIQUE (sha1, settings))"); err != nil {
		db.Close()
		return nil, err
	}

	return &ScreenDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *ScreenDB) Close() error {
	return db.db.Close()
}

// FindScreen returns the screen previously stored for the source hash and
// encoder settings, or nil if there isn't one.
func (db *ScreenDB) FindScreen(sha, settings string) ([]byte, error) {
	var png []byte
	switch err := db.db.QueryRow("SELECT png FROM screen WHERE sha1 = ? AND settings = ?", sha, settings).Scan(&png); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return png, nil
	default:
		return nil, err
	}
}

// AddScreen stores an encoded screen, replacing any existing one.
func (db *ScreenDB) AddScreen(sha, settings string, png []byte) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO screen (sha1, settings, png) VALUES (?, ?, ?)", sha, settings, png); err != nil {
		return err
	}
	return nil
}
