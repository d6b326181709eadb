/*
Package gallery records every render in a SQLite database so that unchanged
files aren't rendered twice with the same settings.
*/
package gallery

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB is a gallery database.
type DB struct {
	db *sql.DB
}

// Render describes one rendered image.
type Render struct {
	// SHA1 identifies the source content
	SHA1 string
	// Name of the source file
	Name string
	// Size of the source file in bytes
	Size int64
	// Settings is a canonical description of the render options
	Settings string
	// Path the image was written to
	Path string
	// Side of the canvas before scaling
	Side    int
	Created time.Time
}

// Open opens or creates the gallery database at file.
func Open(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"CREATE TABLE IF NOT EXISTS source (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, size INTEGER NOT NULL)",
		"CREATE TABLE IF NOT EXISTS render (id INTEGER PRIMARY KEY NOT NULL, source_id INTEGER NOT NULL, settings TEXT NOT NULL, path TEXT NOT NULL, side INTEGER NOT NULL, created INTEGER NOT NULL, UNIQUE(source_id, settings), FOREIGN KEY(source_id) REFERENCES source(id))",
	} {
		if _, err = db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &DB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

// addSource returns the id of the source row for sha1, creating it if
// needed. Workers may race to add the same content so the insert tolerates
// an existing row.
func (db *DB) addSource(sha1, name string, size int64) (int64, error) {
	if _, err := db.db.Exec("INSERT OR IGNORE INTO source (sha1, name, size) VALUES (?, ?, ?)", sha1, name, size); err != nil {
		return 0, err
	}

	var id int64
	if err := db.db.QueryRow("SELECT id FROM source WHERE sha1 = ?", sha1).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Record stores r, replacing any earlier render of the same content with the
// same settings.
func (db *DB) Record(r Render) error {
	id, err := db.addSource(r.SHA1, r.Name, r.Size)
	if err != nil {
		return err
	}

	if r.Created.IsZero() {
		r.Created = time.Now()
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO render (source_id, settings, path, side, created) VALUES (?, ?, ?, ?, ?)", id, r.Settings, r.Path, r.Side, r.Created.Unix()); err != nil {
		return err
	}
	return nil
}

// Lookup returns the previous render of the content identified by sha1 with
// the given settings.
func (db *DB) Lookup(sha1, settings string) (Render, bool, error) {
	var r Render
	var created int64
	switch err := db.db.QueryRow("SELECT s.sha1, s.name, s.size, r.settings, r.path, r.side, r.created FROM render AS r JOIN source AS s ON r.source_id = s.id WHERE s.sha1 = ? AND r.settings = ?", sha1, settings).Scan(&r.SHA1, &r.Name, &r.Size, &r.Settings, &r.Path, &r.Side, &created); err {
	case sql.ErrNoRows:
		return Render{}, false, nil
	case nil:
		r.Created = time.Unix(created, 0)
		return r, true, nil
	default:
		return Render{}, false, err
	}
}

// List returns every render, oldest first.
func (db *DB) List() ([]Render, error) {
	rows, err := db.db.Query("SELECT s.sha1, s.name, s.size, r.settings, r.path, r.side, r.created FROM render AS r JOIN source AS s ON r.source_id = s.id ORDER BY r.created, r.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var renders []Render
	for rows.Next() {
		var r Render
		var created int64
		if err := rows.Scan(&r.SHA1, &r.Name, &r.Size, &r.Settings, &r.Path, &r.Side, &created); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0)
		renders = append(renders, r)
	}

	return renders, rows.Err()
}
