// Package journal persists committed treasury events in a sqlite database so they can
// be replayed or inspected after the fact.
package journal

import (
	"fmt"
	"time"

	"charity_dao/contract"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// busy is the time to wait for a sqlite lock from another process, in ms.
const busy = 1000

const schema = `
CREATE TABLE IF NOT EXISTS events (
	seq  INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT    NOT NULL,
	tx   TEXT    NOT NULL,
	at   INTEGER NOT NULL,
	line TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS events_tx ON events (tx);
CREATE INDEX IF NOT EXISTS events_kind ON events (kind);
`

// Entry is one stored event together with its position in the journal.
type Entry struct {
	Seq  int64  `db:"seq"`
	Kind string `db:"kind"`
	Tx   string `db:"tx"`
	At   int64  `db:"at"`
	Line string `db:"line"`
}

// Event converts the row back to the engine's event type.
func (e Entry) Event() contract.Event {
	return contract.Event{Kind: e.Kind, TxID: e.Tx, At: time.Unix(e.At, 0).UTC(), Line: e.Line}
}

// SQLite is a contract.EventSink backed by a sqlite file.
type SQLite struct {
	db *sqlx.DB
}

// URI builds the sqlite connection string for filename.
func URI(filename string, inMemory bool) string {
	uri := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=wal", filename, busy)
	if inMemory {
		uri += "&mode=memory&cache=shared"
	}
	return uri
}

// Open creates or opens the journal at path.
func Open(path string) (*SQLite, error) {
	return open(URI(path, false))
}

// OpenInMemory is a throwaway journal, mostly for tests and the memory backend.
func OpenInMemory(name string) (*SQLite, error) {
	return open(URI(name, true))
}

func open(uri string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite3", uri)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Record implements contract.EventSink.
func (j *SQLite) Record(ev contract.Event) error {
	_, err := j.db.NamedExec(
		`INSERT INTO events (kind, tx, at, line) VALUES (:kind, :tx, :at, :line)`,
		Entry{Kind: ev.Kind, Tx: ev.TxID, At: ev.At.Unix(), Line: ev.Line},
	)
	return err
}

// Since returns up to limit entries with a sequence number greater than after, oldest first.
func (j *SQLite) Since(after int64, limit int) ([]Entry, error) {
	var out []Entry
	err := j.db.Select(&out, `SELECT seq, kind, tx, at, line FROM events WHERE seq > ? ORDER BY seq LIMIT ?`, after, limit)
	return out, err
}

// ByKind returns every entry of one event kind, oldest first.
func (j *SQLite) ByKind(kind string) ([]Entry, error) {
	var out []Entry
	err := j.db.Select(&out, `SELECT seq, kind, tx, at, line FROM events WHERE kind = ? ORDER BY seq`, kind)
	return out, err
}

// ByTx returns the events one operation produced.
func (j *SQLite) ByTx(tx string) ([]Entry, error) {
	var out []Entry
	err := j.db.Select(&out, `SELECT seq, kind, tx, at, line FROM events WHERE tx = ? ORDER BY seq`, tx)
	return out, err
}

// Count is the number of stored events.
func (j *SQLite) Count() (int64, error) {
	var n int64
	err := j.db.Get(&n, `SELECT COUNT(*) FROM events`)
	return n, err
}

// Close closes the database handle.
func (j *SQLite) Close() error {
	return j.db.Close()
}
