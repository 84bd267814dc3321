// Package tracing keeps an audit trail of carousel transitions in SQLite.
// The trail is write-only: nothing reads it back to restore a position.
package tracing

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
	"go.uber.org/zap"

	"github.com/novaera/showcase/carousel"
	"github.com/novaera/showcase/hooking"
	"github.com/novaera/showcase/timing"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS transitions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	component TEXT NOT NULL,
	kind TEXT NOT NULL,
	from_index INTEGER NOT NULL,
	to_index INTEGER NOT NULL,
	time_ms INTEGER NOT NULL
);`

const insertSQL = `INSERT INTO transitions
	(component, kind, from_index, to_index, time_ms) VALUES (?, ?, ?, ?, ?)`

// ErrClosed is returned when flushing a closed recorder.
var ErrClosed = errors.New("tracing: recorder is closed")

type entry struct {
	component string
	tr        carousel.Transition
}

// TransitionRecorder is a hook that buffers carousel transitions and writes
// them to SQLite in batches.
type TransitionRecorder struct {
	db        *sql.DB
	path      string
	batchSize int
	logger    *zap.Logger

	lock    sync.Mutex
	pending []entry
	closed  bool
	lastErr error
}

// NewTransitionRecorder creates a recorder writing to path + ".sqlite3". An
// empty path picks a unique name. The file must not exist yet. The buffer is
// flushed when the process exits through atexit.
func NewTransitionRecorder(
	path string,
	logger *zap.Logger,
) (*TransitionRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if path == "" {
		path = "showcase_trace_" + xid.New().String()
	}

	filename := path
	if !strings.HasSuffix(filename, ".sqlite3") {
		filename += ".sqlite3"
	}

	if _, err := os.Stat(filename); err == nil {
		return nil, fmt.Errorf("tracing: file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("tracing: opening %s: %w", filename, err)
	}

	r, err := NewTransitionRecorderWithDB(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	r.path = filename
	logger.Info("recording transitions", zap.String("path", filename))

	atexit.Register(func() {
		if err := r.Flush(); err != nil && !errors.Is(err, ErrClosed) {
			logger.Error("flushing transitions at exit", zap.Error(err))
		}
	})

	return r, nil
}

// NewTransitionRecorderWithDB creates a recorder on an open database.
func NewTransitionRecorderWithDB(
	db *sql.DB,
	logger *zap.Logger,
) (*TransitionRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("tracing: creating table: %w", err)
	}

	return &TransitionRecorder{
		db:        db,
		batchSize: 1000,
		logger:    logger,
	}, nil
}

// WithBatchSize sets how many transitions are buffered before a flush.
func (r *TransitionRecorder) WithBatchSize(n int) *TransitionRecorder {
	if n < 1 {
		n = 1
	}

	r.batchSize = n

	return r
}

// Path returns the database file, or "" when created from a *sql.DB.
func (r *TransitionRecorder) Path() string {
	return r.path
}

// Err returns the last error met while writing from the hook.
func (r *TransitionRecorder) Err() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.lastErr
}

// Func buffers the transition carried by ctx.
func (r *TransitionRecorder) Func(ctx hooking.HookCtx) {
	tr, ok := ctx.Item.(carousel.Transition)
	if !ok {
		return
	}

	component := ""
	if named, ok := ctx.Domain.(timing.Named); ok {
		component = named.Name()
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return
	}

	r.pending = append(r.pending, entry{component: component, tr: tr})
	if len(r.pending) < r.batchSize {
		return
	}

	if err := r.flushLocked(); err != nil {
		r.lastErr = err
		r.logger.Error("writing transitions", zap.Error(err))
	}
}

// Flush writes all buffered transitions.
func (r *TransitionRecorder) Flush() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return ErrClosed
	}

	return r.flushLocked()
}

func (r *TransitionRecorder) flushLocked() (err error) {
	if len(r.pending) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("tracing: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("tracing: prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range r.pending {
		_, err = stmt.Exec(
			e.component,
			e.tr.Kind.String(),
			e.tr.From,
			e.tr.To,
			uint64(e.tr.Time),
		)
		if err != nil {
			return fmt.Errorf("tracing: insert: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("tracing: commit: %w", err)
	}

	r.pending = r.pending[:0]

	return nil
}

// Close flushes and closes the database. Later transitions are ignored.
func (r *TransitionRecorder) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return nil
	}

	flushErr := r.flushLocked()
	r.closed = true

	return errors.Join(flushErr, r.db.Close())
}
