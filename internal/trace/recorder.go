package trace

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/neurowire/lifnet/internal/lif"
)

// Recorder persists per-tick waveforms for later inspection. Recording is
// an external concern layered on the core's plain tick outputs; the engine
// never depends on it.
type Recorder struct {
	mu     sync.Mutex
	db     *sql.DB
	dbPath string
}

// NewRecorder opens (creating if needed) the trace database under dir.
func NewRecorder(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}

	dbPath := filepath.Join(dir, "trace.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening trace database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing trace schema: %w", err)
	}

	return &Recorder{db: db, dbPath: dbPath}, nil
}

// Path returns the location of the trace database file.
func (r *Recorder) Path() string {
	return r.dbPath
}

// Close closes the underlying database.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Close()
}

// BeginRun registers a new run and returns its id.
func (r *Recorder) BeginRun(ctx context.Context, name, mode string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO runs (name, mode, created_at) VALUES (?, ?, ?)",
		name, mode, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// RecordTick stores one tick's input and output vectors.
func (r *Recorder) RecordTick(ctx context.Context, runID int64, tick int, in lif.TickInput, out lif.TickOutput) error {
	hw, err := json.Marshal(out.HiddenWeights)
	if err != nil {
		return fmt.Errorf("encoding hidden weights: %w", err)
	}
	ow, err := json.Marshal(out.OutWeights)
	if err != nil {
		return fmt.Errorf("encoding output weights: %w", err)
	}

	reset := 0
	if in.Reset {
		reset = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO ticks (run_id, tick, reset, inputs, hidden, outputs, hidden_weights, output_weights)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, tick, reset,
		bitString(in.Inputs[:]), bitString(out.Hidden[:]), bitString(out.Out[:]),
		string(hw), string(ow))
	if err != nil {
		return fmt.Errorf("inserting tick %d: %w", tick, err)
	}
	return nil
}

// TickCount returns the number of recorded ticks for a run.
func (r *Recorder) TickCount(ctx context.Context, runID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ticks WHERE run_id = ?", runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting ticks: %w", err)
	}
	return n, nil
}

// SpikeCounts aggregates how many ticks each hidden and output neuron
// spiked on during a run.
func (r *Recorder) SpikeCounts(ctx context.Context, runID int64) (hidden [lif.HiddenSize]int, out [lif.OutputSize]int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, "SELECT hidden, outputs FROM ticks WHERE run_id = ? ORDER BY tick", runID)
	if err != nil {
		return hidden, out, fmt.Errorf("querying ticks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h, o string
		if err := rows.Scan(&h, &o); err != nil {
			return hidden, out, fmt.Errorf("scanning tick: %w", err)
		}
		for i := 0; i < len(h) && i < lif.HiddenSize; i++ {
			if h[i] == '1' {
				hidden[i]++
			}
		}
		for i := 0; i < len(o) && i < lif.OutputSize; i++ {
			if o[i] == '1' {
				out[i]++
			}
		}
	}
	if err := rows.Err(); err != nil {
		return hidden, out, fmt.Errorf("iterating ticks: %w", err)
	}
	return hidden, out, nil
}

// LatestRun returns the id and name of the most recently created run.
func (r *Recorder) LatestRun(ctx context.Context) (int64, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id int64
	var name string
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM runs ORDER BY id DESC LIMIT 1").Scan(&id, &name)
	if err == sql.ErrNoRows {
		return 0, "", fmt.Errorf("no recorded runs")
	}
	if err != nil {
		return 0, "", fmt.Errorf("querying latest run: %w", err)
	}
	return id, name, nil
}

// RecordedTick is one stored tick, decoded.
type RecordedTick struct {
	Tick    int
	Reset   bool
	Inputs  string
	Hidden  string
	Outputs string
}

// Ticks returns the recorded ticks of a run in tick order.
func (r *Recorder) Ticks(ctx context.Context, runID int64) ([]RecordedTick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx,
		"SELECT tick, reset, inputs, hidden, outputs FROM ticks WHERE run_id = ? ORDER BY tick", runID)
	if err != nil {
		return nil, fmt.Errorf("querying ticks: %w", err)
	}
	defer rows.Close()

	var out []RecordedTick
	for rows.Next() {
		var rt RecordedTick
		var reset int
		if err := rows.Scan(&rt.Tick, &reset, &rt.Inputs, &rt.Hidden, &rt.Outputs); err != nil {
			return nil, fmt.Errorf("scanning tick: %w", err)
		}
		rt.Reset = reset != 0
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ticks: %w", err)
	}
	return out, nil
}

// bitString renders a spike vector as a '0'/'1' string, line 0 first.
func bitString(bits []bool) string {
	buf := make([]byte, len(bits))
	for i, b := range bits {
		if b {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
