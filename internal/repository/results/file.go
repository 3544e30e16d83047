package results

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oshokin/elevator-ids/internal/domain/elevator"
	"github.com/oshokin/elevator-ids/internal/domain/report"
)

// File names inside a run folder.
const (
	TableFilename    = "results.csv"
	SelectedFilename = "selected.csv"
	ManifestFilename = "run.json"
	TrailsDir        = "trails"

	dirPermissions  = 0o750
	filePermissions = 0o600
)

// Manifest summarizes a stored run.
type Manifest struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Seed      uint64    `json:"seed,string"`
	Rows      int       `json:"rows"`
	Selected  int       `json:"selected"`
}

// Repository defines persistence operations for experiment runs.
type Repository interface {
	Save(ctx context.Context, run *report.Run) (string, error)
	LoadTable(ctx context.Context, id string) ([][]string, error)
	LoadTrail(ctx context.Context, id string, row int) ([]elevator.Reading, error)
}

var (
	// ErrNotFound is returned when a run or trail does not exist.
	ErrNotFound = errors.New("run not found")
	// errRunIsNotSet is returned when a nil or unnamed run is saved.
	errRunIsNotSet = errors.New("run is not set")
	// errInvalidID is returned for run identifiers that escape the root.
	errInvalidID = errors.New("invalid run id")
)

// FileRepository stores runs as folders on disk.
type FileRepository struct {
	// root is the directory holding one folder per run.
	root string
	// mu serializes writers and readers of the same tree.
	mu sync.Mutex
}

// NewFileRepository creates a repository rooted at dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{
		root: filepath.Clean(dir),
	}
}

// Save writes run and returns the folder it was written to.
func (r *FileRepository) Save(_ context.Context, run *report.Run) (string, error) {
	if run == nil || run.ID == "" {
		return "", errRunIsNotSet
	}

	dir, err := r.runDir(run.ID)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err = os.MkdirAll(filepath.Join(dir, TrailsDir), dirPermissions); err != nil {
		return "", fmt.Errorf("create run folder: %w", err)
	}

	if err = writeTable(filepath.Join(dir, TableFilename), run.Rows); err != nil {
		return "", err
	}

	if err = writeTable(filepath.Join(dir, SelectedFilename), run.Selected); err != nil {
		return "", err
	}

	for i, row := range run.Rows {
		if err = writeJSON(filepath.Join(dir, TrailsDir, trailFilename(i)), row.Readings); err != nil {
			return "", fmt.Errorf("write trail %d: %w", i, err)
		}
	}

	manifest := Manifest{
		ID:        run.ID,
		StartedAt: run.StartedAt.UTC(),
		Seed:      run.Seed,
		Rows:      len(run.Rows),
		Selected:  len(run.Selected),
	}

	if err = writeJSON(filepath.Join(dir, ManifestFilename), manifest); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return dir, nil
}

// LoadTable reads the full result table of run id, header included.
func (r *FileRepository) LoadTable(_ context.Context, id string) ([][]string, error) {
	dir, err := r.runDir(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.Open(filepath.Join(dir, TableFilename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}

	return records, nil
}

// LoadTrail reads the reading trail of the given table row.
func (r *FileRepository) LoadTrail(_ context.Context, id string, row int) ([]elevator.Reading, error) {
	dir, err := r.runDir(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(filepath.Join(dir, TrailsDir, trailFilename(row)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read trail: %w", err)
	}

	var readings []elevator.Reading
	if err = json.Unmarshal(contents, &readings); err != nil {
		return nil, fmt.Errorf("decode trail: %w", err)
	}

	return readings, nil
}

func (r *FileRepository) runDir(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", errInvalidID, id)
	}

	return filepath.Join(r.root, id), nil
}

func trailFilename(row int) string {
	return fmt.Sprintf("row-%05d.json", row)
}

func writeTable(path string, rows []report.Row) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	w := csv.NewWriter(file)

	if err = w.Write(report.Columns()); err != nil {
		_ = file.Close()

		return fmt.Errorf("write table header: %w", err)
	}

	for _, row := range rows {
		if err = w.Write(row.Record()); err != nil {
			_ = file.Close()

			return fmt.Errorf("write table row: %w", err)
		}
	}

	w.Flush()

	if err = w.Error(); err != nil {
		_ = file.Close()

		return fmt.Errorf("flush table: %w", err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close table: %w", err)
	}

	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err = os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}
