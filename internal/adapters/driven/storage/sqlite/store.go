package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/brainview-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/logger"
)

var migrateLog = logger.Scoped("migrate")

// Store is a SQLite database holding the analysis library.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.brainview/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".brainview", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// WAL lets the HTTP server read while an import writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// AnalysisStore returns an AnalysisStore interface backed by this store.
func (s *Store) AnalysisStore() driven.AnalysisStore {
	return &analysisStore{store: s}
}

// migrate brings the schema up to the latest embedded version.
func (s *Store) migrate(fsys fs.FS) error {
	m, err := s.newMigrate(fsys)
	if err != nil {
		return err
	}
	// Closing m would close s.db.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// SchemaVersion returns the applied migration version and whether the
// last migration failed halfway. Zero means no migration has run.
func (s *Store) SchemaVersion() (uint, bool, error) {
	m, err := s.newMigrate(migrations.FS)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (s *Store) newMigrate(fsys fs.FS) (*migrate.Migrate, error) {
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}
	driver, err := sqlitemigrate.WithInstance(s.db, &sqlitemigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("creating sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("creating migrate instance: %w", err)
	}
	m.Log = migrateLogger{}
	return m, nil
}

// migrateLogger routes golang-migrate output to the debug log.
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	migrateLog.Debug(strings.TrimSuffix(format, "\n"), v...)
}

func (migrateLogger) Verbose() bool {
	return logger.IsVerbose()
}

// ==================== Analysis Store ====================

// analysisStore implements driven.AnalysisStore.
type analysisStore struct {
	store *Store
}

var _ driven.AnalysisStore = (*analysisStore)(nil)

// Save stores or replaces an analysis.
func (s *analysisStore) Save(ctx context.Context, result *domain.AnalysisResult) error {
	if result == nil || result.ID == "" {
		return fmt.Errorf("%w: analysis id is required", domain.ErrInvalidInput)
	}

	summary := result.Summarise()
	planesJSON, err := json.Marshal(planeNames(summary.Planes))
	if err != nil {
		return fmt.Errorf("marshalling planes: %w", err)
	}
	emotionsJSON, err := json.Marshal(result.Emotions)
	if err != nil {
		return fmt.Errorf("marshalling emotions: %w", err)
	}
	brainJSON, err := json.Marshal(result.Brain)
	if err != nil {
		return fmt.Errorf("marshalling brain data: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO analyses (id, name, source, created_at, shape, planes, voxel_count,
			dominant, dominant_score, emotions, brain)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			source = excluded.source,
			created_at = excluded.created_at,
			shape = excluded.shape,
			planes = excluded.planes,
			voxel_count = excluded.voxel_count,
			dominant = excluded.dominant,
			dominant_score = excluded.dominant_score,
			emotions = excluded.emotions,
			brain = excluded.brain
	`, result.ID, result.Name, result.Source, result.CreatedAt.UTC().Format(time.RFC3339Nano),
		summary.Shape, string(planesJSON), summary.VoxelCount,
		string(summary.Dominant), summary.DominantPct, string(emotionsJSON), string(brainJSON))
	if err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}
	return nil
}

// Get retrieves an analysis by ID.
func (s *analysisStore) Get(ctx context.Context, id string) (*domain.AnalysisResult, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, source, created_at, emotions, brain
		FROM analyses WHERE id = ?
	`, id)

	var (
		result                            domain.AnalysisResult
		createdAt, emotionsJSON, brainStr string
	)
	err := row.Scan(&result.ID, &result.Name, &result.Source, &createdAt, &emotionsJSON, &brainStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning analysis: %w", err)
	}

	if result.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(emotionsJSON), &result.Emotions); err != nil {
		return nil, fmt.Errorf("unmarshalling emotions: %w", err)
	}
	if err := json.Unmarshal([]byte(brainStr), &result.Brain); err != nil {
		return nil, fmt.Errorf("unmarshalling brain data: %w", err)
	}
	return &result, nil
}

// List returns summaries of all analyses, newest first. Only the summary
// columns are read; brain payloads stay on disk.
func (s *analysisStore) List(ctx context.Context) ([]domain.AnalysisSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, source, created_at, shape, planes, voxel_count, dominant, dominant_score
		FROM analyses ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var summaries []domain.AnalysisSummary
	for rows.Next() {
		var (
			sum                  domain.AnalysisSummary
			createdAt, planesStr string
			dominant             string
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Source, &createdAt, &sum.Shape,
			&planesStr, &sum.VoxelCount, &dominant, &sum.DominantPct); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		if sum.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		var planes []string
		if err := json.Unmarshal([]byte(planesStr), &planes); err != nil {
			return nil, fmt.Errorf("unmarshalling planes: %w", err)
		}
		for _, p := range planes {
			sum.Planes = append(sum.Planes, domain.ViewMode(p))
		}
		sum.Dominant = domain.EmotionLabel(dominant)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Delete removes an analysis.
func (s *analysisStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	return nil
}

func planeNames(planes []domain.ViewMode) []string {
	names := make([]string, 0, len(planes))
	for _, p := range planes {
		names = append(names, p.String())
	}
	return names
}

// parseTime accepts RFC3339 as written by Save and SQLite's default layout.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
