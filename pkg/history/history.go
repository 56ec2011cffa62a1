package history

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pkgbench/pkgbench/pkg/benchmark"
	"github.com/pkgbench/pkgbench/pkg/config"
)

// Store persists run records across benchmark invocations.
type Store interface {
	Start(ctx context.Context) error
	Stop() error

	// SaveRecords stores every record of a completed invocation.
	SaveRecords(ctx context.Context, invocationID string, set benchmark.RecordSet) error

	// ListInvocations returns the most recent invocations with per-run
	// counts, newest first.
	ListInvocations(ctx context.Context, limit int) ([]InvocationSummary, error)

	// ListRuns returns the stored runs of one invocation ordered by tool
	// and run number.
	ListRuns(ctx context.Context, invocationID string) ([]Run, error)
}

// Compile-time interface check.
var _ Store = (*store)(nil)

type store struct {
	log logrus.FieldLogger
	cfg *config.HistoryConfig
	db  *gorm.DB
}

// NewStore creates a history Store backed by the configured database
// driver.
func NewStore(log logrus.FieldLogger, cfg *config.HistoryConfig) Store {
	return &store{
		log: log.WithField("component", "history"),
		cfg: cfg,
	}
}

// Start opens the database connection and runs migrations.
func (s *store) Start(ctx context.Context) error {
	var dialector gorm.Dialector

	gormCfg := &gorm.Config{
		Logger: logger.Discard,
	}

	switch s.cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(s.cfg.SQLite.Path)
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			s.cfg.Postgres.Host,
			s.cfg.Postgres.Port,
			s.cfg.Postgres.User,
			s.cfg.Postgres.Password,
			s.cfg.Postgres.Database,
			s.cfg.Postgres.SSLMode,
		)
		dialector = postgres.Open(dsn)
	default:
		return fmt.Errorf("unsupported history driver: %s", s.cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}

	s.db = db

	if err := s.db.WithContext(ctx).AutoMigrate(&Run{}); err != nil {
		return fmt.Errorf("running history migrations: %w", err)
	}

	s.log.WithField("driver", s.cfg.Driver).Debug("History database connected")

	return nil
}

// Stop closes the underlying database connection.
func (s *store) Stop() error {
	if s.db == nil {
		return nil
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("getting underlying db: %w", err)
	}

	return sqlDB.Close()
}

// SaveRecords stores every record of a completed invocation in a single
// transaction.
func (s *store) SaveRecords(
	ctx context.Context, invocationID string, set benchmark.RecordSet,
) error {
	runs := make([]*Run, 0, len(set))

	for tool, records := range set {
		for _, rec := range records {
			runs = append(runs, &Run{
				InvocationID: invocationID,
				Tool:         tool,
				RunNumber:    rec.RunNumber,
				InstallTime:  rec.Duration,
				LockFileSize: rec.LockSize,
				PackageCount: rec.PackageCount,
				Success:      rec.Success,
				ErrorDetail:  rec.ErrorDetail,
				Timestamp:    rec.Timestamp.Unix(),
			})
		}
	}

	if len(runs) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(runs, len(runs)).Error; err != nil {
			return fmt.Errorf("inserting run records: %w", err)
		}

		return nil
	})
}

// ListInvocations returns the most recent invocations, newest first.
func (s *store) ListInvocations(
	ctx context.Context, limit int,
) ([]InvocationSummary, error) {
	var summaries []InvocationSummary

	if err := s.db.WithContext(ctx).
		Model(&Run{}).
		Select(
			"invocation_id, count(*) as records, " +
				"sum(case when success then 1 else 0 end) as succeeded, " +
				"min(timestamp) as first_run",
		).
		Group("invocation_id").
		Order("first_run DESC").
		Limit(limit).
		Scan(&summaries).Error; err != nil {
		return nil, fmt.Errorf("listing invocations: %w", err)
	}

	return summaries, nil
}

// ListRuns returns the stored runs of one invocation.
func (s *store) ListRuns(ctx context.Context, invocationID string) ([]Run, error) {
	var runs []Run

	if err := s.db.WithContext(ctx).
		Where("invocation_id = ?", invocationID).
		Order("tool, run_number").
		Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	return runs, nil
}
