package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver đăng ký scheme "pgx5://" cho golang-migrate
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source đọc các file .sql từ disk
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// Migrator wrap golang-migrate cho thư mục migrations/
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator tạo migrator từ DSN postgres:// và đường dẫn thư mục migrations
func NewMigrator(dsn, migrationsPath string) (*Migrator, error) {
	m, err := migrate.New("file://"+migrationsPath, toPgx5DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	m.Log = migrateLogger{}
	return &Migrator{m: m}, nil
}

// Up apply tất cả migrations còn pending, ErrNoChange không phải lỗi
func (mg *Migrator) Up() error {
	from, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d (manual intervention required)", from)
	}

	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Uint("version", from).Msg("[MIGRATION] Already up to date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := mg.Version()
	log.Info().Uint("from", from).Uint("to", to).Msg("[MIGRATION] Applied")
	return nil
}

// Down rollback một step
func (mg *Migrator) Down() error {
	if err := mg.m.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migration: down failed: %w", err)
	}
	return nil
}

// Version trả về version hiện tại, 0 nếu chưa có migration nào
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to get version: %w", err)
	}
	return v, dirty, nil
}

func (mg *Migrator) Close() {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		log.Warn().Err(srcErr).Msg("[MIGRATION] Source close failed")
	}
	if dbErr != nil {
		log.Warn().Err(dbErr).Msg("[MIGRATION] Database close failed")
	}
}

// RunMigrations tiện cho startup: new -> up -> close
func RunMigrations(dsn, migrationsPath string) error {
	mg, err := NewMigrator(dsn, migrationsPath)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}

// toPgx5DSN đổi scheme postgres:// hoặc postgresql:// sang pgx5://
func toPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// migrateLogger adapt migrate.Logger sang zerolog
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	log.Debug().Msgf("[MIGRATION] "+strings.TrimSpace(format), v...)
}

func (migrateLogger) Verbose() bool {
	return false
}
