package database

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"varanbook/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Tenant{},
		&domain.User{},
		&domain.Profile{},
		&domain.Shortlist{},
		&domain.RefreshToken{},
		&domain.PasswordResetToken{},
		&domain.AuditLog{},
	)
}

// IsPostgres reports whether the connection speaks PostgreSQL.
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// SetTenant binds the tenant id to the current transaction as the
// app.current_tenant_id session variable that the row-security policies
// read. Empty string (platform operator) leaves only NULL-tenant rows
// visible on isolated tables. No-op outside PostgreSQL.
func SetTenant(tx *gorm.DB, tenantID *uuid.UUID) error {
	if !IsPostgres(tx) {
		return nil
	}
	tid := ""
	if tenantID != nil {
		tid = tenantID.String()
	}
	// set_config with is_local=true lasts until the end of the transaction.
	return tx.Exec("SELECT set_config('app.current_tenant_id', ?, true)", tid).Error
}

// TenantTransaction runs fn inside a single transaction bound to the given
// tenant. Commit on success, rollback on error or panic, so a disconnected
// caller can never leave a partial write behind.
func TenantTransaction(ctx context.Context, db *gorm.DB, tenantID *uuid.UUID, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := SetTenant(tx, tenantID); err != nil {
			return err
		}
		return fn(tx)
	})
}
