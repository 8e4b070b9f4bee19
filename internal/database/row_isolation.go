package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Row-level security setup for PostgreSQL.
//
// The API's transactions bind app.current_tenant_id (see SetTenant); the
// policies below make the database itself refuse rows outside that tenant,
// independent of any application check. FORCE ROW LEVEL SECURITY extends
// the restriction to the table owner, so there is no code path that can
// read cross-tenant rows through these tables without the variable bound.
// The users policy lets NULL-tenant rows (platform operators) through;
// that bypass is always paired with the policy evaluator and never relied
// on alone.

const appRole = "app_user"

const createAppRole = `
DO $$ BEGIN
    CREATE ROLE app_user NOINHERIT LOGIN PASSWORD 'changeme_in_production';
EXCEPTION WHEN duplicate_object THEN null;
END $$`

const usersPolicy = `
CREATE POLICY tenant_isolation_policy ON users
AS PERMISSIVE
FOR ALL
TO app_user
USING (
    tenant_id IS NULL
    OR tenant_id = NULLIF(current_setting('app.current_tenant_id', true), '')::uuid
)
WITH CHECK (
    tenant_id IS NULL
    OR tenant_id = NULLIF(current_setting('app.current_tenant_id', true), '')::uuid
)`

const scopedPolicyTemplate = `
CREATE POLICY tenant_isolation_policy ON %s
AS PERMISSIVE
FOR ALL
TO app_user
USING (
    tenant_id = NULLIF(current_setting('app.current_tenant_id', true), '')::uuid
)
WITH CHECK (
    tenant_id = NULLIF(current_setting('app.current_tenant_id', true), '')::uuid
)`

// SetupRowIsolation enables and forces RLS on every tenant-scoped table,
// creates the restricted application role and installs the isolation
// policies. Identity flows (login, session ledger) run under a role with
// BYPASSRLS, configured outside the app. Idempotent; no-op outside
// PostgreSQL, where the repositories' explicit tenant filters are the
// enforcement layer.
func SetupRowIsolation(db *gorm.DB) error {
	if !IsPostgres(db) {
		return nil
	}

	if err := db.Exec(createAppRole).Error; err != nil {
		return err
	}
	if err := db.Exec("GRANT SELECT, INSERT, UPDATE, DELETE ON ALL TABLES IN SCHEMA public TO " + appRole).Error; err != nil {
		return err
	}
	if err := db.Exec("GRANT USAGE, SELECT ON ALL SEQUENCES IN SCHEMA public TO " + appRole).Error; err != nil {
		return err
	}

	tables := []string{"users", "profiles", "shortlists"}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY", table)).Error; err != nil {
			return err
		}
		if err := db.Exec(fmt.Sprintf("ALTER TABLE %s FORCE ROW LEVEL SECURITY", table)).Error; err != nil {
			return err
		}
		if err := db.Exec(fmt.Sprintf("DROP POLICY IF EXISTS tenant_isolation_policy ON %s", table)).Error; err != nil {
			return err
		}
	}

	if err := db.Exec(usersPolicy).Error; err != nil {
		return err
	}
	for _, table := range []string{"profiles", "shortlists"} {
		if err := db.Exec(fmt.Sprintf(scopedPolicyTemplate, table)).Error; err != nil {
			return err
		}
	}
	return nil
}
