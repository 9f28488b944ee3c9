package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateSchema sets up the users/folders/documents tables for the given
// prefix. Idempotent: every statement is IF NOT EXISTS.
//
// documents.folder_id and the owner_id columns cascade on delete so a
// user-row delete takes the whole forest with it; subtree deletes still
// remove document rows explicitly first, because the blob refs have to
// be gathered before the rows disappear.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('admin', 'member')),
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name TEXT NOT NULL,
				parent_id UUID REFERENCES %s(id) ON DELETE CASCADE,
				owner_id UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Folders, tables.Folders, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name TEXT NOT NULL,
				original_file_name TEXT NOT NULL,
				mime_type TEXT NOT NULL,
				storage_ref TEXT NOT NULL,
				folder_id UUID REFERENCES %s(id) ON DELETE CASCADE,
				owner_id UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Documents, tables.Folders, tables.Users),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_owner ON %s (owner_id)`,
			tables.Folders, tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_parent ON %s (parent_id)`,
			tables.Folders, tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_owner_folder ON %s (owner_id, folder_id)`,
			tables.Documents, tables.Documents),
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	return nil
}

// DropSchema removes the tables for the given prefix. Used by cmd/seed
// for a fresh start; refuses nothing here, the caller gates on
// environment.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmts := []string{
		fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, tables.Documents),
		fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, tables.Folders),
		fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, tables.Users),
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
	}

	return nil
}
