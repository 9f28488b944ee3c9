package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface.
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository.
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new folder.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, parent_id, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.OwnerID,
	).Scan(&folder.ID, &folder.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder scoped to its owner.
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, owner_id, created_at
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	var folder models.Folder
	err := executor.QueryRow(ctx, query, id, ownerID).Scan(
		&folder.ID,
		&folder.Name,
		&folder.ParentID,
		&folder.OwnerID,
		&folder.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Rename updates the name in one conditioned statement so a concurrent
// delete cannot slip between an existence check and the write.
func (r *PostgresFolderRepository) Rename(ctx context.Context, id, ownerID, name string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1
		WHERE id = $2 AND owner_id = $3
		RETURNING id, name, parent_id, owner_id, created_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	var folder models.Folder
	err := executor.QueryRow(ctx, query, name, id, ownerID).Scan(
		&folder.ID,
		&folder.Name,
		&folder.ParentID,
		&folder.OwnerID,
		&folder.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("rename folder: %w", err)
	}

	return &folder, nil
}

// ListChildren lists immediate child folders, name ascending.
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT id, name, parent_id, owner_id, created_at
			FROM %s
			WHERE owner_id = $1 AND parent_id IS NULL
			ORDER BY name ASC
		`, r.tables.Folders)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT id, name, parent_id, owner_id, created_at
			FROM %s
			WHERE owner_id = $1 AND parent_id = $2
			ORDER BY name ASC
		`, r.tables.Folders)
		args = append(args, ownerID, *parentID)
	}

	return r.scanMany(ctx, query, args...)
}

// ListAll returns the owner's entire forest, name ascending.
func (r *PostgresFolderRepository) ListAll(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, owner_id, created_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY name ASC
	`, r.tables.Folders)

	return r.scanMany(ctx, query, ownerID)
}

// CollectDescendants computes the descendant closure with a recursive
// CTE. The base row is owner-scoped; children share the owner by
// invariant (no cross-owner nesting), so the walk needs no extra
// filter.
func (r *PostgresFolderRepository) CollectDescendants(ctx context.Context, id, ownerID string) ([]string, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM %s WHERE id = $1 AND owner_id = $2
			UNION ALL
			SELECT f.id
			FROM %s f
			JOIN subtree s ON f.parent_id = s.id
		)
		SELECT id FROM subtree
	`, r.tables.Folders, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("collect descendants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var folderID string
		if err := rows.Scan(&folderID); err != nil {
			return nil, fmt.Errorf("scan folder id: %w", err)
		}
		ids = append(ids, folderID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate descendants: %w", err)
	}

	// Empty closure means the starting folder itself did not match
	if len(ids) == 0 {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return ids, nil
}

// DeleteByIDs removes the given folders.
func (r *PostgresFolderRepository) DeleteByIDs(ctx context.Context, ownerID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE owner_id = $1 AND id = ANY($2)
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, ownerID, ids)
	if err != nil {
		return 0, fmt.Errorf("delete folders: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *PostgresFolderRepository) scanMany(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.ParentID,
			&folder.OwnerID,
			&folder.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
