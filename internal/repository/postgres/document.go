package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface.
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const documentColumns = "id, name, original_file_name, mime_type, storage_ref, folder_id, owner_id, uploaded_at"

// Create inserts a document row, filling ID and UploadedAt.
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, original_file_name, mime_type, storage_ref, folder_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, uploaded_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.Name,
		doc.OriginalFileName,
		doc.MimeType,
		doc.StorageRef,
		doc.FolderID,
		doc.OwnerID,
	).Scan(&doc.ID, &doc.UploadedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document scoped to its owner.
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, documentColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	var doc models.Document
	err := executor.QueryRow(ctx, query, id, ownerID).Scan(
		&doc.ID,
		&doc.Name,
		&doc.OriginalFileName,
		&doc.MimeType,
		&doc.StorageRef,
		&doc.FolderID,
		&doc.OwnerID,
		&doc.UploadedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// ListByFolder lists documents directly in a folder, newest first.
func (r *PostgresDocumentRepository) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Document, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND folder_id IS NULL
			ORDER BY uploaded_at DESC
		`, documentColumns, r.tables.Documents)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND folder_id = $2
			ORDER BY uploaded_at DESC
		`, documentColumns, r.tables.Documents)
		args = append(args, ownerID, *folderID)
	}

	return r.scanMany(ctx, query, args...)
}

// ListByOwner lists every document the owner has, newest first.
func (r *PostgresDocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1
		ORDER BY uploaded_at DESC
	`, documentColumns, r.tables.Documents)

	return r.scanMany(ctx, query, ownerID)
}

// ListByFolderIDs lists documents located in any of the given folders.
func (r *PostgresDocumentRepository) ListByFolderIDs(ctx context.Context, ownerID string, folderIDs []string) ([]models.Document, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1 AND folder_id = ANY($2)
		ORDER BY uploaded_at DESC
	`, documentColumns, r.tables.Documents)

	return r.scanMany(ctx, query, ownerID, folderIDs)
}

// Update writes name and folder_id in one conditioned statement.
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, folder_id = $2
		WHERE id = $3 AND owner_id = $4
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.Name,
		doc.FolderID,
		doc.ID,
		doc.OwnerID,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the metadata row.
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByFolderIDs removes every document in the given folders.
func (r *PostgresDocumentRepository) DeleteByFolderIDs(ctx context.Context, ownerID string, folderIDs []string) (int64, error) {
	if len(folderIDs) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE owner_id = $1 AND folder_id = ANY($2)
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, ownerID, folderIDs)
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *PostgresDocumentRepository) scanMany(ctx context.Context, query string, args ...interface{}) ([]models.Document, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.Name,
			&doc.OriginalFileName,
			&doc.MimeType,
			&doc.StorageRef,
			&doc.FolderID,
			&doc.OwnerID,
			&doc.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}
