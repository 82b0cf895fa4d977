package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/logbook/internal/model"
)

// PostgresEntryRepo はPostgreSQLを使用したEntryリポジトリ。
type PostgresEntryRepo struct {
	db *sql.DB
}

// NewPostgresEntryRepo はPostgresEntryRepoを生成する。
func NewPostgresEntryRepo(db *sql.DB) *PostgresEntryRepo {
	return &PostgresEntryRepo{db: db}
}

// Create はEntryを作成する。
func (r *PostgresEntryRepo) Create(ctx context.Context, entry *model.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (id, content, visibility, scribe_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Content, string(entry.Visibility), entry.ScribeID,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// FindByID は指定IDのEntryを所有者のusername付きで取得する。見つからない場合はnilを返す。
func (r *PostgresEntryRepo) FindByID(ctx context.Context, id string) (*model.Entry, error) {
	entry := &model.Entry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT e.id, e.content, e.visibility, e.scribe_id, s.username, e.created_at, e.updated_at
		 FROM entries e
		 JOIN scribes s ON s.id = e.scribe_id
		 WHERE e.id = $1`,
		id,
	).Scan(&entry.ID, &entry.Content, &entry.Visibility, &entry.ScribeID,
		&entry.ScribeUsername, &entry.CreatedAt, &entry.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}

	return entry, nil
}

// Update はcontent、visibility、updated_atを更新する。
// created_atとscribe_idは変更しない。
func (r *PostgresEntryRepo) Update(ctx context.Context, entry *model.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE entries
		 SET content = $2, visibility = $3, updated_at = $4
		 WHERE id = $1`,
		entry.ID, entry.Content, string(entry.Visibility), entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return nil
}

// DeleteByID は指定IDのEntryを削除する。
func (r *PostgresEntryRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM entries WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// ListByScribeID は所有者のEntry一覧を作成日時降順で返す。
// created_atが同一の場合はid降順で順序を安定させる。
func (r *PostgresEntryRepo) ListByScribeID(ctx context.Context, scribeID string) ([]*model.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id, e.content, e.visibility, e.scribe_id, s.username, e.created_at, e.updated_at
		 FROM entries e
		 JOIN scribes s ON s.id = e.scribe_id
		 WHERE e.scribe_id = $1
		 ORDER BY e.created_at DESC, e.id DESC`,
		scribeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.Entry
	for rows.Next() {
		entry := &model.Entry{}
		if err := rows.Scan(&entry.ID, &entry.Content, &entry.Visibility, &entry.ScribeID,
			&entry.ScribeUsername, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// compile-time interface check
var _ EntryRepository = (*PostgresEntryRepo)(nil)
