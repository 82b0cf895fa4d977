package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/hitoshi/logbook/internal/model"
)

// uniqueViolation はPostgreSQLのunique_violationを示すSQLSTATE。
const uniqueViolation = pq.ErrorCode("23505")

// PostgresScribeRepo はPostgreSQLを使用したScribeリポジトリ。
type PostgresScribeRepo struct {
	db *sql.DB
}

// NewPostgresScribeRepo はPostgresScribeRepoを生成する。
func NewPostgresScribeRepo(db *sql.DB) *PostgresScribeRepo {
	return &PostgresScribeRepo{db: db}
}

// Create はScribeを作成する。
// 一意性制約違反は制約名からErrUsernameTaken/ErrEmailTakenに振り分ける。
// 制約名が取得できない場合は再クエリで原因フィールドを特定する。
func (r *PostgresScribeRepo) Create(ctx context.Context, scribe *model.Scribe) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO scribes (id, username, email, password_hash, bio, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		scribe.ID, scribe.Username, scribe.Email, scribe.PasswordHash,
		nullableString(scribe.Bio), scribe.CreatedAt, scribe.UpdatedAt,
	)
	if err != nil {
		if dup := r.mapUniqueViolation(ctx, err, scribe.Username, scribe.Email); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to insert scribe: %w", err)
	}
	return nil
}

// FindByID は指定IDのScribeを取得する。見つからない場合はnilを返す。
func (r *PostgresScribeRepo) FindByID(ctx context.Context, id string) (*model.Scribe, error) {
	return r.findOne(ctx,
		`SELECT id, username, email, password_hash, bio, created_at, updated_at
		 FROM scribes WHERE id = $1`,
		id,
	)
}

// FindByUsername はusername完全一致でScribeを検索する。見つからない場合はnilを返す。
func (r *PostgresScribeRepo) FindByUsername(ctx context.Context, username string) (*model.Scribe, error) {
	return r.findOne(ctx,
		`SELECT id, username, email, password_hash, bio, created_at, updated_at
		 FROM scribes WHERE username = $1`,
		username,
	)
}

// Update はemail、bio、password_hash、updated_atを更新する。
// created_atとusernameは変更しない。
func (r *PostgresScribeRepo) Update(ctx context.Context, scribe *model.Scribe) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE scribes
		 SET email = $2, bio = $3, password_hash = $4, updated_at = $5
		 WHERE id = $1`,
		scribe.ID, scribe.Email, nullableString(scribe.Bio), scribe.PasswordHash, scribe.UpdatedAt,
	)
	if err != nil {
		// usernameは更新対象外のため、再クエリによる振り分けはemailのみに限定する
		if dup := r.mapUniqueViolation(ctx, err, "", scribe.Email); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to update scribe: %w", err)
	}
	return nil
}

// DeleteByID は指定IDのScribeを削除する。
// 所有する全entriesはON DELETE CASCADEにより同一文で消えるため、
// 部分的なカスケードが観測されることはない。
func (r *PostgresScribeRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM scribes WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete scribe: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("scribe not found: %s", id)
	}
	return nil
}

// findOne は1件のScribe取得クエリを実行する。
func (r *PostgresScribeRepo) findOne(ctx context.Context, query string, arg any) (*model.Scribe, error) {
	scribe := &model.Scribe{}
	var bio sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&scribe.ID, &scribe.Username, &scribe.Email, &scribe.PasswordHash,
		&bio, &scribe.CreatedAt, &scribe.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find scribe: %w", err)
	}
	if bio.Valid {
		scribe.Bio = &bio.String
	}
	return scribe, nil
}

// mapUniqueViolation は一意性制約違反エラーを原因フィールド別のセンチネルに変換する。
// 対象外のエラーの場合はnilを返す。
func (r *PostgresScribeRepo) mapUniqueViolation(ctx context.Context, err error, username, email string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}

	switch {
	case strings.Contains(pqErr.Constraint, "username"):
		return ErrUsernameTaken
	case strings.Contains(pqErr.Constraint, "email"):
		return ErrEmailTaken
	}

	// 制約名が報告されない場合は再クエリで原因フィールドを特定する
	if existing, qerr := r.FindByUsername(ctx, username); qerr == nil && existing != nil {
		return ErrUsernameTaken
	}
	var count int
	if qerr := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM scribes WHERE email = $1`, email,
	).Scan(&count); qerr == nil && count > 0 {
		return ErrEmailTaken
	}

	return ErrDuplicate
}

// nullableString は*stringをsql.NullStringに変換する。
func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// compile-time interface check
var _ ScribeRepository = (*PostgresScribeRepo)(nil)
