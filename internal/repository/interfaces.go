// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/logbook/internal/model"
)

// 一意性制約違反を原因フィールド別に表すセンチネルエラー。
// ストアの制約が唯一の正であり、アプリケーション側の事前チェックは行わない。
var (
	// ErrUsernameTaken はusernameの一意性制約違反を示す。
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken はemailの一意性制約違反を示す。
	ErrEmailTaken = errors.New("email already taken")
	// ErrDuplicate は原因フィールドを特定できない一意性制約違反を示す。
	ErrDuplicate = errors.New("duplicate key value")
)

// ScribeRepository はScribeデータの永続化インターフェース。
type ScribeRepository interface {
	// Create はScribeを作成する。
	// username/emailの一意性制約違反はErrUsernameTaken/ErrEmailTakenにマッピングする。
	Create(ctx context.Context, scribe *model.Scribe) error

	// FindByID は指定IDのScribeを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Scribe, error)

	// FindByUsername はusername完全一致でScribeを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.Scribe, error)

	// Update はemail、bio、password_hash、updated_atを更新する。
	// emailの一意性制約違反はErrEmailTakenにマッピングする。
	Update(ctx context.Context, scribe *model.Scribe) error

	// DeleteByID は指定IDのScribeを削除する。
	// 所有する全entriesはスキーマのON DELETE CASCADEにより同一文で削除される。
	DeleteByID(ctx context.Context, id string) error
}

// EntryRepository はEntryデータの永続化インターフェース。
type EntryRepository interface {
	// Create はEntryを作成する。
	Create(ctx context.Context, entry *model.Entry) error

	// FindByID は指定IDのEntryを所有者のusername付きで取得する。
	// 見つからない場合はnilを返す。可視性の判定は行わない（サービス層の責務）。
	FindByID(ctx context.Context, id string) (*model.Entry, error)

	// Update はcontent、visibility、updated_atを更新する。
	Update(ctx context.Context, entry *model.Entry) error

	// DeleteByID は指定IDのEntryを削除する。
	DeleteByID(ctx context.Context, id string) error

	// ListByScribeID は所有者のEntry一覧を作成日時降順で返す。
	// created_atが同一の場合はid降順で順序を安定させる。
	ListByScribeID(ctx context.Context, scribeID string) ([]*model.Entry, error)
}
