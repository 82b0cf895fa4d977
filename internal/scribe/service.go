// Package scribe はアカウント管理のドメインロジックを提供する。
package scribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/logbook/internal/auth"
	"github.com/hitoshi/logbook/internal/model"
	"github.com/hitoshi/logbook/internal/repository"
)

// PasswordHasher はパスワードハッシュ生成のインターフェース。
// credential.Hasherの部分集合として定義する。
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// CreationRecorder はScribe登録のメトリクス記録インターフェース。
type CreationRecorder interface {
	RecordScribeCreated()
}

// Service はアカウント管理のサービス層。
// 登録、プロフィール参照・更新、退会のビジネスロジックを提供する。
type Service struct {
	scribes  repository.ScribeRepository
	hasher   PasswordHasher
	recorder CreationRecorder
}

// NewService はServiceの新しいインスタンスを生成する。recorderはnilでもよい。
func NewService(scribes repository.ScribeRepository, hasher PasswordHasher, recorder CreationRecorder) *Service {
	return &Service{
		scribes:  scribes,
		hasher:   hasher,
		recorder: recorder,
	}
}

// RegisterInput は登録リクエストの入力。
// nilのフィールドはリクエストに存在しなかったことを示す。
type RegisterInput struct {
	Username *string
	Password *string
	Email    *string
	Bio      *string
}

// Register は新しいScribeアカウントを作成する。
// username/email/passwordはすべて必須で、欠けているフィールドは
// 1件のエラーにまとめて列挙する。一意性制約違反は原因フィールドを
// 特定した409エラーに変換する。
func (s *Service) Register(ctx context.Context, input RegisterInput) (*model.Scribe, error) {
	var missing []string
	if input.Username == nil {
		missing = append(missing, "username")
	}
	if input.Email == nil {
		missing = append(missing, "email")
	}
	if input.Password == nil {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, model.NewMissingFieldsError(missing)
	}

	hash, err := s.hasher.Hash(*input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	newScribe := &model.Scribe{
		ID:           uuid.New().String(),
		Username:     *input.Username,
		Email:        *input.Email,
		PasswordHash: hash,
		Bio:          input.Bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.scribes.Create(ctx, newScribe); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, model.NewUsernameTakenError(*input.Username)
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, model.NewEmailTakenError(*input.Email)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, model.NewConflictError()
		}
		return nil, fmt.Errorf("failed to create scribe: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordScribeCreated()
	}

	slog.Info("scribe registered",
		slog.String("scribe_id", newScribe.ID),
		slog.String("username", newScribe.Username),
	)

	return newScribe, nil
}

// Get は指定IDのScribeプロフィールを取得する。
// 公開操作のため認証は不要。見つからない場合は404エラーを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Scribe, error) {
	scribe, err := s.scribes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find scribe: %w", err)
	}
	if scribe == nil {
		return nil, model.NewScribeNotFoundError(id)
	}
	return scribe, nil
}

// UpdateInput はプロフィール更新の入力。
// nilのフィールドは変更しない。patch自体がnilの場合はボディが解析不能だったことを示す。
type UpdateInput struct {
	Email    *string
	Bio      *string
	Password *string
}

// empty は更新対象のフィールドが1つもないかどうかを返す。
func (p *UpdateInput) empty() bool {
	return p.Email == nil && p.Bio == nil && p.Password == nil
}

// Update はScribeのプロフィールを更新する。
// 判定順序: 存在確認 → 認証 → 所有者確認 → ボディ検証 → 一意性制約。
// usernameとcreated_atは変更できない。updated_atは成功するたびに進む。
func (s *Service) Update(ctx context.Context, caller auth.Caller, id string, patch *UpdateInput) (*model.Scribe, error) {
	scribe, err := s.scribes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find scribe: %w", err)
	}
	if scribe == nil {
		return nil, model.NewScribeNotFoundError(id)
	}

	if credErr := auth.CredentialError(caller); credErr != nil {
		return nil, credErr
	}
	if !caller.Owns(id) {
		return nil, model.NewForbiddenError("You can only update your own profile")
	}

	// 空のJSONオブジェクトも解析不能なボディと同じく400で拒否する
	if patch == nil || patch.empty() {
		return nil, model.NewInvalidRequestError()
	}

	if patch.Email != nil {
		scribe.Email = *patch.Email
	}
	if patch.Bio != nil {
		scribe.Bio = patch.Bio
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		scribe.PasswordHash = hash
	}
	scribe.UpdatedAt = time.Now().UTC()

	if err := s.scribes.Update(ctx, scribe); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, model.NewEmailTakenError(scribe.Email)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, model.NewConflictError()
		}
		return nil, fmt.Errorf("failed to update scribe: %w", err)
	}

	return scribe, nil
}

// Delete はScribeアカウントを削除する。
// 所有する全Entryはストアのカスケードにより同一操作で削除され、
// 部分的な削除状態が観測されることはない。
func (s *Service) Delete(ctx context.Context, caller auth.Caller, id string) error {
	scribe, err := s.scribes.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find scribe: %w", err)
	}
	if scribe == nil {
		return model.NewScribeNotFoundError(id)
	}

	if credErr := auth.CredentialError(caller); credErr != nil {
		return credErr
	}
	if !caller.Owns(id) {
		return model.NewForbiddenError("You can only delete your own account")
	}

	if err := s.scribes.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete scribe: %w", err)
	}

	slog.Info("scribe deleted",
		slog.String("scribe_id", id),
	)

	return nil
}
