// Package entry は日誌エントリのドメインロジックを提供する。
package entry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/logbook/internal/auth"
	"github.com/hitoshi/logbook/internal/model"
	"github.com/hitoshi/logbook/internal/repository"
)

// CreationRecorder はEntry作成のメトリクス記録インターフェース。
type CreationRecorder interface {
	RecordEntryCreated()
}

// Service は日誌エントリのサービス層。
// 作成、参照、更新、削除とクロニクル（自分の全エントリ一覧）を提供する。
type Service struct {
	entries  repository.EntryRepository
	recorder CreationRecorder
}

// NewService はServiceの新しいインスタンスを生成する。recorderはnilでもよい。
func NewService(entries repository.EntryRepository, recorder CreationRecorder) *Service {
	return &Service{
		entries:  entries,
		recorder: recorder,
	}
}

// CreateInput はエントリ作成の入力。
// nilのフィールドはリクエストに存在しなかったことを示す。
// input自体がnilの場合はボディが解析不能だったことを示す。
type CreateInput struct {
	Content    *string
	Visibility *string
}

// Create は認証済みの呼び出し元のエントリを新規作成する。
// visibility省略時はpublicになる。作成されたエントリの所有者は
// 常に呼び出し元自身で、他人名義での作成はできない。
func (s *Service) Create(ctx context.Context, caller auth.Caller, input *CreateInput) (*model.Entry, error) {
	if credErr := auth.CredentialError(caller); credErr != nil {
		return nil, credErr
	}

	if input == nil {
		return nil, model.NewInvalidRequestError()
	}
	if input.Content == nil {
		return nil, model.NewMissingContentError()
	}

	visibility := model.VisibilityPublic
	if input.Visibility != nil {
		visibility = model.Visibility(*input.Visibility)
		if !visibility.Valid() {
			return nil, model.NewInvalidVisibilityError()
		}
	}

	now := time.Now().UTC()
	newEntry := &model.Entry{
		ID:             uuid.New().String(),
		Content:        *input.Content,
		Visibility:     visibility,
		ScribeID:       caller.Scribe.ID,
		ScribeUsername: caller.Scribe.Username,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.entries.Create(ctx, newEntry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordEntryCreated()
	}

	slog.Info("entry created",
		slog.String("entry_id", newEntry.ID),
		slog.String("scribe_id", newEntry.ScribeID),
		slog.String("visibility", string(newEntry.Visibility)),
	)

	return newEntry, nil
}

// Get は指定IDのエントリを取得する。
// 非公開エントリは所有者本人にのみ見え、それ以外の呼び出し元には
// 実在しないIDと区別不能な404を返す。
func (s *Service) Get(ctx context.Context, caller auth.Caller, id string) (*model.Entry, error) {
	found, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	if found == nil {
		return nil, model.NewEntryNotFoundError(id)
	}

	if found.Visibility == model.VisibilityPrivate && !caller.Owns(found.ScribeID) {
		return nil, model.NewEntryNotFoundError(id)
	}

	return found, nil
}

// UpdateInput はエントリ更新の入力。
// nilのフィールドは変更しない。patch自体がnilの場合はボディが解析不能だったことを示す。
type UpdateInput struct {
	Content    *string
	Visibility *string
}

// empty は更新対象のフィールドが1つもないかどうかを返す。
func (p *UpdateInput) empty() bool {
	return p.Content == nil && p.Visibility == nil
}

// Update はエントリの本文と公開範囲を更新する。
// 判定順序: 存在確認 → 認証 → 所有者確認 → ボディ検証。
// 所有者とcreated_atは変更できない。
func (s *Service) Update(ctx context.Context, caller auth.Caller, id string, patch *UpdateInput) (*model.Entry, error) {
	found, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	if found == nil {
		return nil, model.NewEntryNotFoundError(id)
	}

	if credErr := auth.CredentialError(caller); credErr != nil {
		return nil, credErr
	}
	if !caller.Owns(found.ScribeID) {
		return nil, model.NewForbiddenError("You can only update your own entries")
	}

	// 空のJSONオブジェクトも解析不能なボディと同じく400で拒否する
	if patch == nil || patch.empty() {
		return nil, model.NewInvalidRequestError()
	}

	if patch.Visibility != nil {
		visibility := model.Visibility(*patch.Visibility)
		if !visibility.Valid() {
			return nil, model.NewInvalidVisibilityError()
		}
		found.Visibility = visibility
	}
	if patch.Content != nil {
		found.Content = *patch.Content
	}
	found.UpdatedAt = time.Now().UTC()

	if err := s.entries.Update(ctx, found); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	return found, nil
}

// Delete はエントリを削除する。判定順序はUpdateと同じ。
func (s *Service) Delete(ctx context.Context, caller auth.Caller, id string) error {
	found, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find entry: %w", err)
	}
	if found == nil {
		return model.NewEntryNotFoundError(id)
	}

	if credErr := auth.CredentialError(caller); credErr != nil {
		return credErr
	}
	if !caller.Owns(found.ScribeID) {
		return model.NewForbiddenError("You can only delete your own entries")
	}

	if err := s.entries.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}

// Chronicle は呼び出し元自身の全エントリを新しい順に返す。
// 公開・非公開の両方を含む。エントリが1件もない場合は空のスライスを返す。
func (s *Service) Chronicle(ctx context.Context, caller auth.Caller) ([]*model.Entry, error) {
	if credErr := auth.CredentialError(caller); credErr != nil {
		return nil, credErr
	}

	list, err := s.entries.ListByScribeID(ctx, caller.Scribe.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if list == nil {
		list = []*model.Entry{}
	}
	return list, nil
}
