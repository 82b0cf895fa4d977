package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/logbook/internal/model"
)

// Create/FindByIDの往復と所有者username JOINを検証
func TestPostgresEntryRepo_CreateAndFind(t *testing.T) {
	db := setupRepoTestDB(t)
	scribeRepo := NewPostgresScribeRepo(db)
	entryRepo := NewPostgresEntryRepo(db)
	ctx := context.Background()

	alice := newTestScribe("alice", "alice@example.com")
	if err := scribeRepo.Create(ctx, alice); err != nil {
		t.Fatalf("scribe Create returned error: %v", err)
	}

	now := time.Now().UTC()
	entry := &model.Entry{
		ID:         uuid.New().String(),
		Content:    "first entry",
		Visibility: model.VisibilityPrivate,
		ScribeID:   alice.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := entryRepo.Create(ctx, entry); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	found, err := entryRepo.FindByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if found == nil {
		t.Fatal("FindByID returned nil for existing entry")
	}
	if found.Content != "first entry" || found.Visibility != model.VisibilityPrivate {
		t.Errorf("found = %+v", found)
	}
	if found.ScribeUsername != "alice" {
		t.Errorf("ScribeUsername = %q, want %q", found.ScribeUsername, "alice")
	}

	missing, err := entryRepo.FindByID(ctx, uuid.New().String())
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if missing != nil {
		t.Errorf("FindByID for unknown ID = %+v, want nil", missing)
	}
}

// ListByScribeIDが作成日時降順で返すことを検証
func TestPostgresEntryRepo_ListByScribeID_NewestFirst(t *testing.T) {
	db := setupRepoTestDB(t)
	scribeRepo := NewPostgresScribeRepo(db)
	entryRepo := NewPostgresEntryRepo(db)
	ctx := context.Background()

	alice := newTestScribe("alice", "alice@example.com")
	if err := scribeRepo.Create(ctx, alice); err != nil {
		t.Fatalf("scribe Create returned error: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)
	var ids []string
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		entry := &model.Entry{
			ID:         uuid.New().String(),
			Content:    "entry",
			Visibility: model.VisibilityPublic,
			ScribeID:   alice.ID,
			CreatedAt:  ts,
			UpdatedAt:  ts,
		}
		if err := entryRepo.Create(ctx, entry); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		ids = append(ids, entry.ID)
	}

	entries, err := entryRepo.ListByScribeID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByScribeID returned error: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("len(entries) = %d, want 5", len(entries))
	}
	// 最後に作ったものが先頭
	for i, entry := range entries {
		want := ids[len(ids)-1-i]
		if entry.ID != want {
			t.Errorf("entries[%d].ID = %s, want %s", i, entry.ID, want)
		}
	}
}

// Updateがcontent/visibility/updated_atのみ更新することを検証
func TestPostgresEntryRepo_Update(t *testing.T) {
	db := setupRepoTestDB(t)
	scribeRepo := NewPostgresScribeRepo(db)
	entryRepo := NewPostgresEntryRepo(db)
	ctx := context.Background()

	alice := newTestScribe("alice", "alice@example.com")
	if err := scribeRepo.Create(ctx, alice); err != nil {
		t.Fatalf("scribe Create returned error: %v", err)
	}

	// TIMESTAMPTZはマイクロ秒精度のため、往復比較用に切り詰める
	created := time.Now().UTC().Add(-time.Minute).Truncate(time.Microsecond)
	entry := &model.Entry{
		ID:         uuid.New().String(),
		Content:    "before",
		Visibility: model.VisibilityPublic,
		ScribeID:   alice.ID,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	if err := entryRepo.Create(ctx, entry); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	entry.Content = "after"
	entry.Visibility = model.VisibilityPrivate
	entry.UpdatedAt = time.Now().UTC()
	if err := entryRepo.Update(ctx, entry); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	found, err := entryRepo.FindByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if found.Content != "after" || found.Visibility != model.VisibilityPrivate {
		t.Errorf("found = %+v, want updated content/visibility", found)
	}
	if !found.CreatedAt.Equal(entry.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", entry.CreatedAt, found.CreatedAt)
	}
	if !found.UpdatedAt.After(found.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want after CreatedAt %v", found.UpdatedAt, found.CreatedAt)
	}
}

// DeleteByIDでEntryが消えることを検証
func TestPostgresEntryRepo_DeleteByID(t *testing.T) {
	db := setupRepoTestDB(t)
	scribeRepo := NewPostgresScribeRepo(db)
	entryRepo := NewPostgresEntryRepo(db)
	ctx := context.Background()

	alice := newTestScribe("alice", "alice@example.com")
	if err := scribeRepo.Create(ctx, alice); err != nil {
		t.Fatalf("scribe Create returned error: %v", err)
	}

	now := time.Now().UTC()
	entry := &model.Entry{
		ID:         uuid.New().String(),
		Content:    "bye",
		Visibility: model.VisibilityPublic,
		ScribeID:   alice.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := entryRepo.Create(ctx, entry); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := entryRepo.DeleteByID(ctx, entry.ID); err != nil {
		t.Fatalf("DeleteByID returned error: %v", err)
	}

	found, err := entryRepo.FindByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if found != nil {
		t.Errorf("entry still present after delete: %+v", found)
	}
}
