package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/logbook/internal/model"
)

// --- モック ---

type mockScribeFinder struct {
	findByUsernameFn func(ctx context.Context, username string) (*model.Scribe, error)
}

func (m *mockScribeFinder) FindByUsername(ctx context.Context, username string) (*model.Scribe, error) {
	return m.findByUsernameFn(ctx, username)
}

type mockPasswordVerifier struct {
	verifyFn    func(stored, password string) bool
	verifyCalls int
}

func (m *mockPasswordVerifier) Verify(stored, password string) bool {
	m.verifyCalls++
	if m.verifyFn != nil {
		return m.verifyFn(stored, password)
	}
	return false
}

func (m *mockPasswordVerifier) Hash(password string) (string, error) {
	return "pbkdf2:sha256:100000$dummy$00ff", nil
}

type mockFailureRecorder struct {
	failures int
}

func (m *mockFailureRecorder) RecordAuthFailure() {
	m.failures++
}

// --- テスト ---

// 正しい認証情報でAuthenticatedが返ることを検証
func TestVerifier_Resolve_Authenticated(t *testing.T) {
	alice := &model.Scribe{ID: "id-1", Username: "alice", PasswordHash: "stored-hash"}
	finder := &mockScribeFinder{
		findByUsernameFn: func(ctx context.Context, username string) (*model.Scribe, error) {
			if username != "alice" {
				t.Errorf("username = %q, want %q", username, "alice")
			}
			return alice, nil
		},
	}
	pv := &mockPasswordVerifier{
		verifyFn: func(stored, password string) bool {
			return stored == "stored-hash" && password == "pw123"
		},
	}

	v, err := NewVerifier(finder, pv, nil)
	if err != nil {
		t.Fatalf("NewVerifier returned error: %v", err)
	}

	caller, err := v.Resolve(context.Background(), "alice", "pw123")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !caller.IsAuthenticated() {
		t.Fatal("caller is not authenticated")
	}
	if caller.Scribe.ID != "id-1" {
		t.Errorf("Scribe.ID = %q, want %q", caller.Scribe.ID, "id-1")
	}
}

// パスワード不一致でRejectedが返り、失敗が記録されることを検証
func TestVerifier_Resolve_WrongPassword(t *testing.T) {
	finder := &mockScribeFinder{
		findByUsernameFn: func(ctx context.Context, username string) (*model.Scribe, error) {
			return &model.Scribe{ID: "id-1", Username: "alice", PasswordHash: "stored-hash"}, nil
		},
	}
	pv := &mockPasswordVerifier{}
	rec := &mockFailureRecorder{}

	v, err := NewVerifier(finder, pv, rec)
	if err != nil {
		t.Fatalf("NewVerifier returned error: %v", err)
	}

	caller, err := v.Resolve(context.Background(), "alice", "wrongpw")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if caller.State != Rejected {
		t.Errorf("State = %v, want Rejected", caller.State)
	}
	if caller.Scribe != nil {
		t.Errorf("Scribe = %+v, want nil", caller.Scribe)
	}
	if rec.failures != 1 {
		t.Errorf("failures = %d, want 1", rec.failures)
	}
}

// ユーザー名不明でもRejectedになり、ダミー照合が実行されることを検証
// （実在しないユーザー名の応答がパスワード不一致と外形上区別できない）
func TestVerifier_Resolve_UnknownUsername(t *testing.T) {
	finder := &mockScribeFinder{
		findByUsernameFn: func(ctx context.Context, username string) (*model.Scribe, error) {
			return nil, nil
		},
	}
	pv := &mockPasswordVerifier{}

	v, err := NewVerifier(finder, pv, nil)
	if err != nil {
		t.Fatalf("NewVerifier returned error: %v", err)
	}

	caller, err := v.Resolve(context.Background(), "nobody", "pw")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if caller.State != Rejected {
		t.Errorf("State = %v, want Rejected", caller.State)
	}
	if pv.verifyCalls != 1 {
		t.Errorf("verifyCalls = %d, want 1 (dummy verification must run)", pv.verifyCalls)
	}
}

// ストア障害がerrorとして伝播することを検証
func TestVerifier_Resolve_StoreError(t *testing.T) {
	finder := &mockScribeFinder{
		findByUsernameFn: func(ctx context.Context, username string) (*model.Scribe, error) {
			return nil, errors.New("connection refused")
		},
	}

	v, err := NewVerifier(finder, &mockPasswordVerifier{}, nil)
	if err != nil {
		t.Fatalf("NewVerifier returned error: %v", err)
	}

	if _, err := v.Resolve(context.Background(), "alice", "pw"); err == nil {
		t.Error("expected error on store failure")
	}
}

// CredentialErrorが状態に応じたエラーを返すことを検証
func TestCredentialError(t *testing.T) {
	if err := CredentialError(Caller{State: Anonymous}); err == nil || err.Title != "Authentication Required" {
		t.Errorf("Anonymous: err = %v, want Authentication Required", err)
	}
	if err := CredentialError(Caller{State: Rejected}); err == nil || err.Title != "Invalid Credentials" {
		t.Errorf("Rejected: err = %v, want Invalid Credentials", err)
	}
	authed := Caller{State: Authenticated, Scribe: &model.Scribe{ID: "id-1"}}
	if err := CredentialError(authed); err != nil {
		t.Errorf("Authenticated: err = %v, want nil", err)
	}
}

// Ownsが本人のIDに対してのみtrueを返すことを検証
func TestCaller_Owns(t *testing.T) {
	authed := Caller{State: Authenticated, Scribe: &model.Scribe{ID: "id-1"}}
	if !authed.Owns("id-1") {
		t.Error("Owns(own ID) = false, want true")
	}
	if authed.Owns("id-2") {
		t.Error("Owns(other ID) = true, want false")
	}
	if (Caller{State: Anonymous}).Owns("id-1") {
		t.Error("anonymous Owns = true, want false")
	}
}
