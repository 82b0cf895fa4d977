package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/logbook/internal/auth"
	"github.com/hitoshi/logbook/internal/model"
	"github.com/hitoshi/logbook/internal/scribe"
)

// --- モック定義 ---

type mockScribeService struct {
	getFn    func(ctx context.Context, id string) (*model.Scribe, error)
	updateFn func(ctx context.Context, caller auth.Caller, id string, patch *scribe.UpdateInput) (*model.Scribe, error)
	deleteFn func(ctx context.Context, caller auth.Caller, id string) error
}

func (m *mockScribeService) Get(ctx context.Context, id string) (*model.Scribe, error) {
	return m.getFn(ctx, id)
}

func (m *mockScribeService) Update(ctx context.Context, caller auth.Caller, id string, patch *scribe.UpdateInput) (*model.Scribe, error) {
	return m.updateFn(ctx, caller, id, patch)
}

func (m *mockScribeService) Delete(ctx context.Context, caller auth.Caller, id string) error {
	return m.deleteFn(ctx, caller, id)
}

// --- テスト ---

// TestScribeHandler_Get は未認証でも公開プロフィールが返ることを確認する。
func TestScribeHandler_Get(t *testing.T) {
	svc := &mockScribeService{
		getFn: func(_ context.Context, id string) (*model.Scribe, error) {
			if id != "scribe-1" {
				t.Errorf("id = %s, want scribe-1", id)
			}
			return testScribe(), nil
		},
	}
	h := NewScribeHandler(svc)

	req := newEntryRequest(http.MethodGet, "/api/scribes/scribe-1", "", auth.Caller{State: auth.Anonymous}, "scribe-1")
	w := httptest.NewRecorder()

	h.Get(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	if data["type"] != "scribes" {
		t.Errorf("type = %v, want scribes", data["type"])
	}
	attrs := data["attributes"].(map[string]any)
	if attrs["email"] != "alice@example.com" {
		t.Errorf("email = %v", attrs["email"])
	}
	// bioはnullでもキー自体は存在する
	if _, exists := attrs["bio"]; !exists {
		t.Error("bioキーがレスポンスに存在しない")
	}
}

// TestScribeHandler_Get_NotFound は存在しないIDで404が返ることを確認する。
func TestScribeHandler_Get_NotFound(t *testing.T) {
	svc := &mockScribeService{
		getFn: func(_ context.Context, id string) (*model.Scribe, error) {
			return nil, model.NewScribeNotFoundError(id)
		},
	}
	h := NewScribeHandler(svc)

	req := newEntryRequest(http.MethodGet, "/api/scribes/missing", "", auth.Caller{State: auth.Anonymous}, "missing")
	w := httptest.NewRecorder()

	h.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	errObj := decodeErrors(t, w)
	if errObj["title"] != "Scribe Not Found" {
		t.Errorf("title = %v", errObj["title"])
	}
}

// TestScribeHandler_Update は更新成功で200が返ることを確認する。
func TestScribeHandler_Update(t *testing.T) {
	caller := auth.Caller{State: auth.Authenticated, Scribe: testScribe()}
	svc := &mockScribeService{
		updateFn: func(_ context.Context, _ auth.Caller, id string, patch *scribe.UpdateInput) (*model.Scribe, error) {
			if patch == nil || patch.Bio == nil || *patch.Bio != "writer" {
				t.Errorf("patch = %+v", patch)
			}
			updated := testScribe()
			bio := "writer"
			updated.Bio = &bio
			return updated, nil
		},
	}
	h := NewScribeHandler(svc)

	req := newEntryRequest(http.MethodPatch, "/api/scribes/scribe-1", `{"bio":"writer"}`, caller, "scribe-1")
	w := httptest.NewRecorder()

	h.Update(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	envelope := decodeEnvelope(t, w)
	attrs := envelope["data"].(map[string]any)["attributes"].(map[string]any)
	if attrs["bio"] != "writer" {
		t.Errorf("bio = %v, want writer", attrs["bio"])
	}
}

// TestScribeHandler_Update_MalformedBody は解析不能なボディが
// nilパッチとしてサービス層に渡ることを確認する。
func TestScribeHandler_Update_MalformedBody(t *testing.T) {
	caller := auth.Caller{State: auth.Authenticated, Scribe: testScribe()}
	svc := &mockScribeService{
		updateFn: func(_ context.Context, _ auth.Caller, _ string, patch *scribe.UpdateInput) (*model.Scribe, error) {
			if patch != nil {
				t.Errorf("解析不能なボディはnilパッチになるべき: %+v", patch)
			}
			return nil, model.NewInvalidRequestError()
		},
	}
	h := NewScribeHandler(svc)

	req := newEntryRequest(http.MethodPatch, "/api/scribes/scribe-1", "{broken", caller, "scribe-1")
	w := httptest.NewRecorder()

	h.Update(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// TestScribeHandler_Delete は削除成功で204が返ることを確認する。
func TestScribeHandler_Delete(t *testing.T) {
	caller := auth.Caller{State: auth.Authenticated, Scribe: testScribe()}
	svc := &mockScribeService{
		deleteFn: func(_ context.Context, _ auth.Caller, id string) error {
			if id != "scribe-1" {
				t.Errorf("id = %s, want scribe-1", id)
			}
			return nil
		},
	}
	h := NewScribeHandler(svc)

	req := newEntryRequest(http.MethodDelete, "/api/scribes/scribe-1", "", caller, "scribe-1")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

// TestScribeHandler_Delete_Forbidden はサービス層の403がエンベロープで返ることを確認する。
func TestScribeHandler_Delete_Forbidden(t *testing.T) {
	caller := auth.Caller{State: auth.Authenticated, Scribe: testScribe()}
	svc := &mockScribeService{
		deleteFn: func(_ context.Context, _ auth.Caller, _ string) error {
			return model.NewForbiddenError("You can only delete your own account")
		},
	}
	h := NewScribeHandler(svc)

	req := newEntryRequest(http.MethodDelete, "/api/scribes/scribe-2", "", caller, "scribe-2")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	errObj := decodeErrors(t, w)
	if errObj["detail"] != "You can only delete your own account" {
		t.Errorf("detail = %v", errObj["detail"])
	}
}
