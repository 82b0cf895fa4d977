package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/logbook/internal/auth"
	"github.com/hitoshi/logbook/internal/middleware"
	"github.com/hitoshi/logbook/internal/model"
	"github.com/hitoshi/logbook/internal/scribe"
)

// ScribeServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ScribeServiceInterface interface {
	Get(ctx context.Context, id string) (*model.Scribe, error)
	Update(ctx context.Context, caller auth.Caller, id string, patch *scribe.UpdateInput) (*model.Scribe, error)
	Delete(ctx context.Context, caller auth.Caller, id string) error
}

// ScribeHandler はプロフィール管理のHTTPハンドラー。
type ScribeHandler struct {
	service ScribeServiceInterface
}

// NewScribeHandler はScribeHandlerを生成する。
func NewScribeHandler(service ScribeServiceInterface) *ScribeHandler {
	return &ScribeHandler{service: service}
}

// scribeUpdateRequest はプロフィール更新リクエストのボディ。
type scribeUpdateRequest struct {
	Email    *string `json:"email"`
	Bio      *string `json:"bio"`
	Password *string `json:"password"`
}

// Get は公開プロフィールを取得する。認証不要。
// GET /api/scribes/{id}
func (h *ScribeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, scribeResource(found))
}

// Update はプロフィールを部分更新する。
// ボディが解析できなくてもここでは拒否せず、nilパッチとしてサービス層に渡す。
// 不正ボディの400より存在確認・認証・所有者確認が先に判定される。
// PATCH /api/scribes/{id}
func (h *ScribeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller := middleware.CallerFromContext(r.Context())

	var patch *scribe.UpdateInput
	var req scribeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		patch = &scribe.UpdateInput{
			Email:    req.Email,
			Bio:      req.Bio,
			Password: req.Password,
		}
	}

	updated, err := h.service.Update(r.Context(), caller, id, patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, scribeResource(updated))
}

// Delete はアカウントを削除する。所有する全エントリも同時に削除される。
// DELETE /api/scribes/{id}
func (h *ScribeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller := middleware.CallerFromContext(r.Context())

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
