package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/logbook/internal/auth"
	"github.com/hitoshi/logbook/internal/entry"
	"github.com/hitoshi/logbook/internal/middleware"
	"github.com/hitoshi/logbook/internal/model"
)

// EntryServiceInterface はエントリハンドラーが必要とするサービスインターフェース。
type EntryServiceInterface interface {
	Create(ctx context.Context, caller auth.Caller, input *entry.CreateInput) (*model.Entry, error)
	Get(ctx context.Context, caller auth.Caller, id string) (*model.Entry, error)
	Update(ctx context.Context, caller auth.Caller, id string, patch *entry.UpdateInput) (*model.Entry, error)
	Delete(ctx context.Context, caller auth.Caller, id string) error
	Chronicle(ctx context.Context, caller auth.Caller) ([]*model.Entry, error)
}

// EntryHandler は日誌エントリのHTTPハンドラー。
type EntryHandler struct {
	service EntryServiceInterface
}

// NewEntryHandler はEntryHandlerを生成する。
func NewEntryHandler(service EntryServiceInterface) *EntryHandler {
	return &EntryHandler{service: service}
}

// entryRequest はエントリの作成・更新リクエストのボディ。
type entryRequest struct {
	Content    *string `json:"content"`
	Visibility *string `json:"visibility"`
}

// Create は新しいエントリを作成する。
// POST /api/entries
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var input *entry.CreateInput
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		input = &entry.CreateInput{
			Content:    req.Content,
			Visibility: req.Visibility,
		}
	}

	created, err := h.service.Create(r.Context(), caller, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, entryResource(created))
}

// Get はエントリを取得する。認証は任意で、公開エントリは誰でも参照できる。
// 非公開エントリは所有者以外には実在しないIDと同じ404になる。
// GET /api/entries/{id}
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller := middleware.CallerFromContext(r.Context())

	found, err := h.service.Get(r.Context(), caller, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, entryResource(found))
}

// Update はエントリを部分更新する。
// ボディが解析できなくてもここでは拒否せず、nilパッチとしてサービス層に渡す。
// PATCH /api/entries/{id}
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller := middleware.CallerFromContext(r.Context())

	var patch *entry.UpdateInput
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		patch = &entry.UpdateInput{
			Content:    req.Content,
			Visibility: req.Visibility,
		}
	}

	updated, err := h.service.Update(r.Context(), caller, id, patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, entryResource(updated))
}

// Delete はエントリを削除する。
// DELETE /api/entries/{id}
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller := middleware.CallerFromContext(r.Context())

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Chronicle は呼び出し元自身の全エントリを新しい順に返す。
// GET /api/chronicle
func (h *EntryHandler) Chronicle(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	list, err := h.service.Chronicle(r.Context(), caller)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resources := make([]resourceObject, 0, len(list))
	for _, e := range list {
		resources = append(resources, entryResource(e))
	}

	writeData(w, http.StatusOK, resources)
}
