package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/logbook/internal/auth"
	"github.com/hitoshi/logbook/internal/middleware"
	"github.com/hitoshi/logbook/internal/model"
	"github.com/hitoshi/logbook/internal/scribe"
)

// RegistrationServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type RegistrationServiceInterface interface {
	Register(ctx context.Context, input scribe.RegisterInput) (*model.Scribe, error)
}

// AuthHandler は登録・認証確認のHTTPハンドラー。
// セッションやトークンは発行せず、すべてのリクエストがBasic認証で自己完結する。
type AuthHandler struct {
	service RegistrationServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service RegistrationServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// enlistRequest は登録リクエストのボディ。
// nilのフィールドはリクエストに存在しなかったことを示す。
type enlistRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
}

// Enlist は新しいScribeアカウントを登録する。
// POST /api/auth/enlist
func (h *AuthHandler) Enlist(w http.ResponseWriter, r *http.Request) {
	var req enlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, model.NewInvalidRequestError())
		return
	}

	created, err := h.service.Register(r.Context(), scribe.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, scribeResource(created))
}

// Unlock はBasic認証の資格情報を検証し、認証されたScribeを返す。
// 状態は一切生成しない。
// POST /api/auth/unlock
func (h *AuthHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	if credErr := auth.CredentialError(caller); credErr != nil {
		middleware.WriteErrorResponse(w, credErr)
		return
	}

	writeData(w, http.StatusOK, scribeResource(caller.Scribe))
}

// Lock はサインアウトの受理応答を返す。
// サーバー側に破棄すべき状態は存在しないため、資格情報の検証以外は何もしない。
// POST /api/auth/lock
func (h *AuthHandler) Lock(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	if credErr := auth.CredentialError(caller); credErr != nil {
		middleware.WriteErrorResponse(w, credErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
