// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/logbook/internal/middleware"
	"github.com/hitoshi/logbook/internal/model"
)

// resourceObject は成功レスポンスのリソース表現。
// {"data":{"type","id","attributes"}} のエンベロープで返す。
type resourceObject struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes any    `json:"attributes"`
}

// dataEnvelope は成功レスポンスのトップレベル構造。
type dataEnvelope struct {
	Data any `json:"data"`
}

// scribeAttributes はScribeリソースの属性。パスワードハッシュは含めない。
type scribeAttributes struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Bio       *string `json:"bio"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// entryAttributes はEntryリソースの属性。
type entryAttributes struct {
	Content        string `json:"content"`
	Visibility     string `json:"visibility"`
	ScribeID       string `json:"scribeId"`
	ScribeUsername string `json:"scribeUsername"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// formatTime はタイムスタンプをUTCのRFC3339形式で整形する。
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// scribeResource はScribeをリソース表現に変換する。
func scribeResource(scribe *model.Scribe) resourceObject {
	return resourceObject{
		Type: "scribes",
		ID:   scribe.ID,
		Attributes: scribeAttributes{
			Username:  scribe.Username,
			Email:     scribe.Email,
			Bio:       scribe.Bio,
			CreatedAt: formatTime(scribe.CreatedAt),
			UpdatedAt: formatTime(scribe.UpdatedAt),
		},
	}
}

// entryResource はEntryをリソース表現に変換する。
func entryResource(entry *model.Entry) resourceObject {
	return resourceObject{
		Type: "entries",
		ID:   entry.ID,
		Attributes: entryAttributes{
			Content:        entry.Content,
			Visibility:     string(entry.Visibility),
			ScribeID:       entry.ScribeID,
			ScribeUsername: entry.ScribeUsername,
			CreatedAt:      formatTime(entry.CreatedAt),
			UpdatedAt:      formatTime(entry.UpdatedAt),
		},
	}
}

// writeData は成功レスポンスをdataエンベロープで書き出す。
func writeData(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(dataEnvelope{Data: data}); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// handleServiceError はサービス層のエラーをHTTPレスポンスに変換する。
// APIErrorはそのままエンベロープで返し、それ以外は詳細を漏らさず500にする。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, apiErr)
		return
	}

	slog.Error("unexpected service error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}
