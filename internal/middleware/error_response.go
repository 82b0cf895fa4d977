package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hitoshi/logbook/internal/model"
)

// ErrorObject はエラーエンベロープ内の1件のエラーを表す。
// statusはHTTPステータスコードの文字列表現。
type ErrorObject struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// ErrorEnvelope はAPIエラーレスポンスの統一フォーマット。
type ErrorEnvelope struct {
	Errors []ErrorObject `json:"errors"`
}

// WriteErrorResponse は統一エラーエンベロープでHTTPエラーレスポンスを書き込む。
// すべてのAPIエンドポイントで一貫したエラーレスポンスを提供する。
func WriteErrorResponse(w http.ResponseWriter, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus)
	json.NewEncoder(w).Encode(ErrorEnvelope{
		Errors: []ErrorObject{
			{
				Status: strconv.Itoa(apiErr.HTTPStatus),
				Title:  apiErr.Title,
				Detail: apiErr.Detail,
			},
		},
	})
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, &model.APIError{
		HTTPStatus: http.StatusInternalServerError,
		Title:      "Internal Server Error",
		Detail:     "An unexpected error occurred while processing the request",
	})
}
