package model

import (
	"fmt"
	"strings"
)

// APIError はAPIの統一エラーフォーマットを表す。
// レスポンスでは {"errors":[{"status","title","detail"}]} のエンベロープに変換される。
type APIError struct {
	HTTPStatus int    // HTTPステータスコード
	Title      string // エラー種別の表題
	Detail     string // 具体的な原因
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s: %s", e.HTTPStatus, e.Title, e.Detail)
}

// NewAuthenticationRequiredError は認証情報が未提示の場合のエラーを生成する。
func NewAuthenticationRequiredError() *APIError {
	return &APIError{
		HTTPStatus: 401,
		Title:      "Authentication Required",
		Detail:     "You must provide valid credentials to access this resource",
	}
}

// NewInvalidCredentialsError は認証情報が不正な場合のエラーを生成する。
// ユーザー名不一致とパスワード不一致は区別しない（列挙攻撃対策）。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		HTTPStatus: 401,
		Title:      "Invalid Credentials",
		Detail:     "The username or password provided is incorrect",
	}
}

// NewMissingFieldsError は必須フィールド欠落エラーを生成する。
// 欠けているフィールドをすべて1件のエラーに列挙する。
func NewMissingFieldsError(fields []string) *APIError {
	return &APIError{
		HTTPStatus: 400,
		Title:      "Missing Required Fields",
		Detail:     fmt.Sprintf("The following fields are required: %s", strings.Join(fields, ", ")),
	}
}

// NewMissingContentError はエントリのcontent欠落エラーを生成する。
func NewMissingContentError() *APIError {
	return &APIError{
		HTTPStatus: 400,
		Title:      "Missing Required Field",
		Detail:     "The content field is required",
	}
}

// NewInvalidVisibilityError は不正なvisibility値のエラーを生成する。
func NewInvalidVisibilityError() *APIError {
	return &APIError{
		HTTPStatus: 400,
		Title:      "Invalid Visibility",
		Detail:     "Visibility must be either 'public' or 'private'",
	}
}

// NewInvalidRequestError はリクエストボディが解析不能な場合のエラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		HTTPStatus: 400,
		Title:      "Invalid Request",
		Detail:     "Request body must be valid JSON",
	}
}

// NewEntryNotFoundError はエントリ未検出エラーを生成する。
// 非公開エントリを所有者以外から隠す場合も必ずこのコンストラクタを使い、
// 実在しないIDへのレスポンスとバイト単位で一致させる。
func NewEntryNotFoundError(entryID string) *APIError {
	return &APIError{
		HTTPStatus: 404,
		Title:      "Entry Not Found",
		Detail:     fmt.Sprintf("No entry exists with ID %s", entryID),
	}
}

// NewScribeNotFoundError はScribe未検出エラーを生成する。
func NewScribeNotFoundError(scribeID string) *APIError {
	return &APIError{
		HTTPStatus: 404,
		Title:      "Scribe Not Found",
		Detail:     fmt.Sprintf("No scribe exists with ID %s", scribeID),
	}
}

// NewForbiddenError は所有者以外による書き込み操作のエラーを生成する。
func NewForbiddenError(detail string) *APIError {
	return &APIError{
		HTTPStatus: 403,
		Title:      "Forbidden",
		Detail:     detail,
	}
}

// NewUsernameTakenError はユーザー名の重複エラーを生成する。
func NewUsernameTakenError(username string) *APIError {
	return &APIError{
		HTTPStatus: 409,
		Title:      "Username Already Exists",
		Detail:     fmt.Sprintf("The username '%s' is already taken", username),
	}
}

// NewEmailTakenError はメールアドレスの重複エラーを生成する。
func NewEmailTakenError(email string) *APIError {
	return &APIError{
		HTTPStatus: 409,
		Title:      "Email Already Exists",
		Detail:     fmt.Sprintf("The email '%s' is already registered", email),
	}
}

// NewConflictError は原因フィールドを特定できない一意性制約違反のエラーを生成する。
func NewConflictError() *APIError {
	return &APIError{
		HTTPStatus: 409,
		Title:      "Conflict",
		Detail:     "A scribe with this username or email already exists",
	}
}
