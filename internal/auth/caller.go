// Package auth はHTTP Basic認証情報の検証と、呼び出し元の型付き表現を提供する。
// セッションやトークンは発行せず、全リクエストが独立に再検証される。
package auth

import "github.com/hitoshi/logbook/internal/model"

// State は呼び出し元の認証状態を表す。
type State int

const (
	// Anonymous は認証情報が提示されなかったことを示す。
	Anonymous State = iota
	// Rejected は認証情報が提示されたが検証に失敗したことを示す。
	// ユーザー名不明とパスワード不一致は区別しない。
	Rejected
	// Authenticated は認証に成功したことを示す。
	Authenticated
)

// Caller はリクエストの呼び出し元を表す型付きの結果。
// ScribeはState == Authenticatedの場合のみ非nil。
type Caller struct {
	State  State
	Scribe *model.Scribe
}

// IsAuthenticated は認証済みかどうかを返す。
func (c Caller) IsAuthenticated() bool {
	return c.State == Authenticated && c.Scribe != nil
}

// Owns は認証済みかつ指定IDのScribe本人であるかを返す。
func (c Caller) Owns(scribeID string) bool {
	return c.IsAuthenticated() && c.Scribe.ID == scribeID
}

// CredentialError は未認証の呼び出し元に対する401エラーを返す。
// 認証情報の未提示と検証失敗でタイトルを区別する。
// 認証済みの呼び出し元に対してはnilを返す。
func CredentialError(c Caller) *model.APIError {
	switch c.State {
	case Rejected:
		return model.NewInvalidCredentialsError()
	case Anonymous:
		return model.NewAuthenticationRequiredError()
	default:
		return nil
	}
}
