// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/logbook/internal/auth"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// callerContextKey はリクエストコンテキストにCallerを格納するためのキー。
var callerContextKey = contextKey("caller")

// CredentialResolver はBasic認証情報の検証インターフェース。
// auth.Verifierの部分集合として定義する。
type CredentialResolver interface {
	Resolve(ctx context.Context, username, password string) (auth.Caller, error)
}

// NewAuthMiddleware はAuthorizationヘッダのHTTP Basic認証情報を解決し、
// 型付きのCallerをリクエストコンテキストに注入するミドルウェアを返す。
// 認証の要否はエンドポイントごとに異なり、ステータスコードの優先順位は
// リソースの存在確認より後に認証を判定する操作もあるため、
// このミドルウェアは拒否レスポンスを書かない。判定はサービス層が行う。
func NewAuthMiddleware(resolver CredentialResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				ctx := ContextWithCaller(r.Context(), auth.Caller{State: auth.Anonymous})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			caller, err := resolver.Resolve(r.Context(), username, password)
			if err != nil {
				// ストア障害のみここに到達する。認証判定の失敗ではない。
				slog.Error("failed to resolve credentials",
					slog.String("error", err.Error()),
				)
				WriteInternalServerError(w)
				return
			}

			ctx := ContextWithCaller(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext はリクエストコンテキストからCallerを取得する。
// 認証ミドルウェアを通過していない場合はAnonymousを返す。
func CallerFromContext(ctx context.Context) auth.Caller {
	caller, ok := ctx.Value(callerContextKey).(auth.Caller)
	if !ok {
		return auth.Caller{State: auth.Anonymous}
	}
	return caller
}

// ContextWithCaller はコンテキストにCallerを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithCaller(ctx context.Context, caller auth.Caller) context.Context {
	return context.WithValue(ctx, callerContextKey, caller)
}
