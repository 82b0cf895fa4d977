package middleware

import "net/http"

// NewSecurityHeadersMiddleware はJSON APIレスポンス向けのセキュリティヘッダーを付与するミドルウェアを返す。
// 全リクエストがBasic認証の資格情報を運ぶため、
// 認証済みレスポンスが中間キャッシュに残らないようCache-Controlをno-storeにする。
func NewSecurityHeadersMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
