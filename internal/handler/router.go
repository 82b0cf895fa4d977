package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/logbook/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CredentialResolver middleware.CredentialResolver
	CORSAllowedOrigin  string
	RequestRecorder    middleware.RequestRecorder
	Logger             *slog.Logger

	// サービス
	RegistrationService RegistrationServiceInterface
	ScribeService       ScribeServiceInterface
	EntryService        EntryServiceInterface

	// システム
	DB             Pinger
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Metrics → Auth → Logging
//
// Authミドルウェアは資格情報を解決して型付きのCallerを注入するだけで、
// リクエストを拒否しない。401を返すかどうかの判定はサービス層が
// 存在確認の後に行う。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.RequestRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.RequestRecorder))
	}
	r.Use(middleware.NewAuthMiddleware(deps.CredentialResolver))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}

	authHandler := NewAuthHandler(deps.RegistrationService)
	scribeHandler := NewScribeHandler(deps.ScribeService)
	entryHandler := NewEntryHandler(deps.EntryService)
	systemHandler := NewSystemHandler(deps.DB)

	r.Get("/", systemHandler.Index)
	r.Get("/health", systemHandler.Health)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		// 登録・認証確認
		r.Route("/auth", func(r chi.Router) {
			r.Post("/enlist", authHandler.Enlist)
			r.Post("/unlock", authHandler.Unlock)
			r.Post("/lock", authHandler.Lock)
		})

		// 日誌エントリ
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", entryHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", entryHandler.Get)
				r.Patch("/", entryHandler.Update)
				r.Delete("/", entryHandler.Delete)
			})
		})

		// クロニクル（自分の全エントリ一覧）
		r.Get("/chronicle", entryHandler.Chronicle)

		// プロフィール
		r.Route("/scribes/{id}", func(r chi.Router) {
			r.Get("/", scribeHandler.Get)
			r.Patch("/", scribeHandler.Update)
			r.Delete("/", scribeHandler.Delete)
		})
	})

	return r
}
