package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/blogd/internal/middleware"
)

// HealthChecker はヘルスチェック時の疎通確認インターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	HTTPMetrics       middleware.HTTPMetricsRecorder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// ヘルスチェック（インメモリストア使用時はnil）
	HealthChecker HealthChecker

	// ドメインサービス
	AuthorService AuthorServiceInterface
	PostService   PostServiceInterface
	DraftLister   DraftListerInterface

	// クエリ言語ファサード（/graphqlにマウントする）
	GraphQLHandler http.Handler

	// Prometheusスクレイプ用（/metricsにマウントする）
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RequestID → Logging → SecurityHeaders → CORS → RateLimit(General)
//
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.HTTPMetrics))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authorHandler := NewAuthorHandler(deps.AuthorService, deps.DraftLister)
	postHandler := NewPostHandler(deps.PostService)

	// --- 運用エンドポイント（レート制限の対象外） ---

	r.Get("/health", NewHealthHandler(deps.HealthChecker))

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- APIエンドポイント ---

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// サインアップ（専用レート制限を追加）
		r.With(deps.RateLimiter.SignupMiddleware()).Post("/signup", authorHandler.Signup)

		// 著者
		r.Get("/users", authorHandler.ListAuthors)
		r.Get("/user/{id}/drafts", authorHandler.ListDrafts)

		// 投稿
		r.Post("/post", postHandler.CreateDraft)
		r.Route("/post/{id}", func(r chi.Router) {
			r.Get("/", postHandler.GetPost)
			r.Put("/views", postHandler.IncrementViews)
			r.Delete("/", postHandler.DeletePost)
		})
		r.Put("/publish/{id}", postHandler.Publish)

		// フィード
		r.Get("/feed", postHandler.Feed)

		// クエリ言語ファサード
		if deps.GraphQLHandler != nil {
			r.Handle("/graphql", deps.GraphQLHandler)
		}
	})

	return r
}

// NewHealthHandler はヘルスチェックエンドポイントのハンドラーを返す。
// checkerが非nilの場合はストアへの疎通を確認する。
func NewHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
			defer cancel()

			if err := checker.PingContext(ctx); err != nil {
				slog.Error("health check failed",
					slog.String("error", err.Error()),
				)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
