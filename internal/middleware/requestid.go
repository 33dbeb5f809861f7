package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// requestIDContextKey はコンテキストに格納するリクエストIDのキー型。
type requestIDContextKey struct{}

// ErrNoRequestID はコンテキストにリクエストIDが存在しない場合のエラー。
var ErrNoRequestID = errors.New("request ID not found in context")

// RequestIDFromContext はコンテキストからリクエストIDを取得する。
func RequestIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	if !ok || id == "" {
		return "", ErrNoRequestID
	}
	return id, nil
}

// NewRequestIDMiddleware はリクエストごとに一意のIDを採番するミドルウェアを返す。
// クライアントがX-Request-Idヘッダーを送信した場合はその値を引き継ぐ。
// IDはコンテキストとX-Request-Idレスポンスヘッダーの両方に設定される。
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set("X-Request-Id", id)
			ctx := context.WithValue(r.Context(), requestIDContextKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
