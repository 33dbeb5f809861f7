// Package handler はリソース指向のHTTP APIファサードを提供する。
//
// 各ハンドラーはリクエストの解釈とレスポンスの整形のみを行い、
// ドメインロジックはすべてサービス層（Content Engine）に委譲する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/blogd/internal/middleware"
	"github.com/hitoshi/blogd/internal/model"
)

// authorResponse は著者のレスポンス。
type authorResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// postResponse は投稿のレスポンス。
type postResponse struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Title     string          `json:"title"`
	Content   string          `json:"content,omitempty"`
	Published bool            `json:"published"`
	ViewCount int64           `json:"viewCount"`
	Author    *authorResponse `json:"author"`
}

// draftResponse は著者別ドラフト一覧のレスポンス。
// 呼び出し側が著者を特定済みのため、著者情報は含めない。
type draftResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	Published bool   `json:"published"`
}

// toAuthorResponse は*model.AuthorをauthorResponseに変換する。
func toAuthorResponse(a *model.Author) *authorResponse {
	if a == nil {
		return nil
	}
	return &authorResponse{
		ID:    a.ID,
		Email: a.Email,
		Name:  a.Name,
	}
}

// toPostResponse は*model.PostをpostResponseに変換する。
func toPostResponse(p *model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		ViewCount: p.ViewCount,
		Author:    toAuthorResponse(p.Author),
	}
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// handleServiceError はサービス層のエラーをHTTPレスポンスに変換する。
// APIErrorはカテゴリに応じたステータスコード、それ以外は500として処理する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteAPIError(w, apiErr)
		return
	}

	slog.Error("unexpected service error",
		slog.String("error", err.Error()),
	)
	middleware.WriteInternalServerError(w)
}
