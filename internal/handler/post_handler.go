package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/blogd/internal/middleware"
	"github.com/hitoshi/blogd/internal/model"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	// CreateDraft は未公開のドラフトを作成する。
	CreateDraft(ctx context.Context, title, content, authorEmail string) (*model.Post, error)
	// Publish は投稿を公開する。冪等。
	Publish(ctx context.Context, id int64) (*model.Post, error)
	// IncrementViewCount は閲覧数をアトミックに+1する。
	IncrementViewCount(ctx context.Context, id int64) (*model.Post, error)
	// Delete は投稿を削除し、削除したレコードを返す。
	Delete(ctx context.Context, id int64) (*model.Post, error)
	// GetPost は指定IDの投稿を著者付きで返す。
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	// Feed は検索・ページネーションを適用した投稿一覧を返す。
	Feed(ctx context.Context, search string, skip, take int) ([]*model.Post, error)
}

// PostHandler は投稿管理のHTTPハンドラー。
type PostHandler struct {
	service PostServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

// createDraftRequest はドラフト作成リクエストのボディ。
type createDraftRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
	AuthorEmail string `json:"authorEmail,omitempty"`
}

// postIDParam はURLパラメータから投稿IDを取得する。
// 解釈できない場合はfalseを返し、400レスポンスを書き込み済みである。
func postIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		middleware.WriteAPIError(w, model.NewInvalidIDError(raw))
		return 0, false
	}
	return id, true
}

// CreateDraft は未公開のドラフトを作成する。
// POST /post
func (h *PostHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req createDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteAPIError(w, model.NewMissingFieldError("title"))
		return
	}

	post, err := h.service.CreateDraft(r.Context(), req.Title, req.Content, req.AuthorEmail)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// GetPost は投稿詳細を返す。
// GET /post/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(w, r)
	if !ok {
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// Publish は投稿を公開する。既に公開済みの場合も200で成功する。
// PUT /publish/{id}
func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(w, r)
	if !ok {
		return
	}

	post, err := h.service.Publish(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// IncrementViews は閲覧数をアトミックに+1する。
// PUT /post/{id}/views
func (h *PostHandler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(w, r)
	if !ok {
		return
	}

	post, err := h.service.IncrementViewCount(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// DeletePost は投稿を削除し、削除したレコードを返す。
// DELETE /post/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(w, r)
	if !ok {
		return
	}

	post, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// Feed は検索・ページネーションを適用した投稿一覧を返す。
// GET /feed?searchString=&skip=&take=
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := query.Get("searchString")

	skip := 0
	if raw := query.Get("skip"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			middleware.WriteAPIError(w, model.NewInvalidIntegerError("skip", raw))
			return
		}
		skip = v
	}

	take := 0
	if raw := query.Get("take"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			middleware.WriteAPIError(w, model.NewInvalidIntegerError("take", raw))
			return
		}
		take = v
	}

	posts, err := h.service.Feed(r.Context(), search, skip, take)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPostResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}
