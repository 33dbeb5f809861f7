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

// AuthorServiceInterface は著者ハンドラーが必要とするサービスインターフェース。
type AuthorServiceInterface interface {
	// Signup は新しい著者を登録する。
	Signup(ctx context.Context, name, email string) (*model.Author, error)
	// ListAuthors は全著者をID昇順で返す。
	ListAuthors(ctx context.Context) ([]*model.Author, error)
}

// DraftListerInterface は著者別ドラフト一覧の取得インターフェース。
type DraftListerInterface interface {
	// DraftsByAuthor は指定著者の未公開投稿を返す。
	DraftsByAuthor(ctx context.Context, authorID int64) ([]*model.Post, error)
}

// AuthorHandler は著者管理のHTTPハンドラー。
type AuthorHandler struct {
	service     AuthorServiceInterface
	draftLister DraftListerInterface
}

// NewAuthorHandler はAuthorHandlerを生成する。
func NewAuthorHandler(service AuthorServiceInterface, draftLister DraftListerInterface) *AuthorHandler {
	return &AuthorHandler{
		service:     service,
		draftLister: draftLister,
	}
}

// signupRequest はサインアップリクエストのボディ。
type signupRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Signup は新しい著者を登録する。
// POST /signup
func (h *AuthorHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteAPIError(w, model.NewMissingFieldError("email"))
		return
	}

	author, err := h.service.Signup(r.Context(), req.Name, req.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthorResponse(author))
}

// ListAuthors は全著者を返す。
// GET /users
func (h *AuthorHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.ListAuthors(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]*authorResponse, 0, len(authors))
	for _, a := range authors {
		resp = append(resp, toAuthorResponse(a))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListDrafts は指定著者の未公開投稿を返す。
// 著者が存在しない場合も空の配列を返す（エラーにしない）。
// GET /user/{id}/drafts
func (h *AuthorHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	authorID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		middleware.WriteAPIError(w, model.NewInvalidIDError(raw))
		return
	}

	drafts, err := h.draftLister.DraftsByAuthor(r.Context(), authorID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]draftResponse, 0, len(drafts))
	for _, d := range drafts {
		resp = append(resp, draftResponse{
			ID:        d.ID,
			Title:     d.Title,
			Content:   d.Content,
			Published: d.Published,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
