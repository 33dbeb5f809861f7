package graph

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/hitoshi/blogd/internal/middleware"
	"github.com/hitoshi/blogd/internal/model"
)

// graphqlRequest はGraphQLリクエストのボディ。
type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Handler はGraphQLのHTTPハンドラー。
// POSTのJSONボディまたはGETのqueryパラメータでクエリを受け付ける。
type Handler struct {
	schema graphql.Schema
}

// NewHandler はHandlerを生成する。
func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// ServeHTTP はGraphQLクエリを実行し、結果をJSONで返す。
// 実行エラー（バリデーション・リゾルバ双方）はGraphQL標準の
// errorsフィールドとして200で返す。
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Query = query.Get("query")
		req.OperationName = query.Get("operationName")
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteAPIError(w, model.NewMissingFieldError("query"))
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		middleware.WriteErrorResponse(w, http.StatusMethodNotAllowed, &model.APIError{
			Code:     "METHOD_NOT_ALLOWED",
			Message:  "GETまたはPOSTでリクエストしてください。",
			Category: model.CategoryValidation,
			Action:   "HTTPメソッドを確認してください。",
		})
		return
	}

	if req.Query == "" {
		middleware.WriteAPIError(w, model.NewMissingFieldError("query"))
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}
