// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// ファサードがHTTPステータスやGraphQLエラーに変換するためのカテゴリを含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, conflict, not_found, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingField   = "MISSING_FIELD"
	ErrCodeEmailConflict  = "EMAIL_CONFLICT"
	ErrCodePostNotFound   = "POST_NOT_FOUND"
	ErrCodeInvalidID      = "INVALID_ID"
	ErrCodeInvalidInteger = "INVALID_INTEGER"
)

// エラーカテゴリ
const (
	CategoryValidation = "validation"
	CategoryConflict   = "conflict"
	CategoryNotFound   = "not_found"
	CategorySystem     = "system"
)

// NewMissingFieldError は必須フィールド未指定エラーを生成する。
func NewMissingFieldError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingField,
		Message:  fmt.Sprintf("必須フィールドが指定されていません: %s", field),
		Category: CategoryValidation,
		Action:   fmt.Sprintf("%s を指定してください。", field),
	}
}

// NewEmailConflictError はemail重複エラーを生成する。
func NewEmailConflictError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeEmailConflict,
		Message:  fmt.Sprintf("このメールアドレスは既に登録されています: %s", email),
		Category: CategoryConflict,
		Action:   "別のメールアドレスで登録してください。",
	}
}

// NewPostNotFoundError は投稿未検出エラーを生成する。
func NewPostNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された投稿が見つかりません: %d", id),
		Category: CategoryNotFound,
		Action:   "投稿IDを確認してください。",
	}
}

// NewInvalidIntegerError はクエリパラメータが整数として解釈できない場合のエラーを生成する。
func NewInvalidIntegerError(param, raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidInteger,
		Message:  fmt.Sprintf("%s は整数として解釈できません: %s", param, raw),
		Category: CategoryValidation,
		Action:   fmt.Sprintf("%s には整数を指定してください。", param),
	}
}

// NewInvalidIDError はIDが整数として解釈できない場合のエラーを生成する。
func NewInvalidIDError(raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("無効なIDです: %s", raw),
		Category: CategoryValidation,
		Action:   "IDには整数を指定してください。",
	}
}
