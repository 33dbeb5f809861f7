// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/blogd/internal/model"
)

// AuthorRepository は著者データの永続化インターフェース。
type AuthorRepository interface {
	// Create は著者を作成し、採番されたIDとタイムスタンプをauthorに書き戻す。
	// emailが既に登録されている場合はmodel.APIError（conflict）を返す。
	Create(ctx context.Context, author *model.Author) error

	// FindByEmail はemailで著者を検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Author, error)

	// FindByID は指定IDの著者を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Author, error)

	// ListAll は全著者をID昇順で返す。
	ListAll(ctx context.Context) ([]*model.Author, error)
}

// PostFilter は投稿一覧の絞り込み条件を表す。
// ゼロ値は「全投稿」を意味する。
type PostFilter struct {
	// Search はtitleまたはcontentに対する大文字小文字を区別しない部分一致。
	// 空文字列の場合は絞り込まない。
	Search string
	// PublishedOnly がtrueの場合、published=trueの投稿のみを対象とする。
	PublishedOnly bool
	// AuthorID が非nilの場合、その著者の投稿のみを対象とする。
	AuthorID *int64
	// DraftsOnly がtrueの場合、published=falseの投稿のみを対象とする。
	DraftsOnly bool
}

// PostRepository は投稿データの永続化インターフェース。
// 一覧取得はID昇順の決定的な順序で返す。
type PostRepository interface {
	// Create は投稿を作成し、採番されたIDとタイムスタンプをpostに書き戻す。
	Create(ctx context.Context, post *model.Post) error

	// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Post, error)

	// SetPublished は投稿をpublished=trueに更新し、updated_atを更新して返す。
	// 見つからない場合はnilを返す。
	SetPublished(ctx context.Context, id int64) (*model.Post, error)

	// IncrementViewCount はview_countをストア側でアトミックに+1して返す。
	// 呼び出し側でのread-modify-writeは行わない。見つからない場合はnilを返す。
	IncrementViewCount(ctx context.Context, id int64) (*model.Post, error)

	// Delete は投稿を削除し、削除したレコードを返す。見つからない場合はnilを返す。
	Delete(ctx context.Context, id int64) (*model.Post, error)

	// List はフィルタ適用後の投稿をID昇順で返し、skip/takeのウィンドウを適用する。
	// takeが0以下の場合は残り全件を返す。
	List(ctx context.Context, filter PostFilter, skip, take int) ([]*model.Post, error)
}
