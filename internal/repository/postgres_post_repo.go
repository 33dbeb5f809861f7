package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/hitoshi/blogd/internal/model"
)

// postColumns は投稿取得クエリで常に選択するカラム列。
const postColumns = `id, created_at, updated_at, title, content, published, view_count, author_id`

// PostgresPostRepo はPostgreSQLを使用した投稿リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// scanPost は1行を*model.Postに読み込む。
func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	post := &model.Post{}
	var authorID sql.NullInt64
	err := row.Scan(
		&post.ID, &post.CreatedAt, &post.UpdatedAt,
		&post.Title, &post.Content, &post.Published, &post.ViewCount,
		&authorID,
	)
	if err != nil {
		return nil, err
	}
	if authorID.Valid {
		post.AuthorID = &authorID.Int64
	}
	return post, nil
}

// Create は投稿を作成し、採番されたIDとタイムスタンプをpostに書き戻す。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.Post) error {
	var authorID sql.NullInt64
	if post.AuthorID != nil {
		authorID = sql.NullInt64{Int64: *post.AuthorID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO posts (title, content, published, view_count, author_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		post.Title, post.Content, post.Published, post.ViewCount, authorID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}
	return post, nil
}

// SetPublished は投稿をpublished=trueに更新し、updated_atを更新して返す。
// 見つからない場合はnilを返す。
func (r *PostgresPostRepo) SetPublished(ctx context.Context, id int64) (*model.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx,
		`UPDATE posts SET published = true, updated_at = now()
		 WHERE id = $1
		 RETURNING `+postColumns, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to publish post: %w", err)
	}
	return post, nil
}

// IncrementViewCount はview_countをストア側でアトミックに+1して返す。
// インクリメントはUPDATE文の中で評価されるため、並行呼び出しでも更新が失われない。
// 見つからない場合はnilを返す。
func (r *PostgresPostRepo) IncrementViewCount(ctx context.Context, id int64) (*model.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx,
		`UPDATE posts SET view_count = view_count + 1, updated_at = now()
		 WHERE id = $1
		 RETURNING `+postColumns, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment view count: %w", err)
	}
	return post, nil
}

// Delete は投稿を削除し、削除したレコードを返す。見つからない場合はnilを返す。
func (r *PostgresPostRepo) Delete(ctx context.Context, id int64) (*model.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx,
		`DELETE FROM posts WHERE id = $1 RETURNING `+postColumns, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	return post, nil
}

// List はフィルタ適用後の投稿をID昇順で返し、skip/takeのウィンドウを適用する。
// takeが0以下の場合は残り全件を返す。
func (r *PostgresPostRepo) List(ctx context.Context, filter PostFilter, skip, take int) ([]*model.Post, error) {
	var conds []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		p := strconv.Itoa(len(args))
		conds = append(conds, "(title ILIKE $"+p+" OR content ILIKE $"+p+")")
	}
	if filter.PublishedOnly {
		conds = append(conds, "published = true")
	}
	if filter.DraftsOnly {
		conds = append(conds, "published = false")
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, "author_id = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id ASC"

	if skip > 0 {
		args = append(args, skip)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}
	if take > 0 {
		args = append(args, take)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
