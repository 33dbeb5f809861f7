package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/blogd/internal/model"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のエラーコード。
const pgUniqueViolation = "23505"

// PostgresAuthorRepo はPostgreSQLを使用した著者リポジトリ。
type PostgresAuthorRepo struct {
	db *sql.DB
}

// NewPostgresAuthorRepo はPostgresAuthorRepoを生成する。
func NewPostgresAuthorRepo(db *sql.DB) *PostgresAuthorRepo {
	return &PostgresAuthorRepo{db: db}
}

// Create は著者を作成し、採番されたIDとタイムスタンプをauthorに書き戻す。
// emailの一意制約違反はmodel.APIError（conflict）に変換する。
func (r *PostgresAuthorRepo) Create(ctx context.Context, author *model.Author) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO authors (email, name)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		author.Email, author.Name,
	).Scan(&author.ID, &author.CreatedAt, &author.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return model.NewEmailConflictError(author.Email)
		}
		return fmt.Errorf("failed to insert author: %w", err)
	}

	return nil
}

// FindByEmail はemailで著者を検索する。見つからない場合はnilを返す。
func (r *PostgresAuthorRepo) FindByEmail(ctx context.Context, email string) (*model.Author, error) {
	author := &model.Author{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, created_at, updated_at FROM authors WHERE email = $1`,
		email,
	).Scan(&author.ID, &author.Email, &author.Name, &author.CreatedAt, &author.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find author by email: %w", err)
	}

	return author, nil
}

// FindByID は指定IDの著者を取得する。見つからない場合はnilを返す。
func (r *PostgresAuthorRepo) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	author := &model.Author{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, created_at, updated_at FROM authors WHERE id = $1`,
		id,
	).Scan(&author.ID, &author.Email, &author.Name, &author.CreatedAt, &author.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find author by ID: %w", err)
	}

	return author, nil
}

// ListAll は全著者をID昇順で返す。
func (r *PostgresAuthorRepo) ListAll(ctx context.Context) ([]*model.Author, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, name, created_at, updated_at FROM authors ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []*model.Author{}
	for rows.Next() {
		author := &model.Author{}
		if err := rows.Scan(&author.ID, &author.Email, &author.Name, &author.CreatedAt, &author.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, nil
}

// compile-time interface check
var _ AuthorRepository = (*PostgresAuthorRepo)(nil)
