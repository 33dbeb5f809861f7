// Package author は著者管理のドメインロジックを提供する。
package author

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/blogd/internal/model"
	"github.com/hitoshi/blogd/internal/repository"
)

// MetricsRecorder は著者関連のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordSignup()
}

// Service は著者管理のサービス層。
// サインアップと著者一覧のビジネスロジックを提供する。
type Service struct {
	authorRepo repository.AuthorRepository
	metrics    MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilでもよい（記録をスキップする）。
func NewService(authorRepo repository.AuthorRepository, metrics MetricsRecorder) *Service {
	return &Service{
		authorRepo: authorRepo,
		metrics:    metrics,
	}
}

// Signup は新しい著者を登録する。
// emailが空の場合はvalidationエラー、既に登録済みの場合はconflictエラーを返す。
func (s *Service) Signup(ctx context.Context, name, email string) (*model.Author, error) {
	if email == "" {
		return nil, model.NewMissingFieldError("email")
	}

	existing, err := s.authorRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("著者の検索に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailConflictError(email)
	}

	author := &model.Author{
		Email: email,
		Name:  name,
	}

	// 同時サインアップの競合はストアの一意制約が検出し、
	// リポジトリがconflictエラーとして返す。
	if err := s.authorRepo.Create(ctx, author); err != nil {
		if _, ok := err.(*model.APIError); ok {
			return nil, err
		}
		return nil, fmt.Errorf("著者の作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordSignup()
	}

	slog.Info("author signed up",
		slog.Int64("author_id", author.ID),
	)

	return author, nil
}

// GetAuthor は指定IDの著者を返す。見つからない場合はnilを返す（エラーにしない）。
// 投稿のauthor関連の解決に使用する。
func (s *Service) GetAuthor(ctx context.Context, id int64) (*model.Author, error) {
	author, err := s.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("著者の取得に失敗しました: %w", err)
	}
	return author, nil
}

// ListAuthors は全著者をID昇順で返す。
func (s *Service) ListAuthors(ctx context.Context) ([]*model.Author, error) {
	authors, err := s.authorRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("著者一覧の取得に失敗しました: %w", err)
	}
	return authors, nil
}
