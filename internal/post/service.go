// Package post は投稿のドメインロジックを提供する。
//
// ドラフト作成から公開、閲覧数カウント、フィード検索までの
// 投稿ライフサイクル全体を扱う。サービス自体は状態を持たず、
// 各操作はリポジトリに対するステートレスな変換として実行される。
package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/blogd/internal/model"
	"github.com/hitoshi/blogd/internal/repository"
)

// Sanitizer は投稿本文のサニタイズインターフェース。
type Sanitizer interface {
	Sanitize(rawHTML string) string
}

// MetricsRecorder は投稿関連のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordDraftCreated()
	RecordPostPublished()
	RecordViewIncrement()
	RecordPostDeleted()
}

// ServiceConfig はフィードの挙動を定める設定。
type ServiceConfig struct {
	// FeedPublishedOnly がtrueの場合、Feedはpublished=trueの投稿のみを返す。
	FeedPublishedOnly bool
	// FeedMaxTake はFeedのtakeの上限。0以下の場合は上限なし。
	FeedMaxTake int
}

// Service は投稿のサービス層。
type Service struct {
	postRepo   repository.PostRepository
	authorRepo repository.AuthorRepository
	sanitizer  Sanitizer
	metrics    MetricsRecorder
	config     ServiceConfig
}

// NewService はServiceの新しいインスタンスを生成する。
// sanitizerとmetricsはnilでもよい（それぞれの処理をスキップする）。
func NewService(
	postRepo repository.PostRepository,
	authorRepo repository.AuthorRepository,
	sanitizer Sanitizer,
	metrics MetricsRecorder,
	config ServiceConfig,
) *Service {
	return &Service{
		postRepo:   postRepo,
		authorRepo: authorRepo,
		sanitizer:  sanitizer,
		metrics:    metrics,
		config:     config,
	}
}

// CreateDraft は未公開のドラフトを作成する。
// titleが空の場合はvalidationエラーを返す。
// authorEmailに一致する著者が存在しない場合、投稿は著者なしで作成される
// （著者の紐付けはベストエフォートであり、外部キー制約としては扱わない）。
func (s *Service) CreateDraft(ctx context.Context, title, content, authorEmail string) (*model.Post, error) {
	if title == "" {
		return nil, model.NewMissingFieldError("title")
	}

	if s.sanitizer != nil {
		content = s.sanitizer.Sanitize(content)
	}

	post := &model.Post{
		Title:     title,
		Content:   content,
		Published: false,
		ViewCount: 0,
	}

	if authorEmail != "" {
		author, err := s.authorRepo.FindByEmail(ctx, authorEmail)
		if err != nil {
			return nil, fmt.Errorf("著者の検索に失敗しました: %w", err)
		}
		if author != nil {
			post.AuthorID = &author.ID
			post.Author = author
		} else {
			slog.Warn("draft author not resolved",
				slog.String("author_email", authorEmail),
			)
		}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("投稿の作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordDraftCreated()
	}

	return post, nil
}

// Publish は投稿を公開する。
// 冪等な操作であり、既に公開済みの投稿に対しては変更なしで成功を返す。
func (s *Service) Publish(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("投稿の取得に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(id)
	}

	if post.Published {
		return s.attachAuthor(ctx, post)
	}

	published, err := s.postRepo.SetPublished(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("投稿の公開に失敗しました: %w", err)
	}
	if published == nil {
		return nil, model.NewPostNotFoundError(id)
	}

	if s.metrics != nil {
		s.metrics.RecordPostPublished()
	}

	slog.Info("post published",
		slog.Int64("post_id", id),
	)

	return s.attachAuthor(ctx, published)
}

// IncrementViewCount は閲覧数をストア側でアトミックに+1する。
// ドラフトに対しても適用される（閲覧可否のポリシーはスコープ外）。
func (s *Service) IncrementViewCount(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.IncrementViewCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("閲覧数の更新に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(id)
	}

	if s.metrics != nil {
		s.metrics.RecordViewIncrement()
	}

	return s.attachAuthor(ctx, post)
}

// Delete は投稿を削除し、削除したレコードを返す。著者には影響しない。
func (s *Service) Delete(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("投稿の削除に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(id)
	}

	if s.metrics != nil {
		s.metrics.RecordPostDeleted()
	}

	slog.Info("post deleted",
		slog.Int64("post_id", id),
	)

	return s.attachAuthor(ctx, post)
}

// GetPost は指定IDの投稿を著者付きで返す。
func (s *Service) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("投稿の取得に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(id)
	}
	return s.attachAuthor(ctx, post)
}

// Feed は検索・ページネーションを適用した投稿一覧を返す。
// searchが指定された場合、titleまたはcontentに対する
// 大文字小文字を区別しない部分一致で絞り込む。
// 結果はID昇順。skipは0未満を0として扱い、takeが0以下の場合は残り全件を返す
// （FeedMaxTakeが設定されている場合はtakeをその値で打ち切る）。
// 公開済みのみを返すかどうかはServiceConfig.FeedPublishedOnlyで決まる。
// 各投稿には解決可能な著者が付与される（解決できない場合はnil）。
func (s *Service) Feed(ctx context.Context, search string, skip, take int) ([]*model.Post, error) {
	if skip < 0 {
		skip = 0
	}
	if s.config.FeedMaxTake > 0 && take > s.config.FeedMaxTake {
		take = s.config.FeedMaxTake
	}

	filter := repository.PostFilter{
		Search:        search,
		PublishedOnly: s.config.FeedPublishedOnly,
	}

	posts, err := s.postRepo.List(ctx, filter, skip, take)
	if err != nil {
		return nil, fmt.Errorf("フィードの取得に失敗しました: %w", err)
	}

	if err := s.attachAuthors(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// DraftsByAuthor は指定著者の未公開投稿をID昇順で返す。
// 著者が存在しない場合やドラフトがない場合は空のスライスを返す（エラーにしない）。
// 呼び出し側が既に著者を特定しているため、結果の投稿に著者の再解決は行わない。
func (s *Service) DraftsByAuthor(ctx context.Context, authorID int64) ([]*model.Post, error) {
	filter := repository.PostFilter{
		AuthorID:   &authorID,
		DraftsOnly: true,
	}

	posts, err := s.postRepo.List(ctx, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("ドラフト一覧の取得に失敗しました: %w", err)
	}

	return posts, nil
}

// PostsByAuthor は指定著者の全投稿をID昇順で返す。
// 著者のposts関連の解決に使用する。
func (s *Service) PostsByAuthor(ctx context.Context, authorID int64) ([]*model.Post, error) {
	filter := repository.PostFilter{
		AuthorID: &authorID,
	}

	posts, err := s.postRepo.List(ctx, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("投稿一覧の取得に失敗しました: %w", err)
	}

	return posts, nil
}

// attachAuthor は投稿のAuthorIDから著者を解決してPostに付与する。
// 著者が解決できない場合はAuthorをnilのままにする。
func (s *Service) attachAuthor(ctx context.Context, post *model.Post) (*model.Post, error) {
	if post.AuthorID == nil {
		return post, nil
	}

	author, err := s.authorRepo.FindByID(ctx, *post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("著者の解決に失敗しました: %w", err)
	}
	post.Author = author
	return post, nil
}

// attachAuthors は複数投稿の著者をまとめて解決する。
// 同一著者は1回だけ取得する。
func (s *Service) attachAuthors(ctx context.Context, posts []*model.Post) error {
	resolved := map[int64]*model.Author{}
	for _, p := range posts {
		if p.AuthorID == nil {
			continue
		}
		if author, ok := resolved[*p.AuthorID]; ok {
			p.Author = author
			continue
		}
		author, err := s.authorRepo.FindByID(ctx, *p.AuthorID)
		if err != nil {
			return fmt.Errorf("著者の解決に失敗しました: %w", err)
		}
		resolved[*p.AuthorID] = author
		p.Author = author
	}
	return nil
}
