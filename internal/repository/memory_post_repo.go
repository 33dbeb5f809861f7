package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hitoshi/blogd/internal/model"
)

// MemoryPostRepo はインメモリの投稿リポジトリ。
// 全操作を単一ミューテックスで直列化するため、IncrementViewCountは
// Postgres実装と同じくアトミックな更新として振る舞う。
type MemoryPostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*model.Post
}

// NewMemoryPostRepo はMemoryPostRepoを生成する。
func NewMemoryPostRepo() *MemoryPostRepo {
	return &MemoryPostRepo{
		nextID: 1,
		posts:  map[int64]*model.Post{},
	}
}

// Create は投稿を作成し、採番されたIDとタイムスタンプをpostに書き戻す。
func (r *MemoryPostRepo) Create(ctx context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	post.ID = r.nextID
	post.CreatedAt = now
	post.UpdatedAt = now
	r.nextID++

	stored := *post
	stored.Author = nil
	r.posts[post.ID] = &stored
	return nil
}

// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
func (r *MemoryPostRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	found := *p
	return &found, nil
}

// SetPublished は投稿をpublished=trueに更新し、updated_atを更新して返す。
// 見つからない場合はnilを返す。
func (r *MemoryPostRepo) SetPublished(ctx context.Context, id int64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	p.Published = true
	p.UpdatedAt = time.Now()
	found := *p
	return &found, nil
}

// IncrementViewCount はview_countをストア内でアトミックに+1して返す。
// 見つからない場合はnilを返す。
func (r *MemoryPostRepo) IncrementViewCount(ctx context.Context, id int64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	p.ViewCount++
	p.UpdatedAt = time.Now()
	found := *p
	return &found, nil
}

// Delete は投稿を削除し、削除したレコードを返す。見つからない場合はnilを返す。
func (r *MemoryPostRepo) Delete(ctx context.Context, id int64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	delete(r.posts, id)
	found := *p
	return &found, nil
}

// matches はフィルタ条件との一致を判定する。
func matches(p *model.Post, filter PostFilter) bool {
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		title := strings.ToLower(p.Title)
		content := strings.ToLower(p.Content)
		if !strings.Contains(title, search) && !strings.Contains(content, search) {
			return false
		}
	}
	if filter.PublishedOnly && !p.Published {
		return false
	}
	if filter.DraftsOnly && p.Published {
		return false
	}
	if filter.AuthorID != nil {
		if p.AuthorID == nil || *p.AuthorID != *filter.AuthorID {
			return false
		}
	}
	return true
}

// List はフィルタ適用後の投稿をID昇順で返し、skip/takeのウィンドウを適用する。
// takeが0以下の場合は残り全件を返す。
func (r *MemoryPostRepo) List(ctx context.Context, filter PostFilter, skip, take int) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []*model.Post{}
	for _, p := range r.posts {
		if matches(p, filter) {
			found := *p
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if skip >= len(matched) {
		return []*model.Post{}, nil
	}
	matched = matched[skip:]

	if take > 0 && take < len(matched) {
		matched = matched[:take]
	}
	return matched, nil
}

// compile-time interface check
var _ PostRepository = (*MemoryPostRepo)(nil)
