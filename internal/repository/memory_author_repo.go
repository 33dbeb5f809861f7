package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hitoshi/blogd/internal/model"
)

// MemoryAuthorRepo はインメモリの著者リポジトリ。
// DATABASE_URL未設定時のローカル開発とエンジンのテストに使用する。
type MemoryAuthorRepo struct {
	mu      sync.RWMutex
	nextID  int64
	authors map[int64]*model.Author
}

// NewMemoryAuthorRepo はMemoryAuthorRepoを生成する。
func NewMemoryAuthorRepo() *MemoryAuthorRepo {
	return &MemoryAuthorRepo{
		nextID:  1,
		authors: map[int64]*model.Author{},
	}
}

// Create は著者を作成し、採番されたIDとタイムスタンプをauthorに書き戻す。
func (r *MemoryAuthorRepo) Create(ctx context.Context, author *model.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.authors {
		if a.Email == author.Email {
			return model.NewEmailConflictError(author.Email)
		}
	}

	now := time.Now()
	author.ID = r.nextID
	author.CreatedAt = now
	author.UpdatedAt = now
	r.nextID++

	stored := *author
	r.authors[author.ID] = &stored
	return nil
}

// FindByEmail はemailで著者を検索する。見つからない場合はnilを返す。
func (r *MemoryAuthorRepo) FindByEmail(ctx context.Context, email string) (*model.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.authors {
		if a.Email == email {
			found := *a
			return &found, nil
		}
	}
	return nil, nil
}

// FindByID は指定IDの著者を取得する。見つからない場合はnilを返す。
func (r *MemoryAuthorRepo) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.authors[id]
	if !ok {
		return nil, nil
	}
	found := *a
	return &found, nil
}

// ListAll は全著者をID昇順で返す。
func (r *MemoryAuthorRepo) ListAll(ctx context.Context) ([]*model.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	authors := make([]*model.Author, 0, len(r.authors))
	for _, a := range r.authors {
		found := *a
		authors = append(authors, &found)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].ID < authors[j].ID })
	return authors, nil
}

// compile-time interface check
var _ AuthorRepository = (*MemoryAuthorRepo)(nil)
