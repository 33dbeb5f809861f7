package author

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/blogd/internal/model"
)

// --- モック ---

type mockAuthorRepo struct {
	createFn      func(ctx context.Context, author *model.Author) error
	findByEmailFn func(ctx context.Context, email string) (*model.Author, error)
	findByIDFn    func(ctx context.Context, id int64) (*model.Author, error)
	listAllFn     func(ctx context.Context) ([]*model.Author, error)
}

func (m *mockAuthorRepo) Create(ctx context.Context, author *model.Author) error {
	if m.createFn != nil {
		return m.createFn(ctx, author)
	}
	author.ID = 1
	return nil
}
func (m *mockAuthorRepo) FindByEmail(ctx context.Context, email string) (*model.Author, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}
func (m *mockAuthorRepo) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockAuthorRepo) ListAll(ctx context.Context) ([]*model.Author, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return []*model.Author{}, nil
}

type mockMetrics struct {
	signups int
}

func (m *mockMetrics) RecordSignup() { m.signups++ }

// --- テスト ---

func TestService_Signup_Success(t *testing.T) {
	created := false
	repo := &mockAuthorRepo{
		createFn: func(ctx context.Context, author *model.Author) error {
			created = true
			if author.Email != "alice@example.com" {
				t.Errorf("email = %q, want %q", author.Email, "alice@example.com")
			}
			if author.Name != "Alice" {
				t.Errorf("name = %q, want %q", author.Name, "Alice")
			}
			author.ID = 42
			return nil
		},
	}
	m := &mockMetrics{}
	svc := NewService(repo, m)

	author, err := svc.Signup(context.Background(), "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected Create to be called")
	}
	if author.ID != 42 {
		t.Errorf("ID = %d, want 42", author.ID)
	}
	if m.signups != 1 {
		t.Errorf("signup metric = %d, want 1", m.signups)
	}
}

func TestService_Signup_MissingEmail_ReturnsValidationError(t *testing.T) {
	svc := NewService(&mockAuthorRepo{}, nil)

	_, err := svc.Signup(context.Background(), "Alice", "")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %v", err)
	}
	if apiErr.Category != model.CategoryValidation {
		t.Errorf("category = %q, want %q", apiErr.Category, model.CategoryValidation)
	}
}

func TestService_Signup_DuplicateEmail_ReturnsConflictError(t *testing.T) {
	repo := &mockAuthorRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.Author, error) {
			return &model.Author{ID: 1, Email: email}, nil
		},
		createFn: func(ctx context.Context, author *model.Author) error {
			t.Error("Create should not be called for a duplicate email")
			return nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Signup(context.Background(), "", "alice@example.com")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %v", err)
	}
	if apiErr.Category != model.CategoryConflict {
		t.Errorf("category = %q, want %q", apiErr.Category, model.CategoryConflict)
	}
}

// ストアの一意制約が競合を検出した場合（FindByEmail後の競り負け）も
// conflictエラーがそのまま呼び出し側に届くことを検証する。
func TestService_Signup_RaceOnUniqueConstraint_PropagatesConflict(t *testing.T) {
	repo := &mockAuthorRepo{
		createFn: func(ctx context.Context, author *model.Author) error {
			return model.NewEmailConflictError(author.Email)
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Signup(context.Background(), "", "alice@example.com")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeEmailConflict {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeEmailConflict)
	}
}

func TestService_Signup_RepoError_IsWrapped(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &mockAuthorRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.Author, error) {
			return nil, repoErr
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Signup(context.Background(), "", "alice@example.com")
	if !errors.Is(err, repoErr) {
		t.Errorf("expected wrapped repo error, got %v", err)
	}
}

func TestService_GetAuthor_NotFound_ReturnsNil(t *testing.T) {
	svc := NewService(&mockAuthorRepo{}, nil)

	author, err := svc.GetAuthor(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if author != nil {
		t.Errorf("author = %+v, want nil", author)
	}
}

func TestService_ListAuthors(t *testing.T) {
	repo := &mockAuthorRepo{
		listAllFn: func(ctx context.Context) ([]*model.Author, error) {
			return []*model.Author{
				{ID: 1, Email: "a@example.com"},
				{ID: 2, Email: "b@example.com"},
			}, nil
		},
	}
	svc := NewService(repo, nil)

	authors, err := svc.ListAuthors(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(authors) != 2 {
		t.Errorf("len = %d, want 2", len(authors))
	}
}
