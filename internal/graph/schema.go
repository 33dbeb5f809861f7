// Package graph はクエリ言語（GraphQL）のAPIファサードを提供する。
//
// スキーマはリソース指向ファサードと同じContent Engineの操作に
// 1対1で対応し、ドメインロジックは一切持たない。
package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/hitoshi/blogd/internal/model"
)

// AuthorServiceInterface はスキーマが必要とする著者サービスインターフェース。
type AuthorServiceInterface interface {
	Signup(ctx context.Context, name, email string) (*model.Author, error)
	GetAuthor(ctx context.Context, id int64) (*model.Author, error)
	ListAuthors(ctx context.Context) ([]*model.Author, error)
}

// PostServiceInterface はスキーマが必要とする投稿サービスインターフェース。
type PostServiceInterface interface {
	CreateDraft(ctx context.Context, title, content, authorEmail string) (*model.Post, error)
	IncrementViewCount(ctx context.Context, id int64) (*model.Post, error)
	Delete(ctx context.Context, id int64) (*model.Post, error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	Feed(ctx context.Context, search string, skip, take int) ([]*model.Post, error)
	DraftsByAuthor(ctx context.Context, authorID int64) ([]*model.Post, error)
	PostsByAuthor(ctx context.Context, authorID int64) ([]*model.Post, error)
}

// NewSchema はblogdのGraphQLスキーマを構築する。
//
//	Query:    allUsers, postById(id), feed(searchString, skip, take), draftsByUser(id)
//	Mutation: signupUser(name, email), createDraft(title, content, authorEmail),
//	          incrementPostViewCount(id), deletePost(id)
func NewSchema(authors AuthorServiceInterface, posts PostServiceInterface) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					author, ok := p.Source.(*model.Author)
					if !ok {
						return nil, fmt.Errorf("unexpected source type %T", p.Source)
					}
					// 表示名は任意項目。未設定はnullとして返す。
					if author.Name == "" {
						return nil, nil
					}
					return author.Name, nil
				},
			},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*model.Post).CreatedAt, nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*model.Post).UpdatedAt, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"content": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post := p.Source.(*model.Post)
					if post.Content == "" {
						return nil, nil
					}
					return post.Content, nil
				},
			},
			"published": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
			},
			"viewCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
		},
	})

	// user.posts と post.author は相互参照のため後から追加する
	userType.AddFieldConfig("posts", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			author, ok := p.Source.(*model.Author)
			if !ok {
				return nil, fmt.Errorf("unexpected source type %T", p.Source)
			}
			return posts.PostsByAuthor(p.Context, author.ID)
		},
	})

	postType.AddFieldConfig("author", &graphql.Field{
		Type: userType,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			post, ok := p.Source.(*model.Post)
			if !ok {
				return nil, fmt.Errorf("unexpected source type %T", p.Source)
			}
			if post.Author != nil {
				return post.Author, nil
			}
			if post.AuthorID == nil {
				return nil, nil
			}
			author, err := authors.GetAuthor(p.Context, *post.AuthorID)
			if err != nil {
				return nil, err
			}
			if author == nil {
				return nil, nil
			}
			return author, nil
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allUsers": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return authors.ListAuthors(p.Context)
				},
			},
			"postById": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post, err := posts.GetPost(p.Context, int64(p.Args["id"].(int)))
					// 存在しないIDはnullとして返す（postByIdはnullable）
					if isNotFound(err) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return post, nil
				},
			},
			"feed": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
				Args: graphql.FieldConfigArgument{
					"searchString": &graphql.ArgumentConfig{Type: graphql.String},
					"skip":         &graphql.ArgumentConfig{Type: graphql.Int},
					"take":         &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					search, _ := p.Args["searchString"].(string)
					skip, _ := p.Args["skip"].(int)
					take, _ := p.Args["take"].(int)
					return posts.Feed(p.Context, search, skip, take)
				},
			},
			"draftsByUser": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return posts.DraftsByAuthor(p.Context, int64(p.Args["id"].(int)))
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signupUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.String},
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					name, _ := p.Args["name"].(string)
					email, _ := p.Args["email"].(string)
					return authors.Signup(p.Context, name, email)
				},
			},
			"createDraft": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"content":     &graphql.ArgumentConfig{Type: graphql.String},
					"authorEmail": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					title, _ := p.Args["title"].(string)
					content, _ := p.Args["content"].(string)
					authorEmail, _ := p.Args["authorEmail"].(string)
					return posts.CreateDraft(p.Context, title, content, authorEmail)
				},
			},
			"incrementPostViewCount": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return posts.IncrementViewCount(p.Context, int64(p.Args["id"].(int)))
				},
			},
			"deletePost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return posts.Delete(p.Context, int64(p.Args["id"].(int)))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// isNotFound はエラーがnot_foundカテゴリのAPIErrorかどうかを判定する。
func isNotFound(err error) bool {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Category == model.CategoryNotFound
	}
	return false
}
