package blogRepository

import (
	blogs "BlogGolang/internal/api/blog"
	"BlogGolang/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Categories: &categoriesRepository{q: sqlExecutor, log: r.log},
		Posts:      &postsRepository{q: sqlExecutor, log: r.log},
		Comments:   &commentsRepository{q: sqlExecutor, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Categories interface {
		CreateCategory(ctx context.Context, category entity.Category) error
		GetCategoryByID(ctx context.Context, id string) (entity.Category, error)
		ListCategories(ctx context.Context, search, ordering string, limit, offset int) ([]entity.Category, int, error)
		UpdateCategory(ctx context.Context, category entity.Category) error
		DeleteCategory(ctx context.Context, id string) error
	}

	Posts interface {
		CreatePost(ctx context.Context, post entity.Post) error
		GetPostByID(ctx context.Context, id string, publishedOnly bool) (entity.Post, error)
		ListPosts(ctx context.Context, filter blogs.PostFilter, publishedOnly bool, authorID string, limit, offset int) ([]entity.Post, int, error)
		PopularPosts(ctx context.Context, limit int) ([]entity.Post, error)
		UpdatePost(ctx context.Context, post entity.Post) error
		DeletePost(ctx context.Context, id string) error
	}

	Comments interface {
		CreateComment(ctx context.Context, comment entity.Comment) error
		GetCommentByID(ctx context.Context, id string, approvedOnly bool) (entity.Comment, error)
		ListComments(ctx context.Context, filter blogs.CommentFilter, approvedOnly bool, limit, offset int) ([]entity.Comment, int, error)
		ListCommentsByPost(ctx context.Context, postID string, approvedOnly bool, limit, offset int) ([]entity.Comment, int, error)
		ListCommentsByPostIDs(ctx context.Context, postIDs []string) (map[string][]entity.Comment, error)
		UpdateComment(ctx context.Context, id string, content string) error
		DeleteComment(ctx context.Context, id string) error
	}

	Commit   func() error
	Rollback func() error
}

type categoriesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type postsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type commentsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
