package blogRepository

import (
	blogs "BlogGolang/internal/api/blog"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type PostDB struct {
	ID                  sql.NullString `db:"id"`
	Title               sql.NullString `db:"title"`
	Content             sql.NullString `db:"content"`
	Image               sql.NullString `db:"image"`
	Status              sql.NullString `db:"status"`
	AuthorID            sql.NullString `db:"author_id"`
	CategoryID          sql.NullString `db:"category_id"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
	AuthorUsername      sql.NullString `db:"author_username"`
	AuthorFirstName     sql.NullString `db:"author_first_name"`
	AuthorLastName      sql.NullString `db:"author_last_name"`
	CategoryName        sql.NullString `db:"category_name"`
	CategoryDescription sql.NullString `db:"category_description"`
	CategoryCreatedAt   sql.NullTime   `db:"category_created_at"`
	CommentsCount       int            `db:"comments_count"`
}

type popularPostDB struct {
	PostDB
	TotalComments int `db:"total_comments"`
}

func (r *postsRepository) CreatePost(ctx context.Context, post entity.Post) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          post.ID,
		"title":       post.Title,
		"content":     post.Content,
		"image":       post.Image,
		"status":      post.Status,
		"author_id":   post.AuthorID,
		"category_id": post.CategoryID,
		"created_at":  post.CreatedAt,
		"updated_at":  post.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreatePost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreatePost")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating post")
		return err
	}

	return nil
}

func (r *postsRepository) GetPostByID(ctx context.Context, id string, publishedOnly bool) (entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var post PostDB

	conds := []string{"p.id = :id"}
	argsKV := map[string]interface{}{"id": id}
	if publishedOnly {
		conds = append(conds, "p.status = :visible_status")
		argsKV["visible_status"] = "published"
	}

	query, args, err := sqlx.Named(queryPostColumns+queryPostFrom+whereClause(conds), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostByID named query preparation err")
		return entity.Post{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&post); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("GetPostByID no rows found")
			return entity.Post{}, blogs.ErrPostNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostByID execution err")
		return entity.Post{}, err
	}

	return r.makePost(post), nil
}

func (r *postsRepository) ListPosts(ctx context.Context, filter blogs.PostFilter, publishedOnly bool, authorID string, limit, offset int) ([]entity.Post, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var postsList []PostDB
	var total int

	conds, argsKV := buildPostPredicates(filter, publishedOnly, authorID)

	countQuery, countArgs, err := sqlx.Named(queryCountPosts+whereClause(conds), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountPosts named query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountPosts execution err")
		return nil, 0, err
	}

	argsKV["limit"] = limit
	argsKV["offset"] = offset

	listQuery := queryPostColumns + queryPostFrom + whereClause(conds) + "\n\t\t" +
		orderBy(postOrderings, filter.Ordering, "-created_at", "p.id") + "\n\t\tLIMIT :limit OFFSET :offset"

	query, args, err := sqlx.Named(listQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListPosts named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &postsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListPosts execution err")
		return nil, 0, err
	}

	var posts []entity.Post
	for _, postDB := range postsList {
		posts = append(posts, r.makePost(postDB))
	}

	return posts, total, nil
}

func (r *postsRepository) PopularPosts(ctx context.Context, limit int) ([]entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var postsList []popularPostDB

	query, args, err := sqlx.Named(queryPopularPosts, map[string]interface{}{"limit": limit})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("PopularPosts named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &postsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("PopularPosts execution err")
		return nil, err
	}

	var posts []entity.Post
	for _, postDB := range postsList {
		posts = append(posts, r.makePost(postDB.PostDB))
	}

	return posts, nil
}

func (r *postsRepository) UpdatePost(ctx context.Context, post entity.Post) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          post.ID,
		"title":       post.Title,
		"content":     post.Content,
		"image":       post.Image,
		"status":      post.Status,
		"category_id": post.CategoryID,
		"updated_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdatePost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         post.ID,
		}).Warn("UpdatePost no rows affected")
		return blogs.ErrPostNotFound
	}

	return nil
}

func (r *postsRepository) DeletePost(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeletePost, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("DeletePost no rows affected")
		return blogs.ErrPostNotFound
	}

	return nil
}

func (r *postsRepository) makePost(post PostDB) entity.Post {
	p := entity.Post{
		ID:            post.ID.String,
		Title:         post.Title.String,
		Content:       post.Content.String,
		Image:         post.Image.String,
		Status:        post.Status.String,
		AuthorID:      post.AuthorID.String,
		CategoryID:    post.CategoryID.String,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
		CommentsCount: post.CommentsCount,
		Author: entity.User{
			ID:        post.AuthorID.String,
			Username:  post.AuthorUsername.String,
			FirstName: post.AuthorFirstName.String,
			LastName:  post.AuthorLastName.String,
		},
	}

	if post.CategoryID.Valid && post.CategoryID.String != "" {
		p.Category = &entity.Category{
			ID:          post.CategoryID.String,
			Name:        post.CategoryName.String,
			Description: post.CategoryDescription.String,
			CreatedAt:   post.CategoryCreatedAt.Time,
		}
	}

	return p
}
