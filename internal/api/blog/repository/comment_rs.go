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

type CommentDB struct {
	ID              sql.NullString `db:"id"`
	PostID          sql.NullString `db:"post_id"`
	AuthorID        sql.NullString `db:"author_id"`
	Content         sql.NullString `db:"content"`
	IsApproved      bool           `db:"is_approved"`
	CreatedAt       time.Time      `db:"created_at"`
	AuthorUsername  sql.NullString `db:"author_username"`
	AuthorFirstName sql.NullString `db:"author_first_name"`
	AuthorLastName  sql.NullString `db:"author_last_name"`
}

func (r *commentsRepository) CreateComment(ctx context.Context, comment entity.Comment) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          comment.ID,
		"post_id":     comment.PostID,
		"author_id":   comment.AuthorID,
		"content":     comment.Content,
		"is_approved": comment.IsApproved,
		"created_at":  comment.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateComment, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateComment")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating comment")
		return err
	}

	return nil
}

func (r *commentsRepository) GetCommentByID(ctx context.Context, id string, approvedOnly bool) (entity.Comment, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var comment CommentDB

	conds := []string{"cm.id = :id"}
	argsKV := map[string]interface{}{"id": id}
	if approvedOnly {
		conds = append(conds, "cm.is_approved = TRUE")
	}

	query, args, err := sqlx.Named(queryCommentColumns+queryCommentFrom+whereClause(conds), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommentByID named query preparation err")
		return entity.Comment{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&comment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("GetCommentByID no rows found")
			return entity.Comment{}, blogs.ErrCommentNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommentByID execution err")
		return entity.Comment{}, err
	}

	return r.makeComment(comment), nil
}

func (r *commentsRepository) ListComments(ctx context.Context, filter blogs.CommentFilter, approvedOnly bool, limit, offset int) ([]entity.Comment, int, error) {
	conds, argsKV := buildCommentPredicates(filter, approvedOnly)
	ordering := orderBy(commentOrderings, filter.Ordering, "-created_at", "cm.id")
	return r.list(ctx, conds, argsKV, ordering, limit, offset)
}

func (r *commentsRepository) ListCommentsByPost(ctx context.Context, postID string, approvedOnly bool, limit, offset int) ([]entity.Comment, int, error) {
	conds := []string{"cm.post_id = :post_id"}
	argsKV := map[string]interface{}{"post_id": postID}
	if approvedOnly {
		conds = append(conds, "cm.is_approved = TRUE")
	}

	// Comments on a post read oldest-first.
	ordering := orderBy(commentOrderings, "created_at", "created_at", "cm.id")
	return r.list(ctx, conds, argsKV, ordering, limit, offset)
}

func (r *commentsRepository) list(ctx context.Context, conds []string, argsKV map[string]interface{}, ordering string, limit, offset int) ([]entity.Comment, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var commentsList []CommentDB
	var total int

	countQuery, countArgs, err := sqlx.Named(queryCountComments+whereClause(conds), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountComments named query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountComments execution err")
		return nil, 0, err
	}

	argsKV["limit"] = limit
	argsKV["offset"] = offset

	listQuery := queryCommentColumns + queryCommentFrom + whereClause(conds) + "\n\t\t" +
		ordering + "\n\t\tLIMIT :limit OFFSET :offset"

	query, args, err := sqlx.Named(listQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListComments named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &commentsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListComments execution err")
		return nil, 0, err
	}

	var comments []entity.Comment
	for _, commentDB := range commentsList {
		comments = append(comments, r.makeComment(commentDB))
	}

	return comments, total, nil
}

// ListCommentsByPostIDs prefetches every comment of the given posts in one
// query, keyed by post id, oldest-first within a post.
func (r *commentsRepository) ListCommentsByPostIDs(ctx context.Context, postIDs []string) (map[string][]entity.Comment, error) {
	requestID := contextPkg.GetRequestID(ctx)

	grouped := make(map[string][]entity.Comment, len(postIDs))
	if len(postIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(
		queryCommentColumns+queryCommentFrom+`
		WHERE cm.post_id IN (?)
		ORDER BY cm.created_at ASC, cm.id ASC`,
		postIDs,
	)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListCommentsByPostIDs query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var commentsList []CommentDB
	if err := r.q.SelectContext(ctx, &commentsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListCommentsByPostIDs execution err")
		return nil, err
	}

	for _, commentDB := range commentsList {
		comment := r.makeComment(commentDB)
		grouped[comment.PostID] = append(grouped[comment.PostID], comment)
	}

	return grouped, nil
}

func (r *commentsRepository) UpdateComment(ctx context.Context, id string, content string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryUpdateComment, map[string]interface{}{
		"id":      id,
		"content": content,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateComment named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateComment execution err")
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
		}).Warn("UpdateComment no rows affected")
		return blogs.ErrCommentNotFound
	}

	return nil
}

func (r *commentsRepository) DeleteComment(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteComment, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteComment named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteComment execution err")
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
		}).Warn("DeleteComment no rows affected")
		return blogs.ErrCommentNotFound
	}

	return nil
}

func (r *commentsRepository) makeComment(comment CommentDB) entity.Comment {
	return entity.Comment{
		ID:         comment.ID.String,
		PostID:     comment.PostID.String,
		AuthorID:   comment.AuthorID.String,
		Content:    comment.Content.String,
		IsApproved: comment.IsApproved,
		CreatedAt:  comment.CreatedAt,
		Author: entity.User{
			ID:        comment.AuthorID.String,
			Username:  comment.AuthorUsername.String,
			FirstName: comment.AuthorFirstName.String,
			LastName:  comment.AuthorLastName.String,
		},
	}
}
