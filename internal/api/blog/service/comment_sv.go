package blogService

import (
	blogs "BlogGolang/internal/api/blog"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"BlogGolang/pkg/pagination"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *commentDomainImpl) Create(ctx context.Context, req blogs.CreateCommentRequest, caller entity.UserLoginData) (*blogs.CommentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.Content == "" {
		return nil, blogs.ErrCommentContentRequired
	}

	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	if _, err := repo.Posts.GetPostByID(ctx, req.PostID, !caller.IsStaff); err != nil {
		return nil, err
	}

	commentID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, err
	}

	comment := entity.Comment{
		ID:         commentID,
		PostID:     req.PostID,
		AuthorID:   caller.ID,
		Content:    req.Content,
		IsApproved: true,
		CreatedAt:  time.Now(),
	}

	if err := repo.Comments.CreateComment(ctx, comment); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"post_id":    req.PostID,
			"error":      err.Error(),
		}).Error("Failed to create comment")
		return nil, blogs.ErrCreateComment
	}

	s.invalidatePopularCache(ctx)

	created, err := repo.Comments.GetCommentByID(ctx, commentID, false)
	if err != nil {
		return nil, err
	}

	resp := makeCommentResponse(created)
	return &resp, nil
}

func (s *commentDomainImpl) GetByID(ctx context.Context, id string) (*blogs.CommentResponse, error) {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	comment, err := repo.Comments.GetCommentByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	resp := makeCommentResponse(comment)
	return &resp, nil
}

// List always scopes to approved comments, so an explicit is_approved=false
// filter intersects down to an empty page rather than exposing the moderation
// queue.
func (s *commentDomainImpl) List(ctx context.Context, filter blogs.CommentFilter, page, limit int) ([]blogs.CommentResponse, int, error) {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, 0, err
	}

	comments, count, err := repo.Comments.ListComments(ctx, filter, true, limit, pagination.Offset(page, limit))
	if err != nil {
		return nil, 0, err
	}

	return makeCommentResponses(comments), count, nil
}

func (s *commentDomainImpl) Update(ctx context.Context, id string, req blogs.UpdateCommentRequest) (*blogs.CommentResponse, error) {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	if req.Content == "" {
		return nil, blogs.ErrCommentContentRequired
	}

	if err := repo.Comments.UpdateComment(ctx, id, req.Content); err != nil {
		return nil, err
	}

	s.invalidatePopularCache(ctx)

	comment, err := repo.Comments.GetCommentByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	resp := makeCommentResponse(comment)
	return &resp, nil
}

func (s *commentDomainImpl) Delete(ctx context.Context, id string) error {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return err
	}

	if err := repo.Comments.DeleteComment(ctx, id); err != nil {
		return err
	}

	s.invalidatePopularCache(ctx)
	return nil
}

// Comment counts feed the popular listing, so any write through this resource
// drops the cached page.
func (s *commentDomainImpl) invalidatePopularCache(ctx context.Context) {
	if err := s.redisServer.DeleteCache(ctx, popularPostsCacheKey); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to invalidate popular posts cache")
	}
}
