package blogService

import (
	blogs "BlogGolang/internal/api/blog"
	blogRepository "BlogGolang/internal/api/blog/repository"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"BlogGolang/pkg/pagination"
	"BlogGolang/pkg/redis"
	"errors"
	"mime/multipart"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	popularPostsCacheKey = "posts:popular"
	popularPostsCacheTTL = time.Minute
	popularPostsLimit    = 10
)

func (s *postDomainImpl) Create(ctx context.Context, req blogs.CreatePostRequest, caller entity.UserLoginData, imageFile *multipart.FileHeader) (*blogs.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	if req.CategoryID != "" {
		if _, err := repo.Categories.GetCategoryByID(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	imageKey := ""
	if imageFile != nil {
		imageKey, err = s.uploadImage(requestID, imageFile)
		if err != nil {
			return nil, err
		}
	}

	postID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = entity.PostStatusDraft
	}

	now := time.Now()

	post := entity.Post{
		ID:         postID,
		Title:      req.Title,
		Content:    req.Content,
		Image:      imageKey,
		Status:     status,
		AuthorID:   caller.ID,
		CategoryID: req.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := repo.Posts.CreatePost(ctx, post); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create post")
		return nil, blogs.ErrCreatePost
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, blogs.ErrCreatePost
	}

	s.invalidatePopularCache(ctx)

	return s.fetchPost(ctx, postID)
}

func (s *postDomainImpl) GetByID(ctx context.Context, id string, caller entity.UserLoginData) (*blogs.PostResponse, error) {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	post, err := repo.Posts.GetPostByID(ctx, id, !caller.IsStaff)
	if err != nil {
		return nil, err
	}

	comments, err := repo.Comments.ListCommentsByPostIDs(ctx, []string{post.ID})
	if err != nil {
		return nil, err
	}
	post.Comments = comments[post.ID]

	resp := s.makePostResponse(post)
	return &resp, nil
}

func (s *postDomainImpl) List(ctx context.Context, filter blogs.PostFilter, caller entity.UserLoginData, page, limit int) ([]blogs.PostResponse, int, error) {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, 0, err
	}

	posts, count, err := repo.Posts.ListPosts(ctx, filter, !caller.IsStaff, "", limit, pagination.Offset(page, limit))
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachComments(ctx, repo, posts); err != nil {
		return nil, 0, err
	}

	return s.makePostResponses(posts), count, nil
}

func (s *postDomainImpl) MyPosts(ctx context.Context, filter blogs.PostFilter, caller entity.UserLoginData, page, limit int) ([]blogs.PostResponse, int, error) {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, 0, err
	}

	posts, count, err := repo.Posts.ListPosts(ctx, filter, false, caller.ID, limit, pagination.Offset(page, limit))
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachComments(ctx, repo, posts); err != nil {
		return nil, 0, err
	}

	return s.makePostResponses(posts), count, nil
}

// Popular serves the ten published posts with the most comments. The listing is
// expensive to compute and identical for every caller, so it sits behind a
// short-lived cache that mutations invalidate.
func (s *postDomainImpl) Popular(ctx context.Context) ([]blogs.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if cached, err := s.redisServer.GetCache(ctx, popularPostsCacheKey); err == nil {
		var responses []blogs.PostResponse
		if err := json.UnmarshalFromString(cached, &responses); err == nil {
			return responses, nil
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Failed to decode cached popular posts, refetching")
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to read popular posts cache")
	}

	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	posts, err := repo.Posts.PopularPosts(ctx, popularPostsLimit)
	if err != nil {
		return nil, err
	}

	if err := s.attachComments(ctx, repo, posts); err != nil {
		return nil, err
	}

	responses := s.makePostResponses(posts)

	if encoded, err := json.MarshalToString(responses); err == nil {
		if err := s.redisServer.SetCache(ctx, popularPostsCacheKey, encoded, popularPostsCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to cache popular posts")
		}
	}

	return responses, nil
}

func (s *postDomainImpl) Update(ctx context.Context, id string, req blogs.UpdatePostRequest, imageFile *multipart.FileHeader) (*blogs.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	existing, err := repo.Posts.GetPostByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != "" {
		if _, err := repo.Categories.GetCategoryByID(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	imageKey := ""
	if imageFile != nil {
		imageKey, err = s.uploadImage(requestID, imageFile)
		if err != nil {
			return nil, err
		}
	}

	post := entity.Post{
		ID:         id,
		Title:      req.Title,
		Content:    req.Content,
		Image:      imageKey,
		Status:     req.Status,
		CategoryID: req.CategoryID,
		UpdatedAt:  time.Now(),
	}

	if err := repo.Posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	if imageKey != "" && existing.Image != "" {
		if err := s.s3Client.DeleteFile(existing.Image); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"post_id":    id,
				"error":      err.Error(),
			}).Warn("Failed to delete replaced post image")
		}
	}

	s.invalidatePopularCache(ctx)

	return s.fetchPost(ctx, id)
}

func (s *postDomainImpl) Delete(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return err
	}

	post, err := repo.Posts.GetPostByID(ctx, id, false)
	if err != nil {
		return err
	}

	if err := repo.Posts.DeletePost(ctx, id); err != nil {
		return err
	}

	if post.Image != "" {
		if err := s.s3Client.DeleteFile(post.Image); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"post_id":    id,
				"error":      err.Error(),
			}).Warn("Failed to delete post image")
		}
	}

	s.invalidatePopularCache(ctx)

	return nil
}

func (s *postDomainImpl) AddComment(ctx context.Context, postID string, caller entity.UserLoginData, req blogs.AddCommentRequest) (*blogs.CommentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.Content == "" {
		return nil, blogs.ErrCommentContentRequired
	}

	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	if _, err := repo.Posts.GetPostByID(ctx, postID, !caller.IsStaff); err != nil {
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
		PostID:     postID,
		AuthorID:   caller.ID,
		Content:    req.Content,
		IsApproved: true,
		CreatedAt:  time.Now(),
	}

	if err := repo.Comments.CreateComment(ctx, comment); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"post_id":    postID,
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

func (s *postDomainImpl) CommentsOf(ctx context.Context, postID string, caller entity.UserLoginData, page, limit int) ([]blogs.CommentResponse, int, error) {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, 0, err
	}

	// Same visibility rule as the detail endpoint: drafts 404 for non-staff.
	if _, err := repo.Posts.GetPostByID(ctx, postID, !caller.IsStaff); err != nil {
		return nil, 0, err
	}

	comments, count, err := repo.Comments.ListCommentsByPost(ctx, postID, true, limit, pagination.Offset(page, limit))
	if err != nil {
		return nil, 0, err
	}

	return makeCommentResponses(comments), count, nil
}

func (s *postDomainImpl) uploadImage(requestID string, imageFile *multipart.FileHeader) (string, error) {
	if err := s.utils.ValidateImageFile(imageFile); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Rejected post image upload")
		return "", blogs.ErrInvalidFileType
	}

	key, err := s.s3Client.UploadFile(imageFile, "posts")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload post image")
		return "", blogs.ErrFailedToUpload
	}

	return key, nil
}

// attachComments loads the comments of a page of posts in one query instead of
// one per row.
func (s *postDomainImpl) attachComments(ctx context.Context, repo blogRepository.Client, posts []entity.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	byPost, err := repo.Comments.ListCommentsByPostIDs(ctx, postIDs)
	if err != nil {
		return err
	}

	for i := range posts {
		posts[i].Comments = byPost[posts[i].ID]
	}

	return nil
}

func (s *postDomainImpl) fetchPost(ctx context.Context, id string) (*blogs.PostResponse, error) {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	post, err := repo.Posts.GetPostByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	comments, err := repo.Comments.ListCommentsByPostIDs(ctx, []string{post.ID})
	if err != nil {
		return nil, err
	}
	post.Comments = comments[post.ID]

	resp := s.makePostResponse(post)
	return &resp, nil
}

func (s *postDomainImpl) invalidatePopularCache(ctx context.Context) {
	if err := s.redisServer.DeleteCache(ctx, popularPostsCacheKey); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to invalidate popular posts cache")
	}
}
