package blogService

import (
	blogs "BlogGolang/internal/api/blog"
	blogRepository "BlogGolang/internal/api/blog/repository"
	"BlogGolang/internal/entity"
	"BlogGolang/pkg/redis"
	"BlogGolang/pkg/s3"
	"BlogGolang/pkg/utils"
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"
)

type BlogService interface {
	Categories() CategoryDomain
	Posts() PostDomain
	Comments() CommentDomain
}

type CategoryDomain interface {
	Create(ctx context.Context, req blogs.CreateCategoryRequest) (*blogs.CategoryResponse, error)
	GetByID(ctx context.Context, id string) (*blogs.CategoryResponse, error)
	List(ctx context.Context, search, ordering string, page, limit int) ([]blogs.CategoryResponse, int, error)
	Update(ctx context.Context, id string, req blogs.UpdateCategoryRequest) (*blogs.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type PostDomain interface {
	Create(ctx context.Context, req blogs.CreatePostRequest, caller entity.UserLoginData, imageFile *multipart.FileHeader) (*blogs.PostResponse, error)
	GetByID(ctx context.Context, id string, caller entity.UserLoginData) (*blogs.PostResponse, error)
	List(ctx context.Context, filter blogs.PostFilter, caller entity.UserLoginData, page, limit int) ([]blogs.PostResponse, int, error)
	MyPosts(ctx context.Context, filter blogs.PostFilter, caller entity.UserLoginData, page, limit int) ([]blogs.PostResponse, int, error)
	Popular(ctx context.Context) ([]blogs.PostResponse, error)
	Update(ctx context.Context, id string, req blogs.UpdatePostRequest, imageFile *multipart.FileHeader) (*blogs.PostResponse, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, postID string, caller entity.UserLoginData, req blogs.AddCommentRequest) (*blogs.CommentResponse, error)
	CommentsOf(ctx context.Context, postID string, caller entity.UserLoginData, page, limit int) ([]blogs.CommentResponse, int, error)
}

type CommentDomain interface {
	Create(ctx context.Context, req blogs.CreateCommentRequest, caller entity.UserLoginData) (*blogs.CommentResponse, error)
	GetByID(ctx context.Context, id string) (*blogs.CommentResponse, error)
	List(ctx context.Context, filter blogs.CommentFilter, page, limit int) ([]blogs.CommentResponse, int, error)
	Update(ctx context.Context, id string, req blogs.UpdateCommentRequest) (*blogs.CommentResponse, error)
	Delete(ctx context.Context, id string) error
}

type blogService struct {
	categoryDomain CategoryDomain
	postDomain     PostDomain
	commentDomain  CommentDomain
}

func (s *blogService) Categories() CategoryDomain {
	return s.categoryDomain
}

func (s *blogService) Posts() PostDomain {
	return s.postDomain
}

func (s *blogService) Comments() CommentDomain {
	return s.commentDomain
}

type categoryDomainImpl struct {
	log      *logrus.Logger
	blogRepo blogRepository.Repository
	utils    utils.IUtils
}

type postDomainImpl struct {
	log         *logrus.Logger
	blogRepo    blogRepository.Repository
	s3Client    s3.ItfS3
	redisServer redis.IRedis
	utils       utils.IUtils
}

type commentDomainImpl struct {
	log         *logrus.Logger
	blogRepo    blogRepository.Repository
	redisServer redis.IRedis
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	blogRepo blogRepository.Repository,
	s3Client s3.ItfS3,
	redisServer redis.IRedis,
	utils utils.IUtils,
) BlogService {
	return &blogService{
		categoryDomain: &categoryDomainImpl{log: log, blogRepo: blogRepo, utils: utils},
		postDomain:     &postDomainImpl{log: log, blogRepo: blogRepo, s3Client: s3Client, redisServer: redisServer, utils: utils},
		commentDomain:  &commentDomainImpl{log: log, blogRepo: blogRepo, redisServer: redisServer, utils: utils},
	}
}
