package blogHandler

import (
	blogService "BlogGolang/internal/api/blog/service"
	"BlogGolang/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BlogHandler struct {
	log         *logrus.Logger
	blogService blogService.BlogService
	validator   *validator.Validate
	middleware  middleware.Middleware
}

func New(
	log *logrus.Logger,
	bs blogService.BlogService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *BlogHandler {
	return &BlogHandler{
		log:         log,
		blogService: bs,
		validator:   validate,
		middleware:  middleware,
	}
}

func (h *BlogHandler) Start(srv fiber.Router) {
	categories := srv.Group("/categories")
	categories.Get("", h.HandleListCategories)
	categories.Post("", h.middleware.NewTokenMiddleware, h.HandleCreateCategory)
	categories.Get("/:id", h.HandleGetCategory)
	categories.Put("/:id", h.middleware.NewTokenMiddleware, h.HandleUpdateCategory)
	categories.Patch("/:id", h.middleware.NewTokenMiddleware, h.HandleUpdateCategory)
	categories.Delete("/:id", h.middleware.NewTokenMiddleware, h.HandleDeleteCategory)

	// Literal segments before the :id wildcard so my_posts and popular do not
	// get captured as post IDs.
	posts := srv.Group("/posts")
	posts.Get("", h.middleware.NewOptionalTokenMiddleware, h.HandleListPosts)
	posts.Post("", h.middleware.NewTokenMiddleware, h.HandleCreatePost)
	posts.Get("/my_posts", h.middleware.NewTokenMiddleware, h.HandleMyPosts)
	posts.Get("/popular", h.HandlePopularPosts)
	posts.Get("/:id", h.middleware.NewOptionalTokenMiddleware, h.HandleGetPost)
	posts.Put("/:id", h.middleware.NewTokenMiddleware, h.HandleUpdatePost)
	posts.Patch("/:id", h.middleware.NewTokenMiddleware, h.HandleUpdatePost)
	posts.Delete("/:id", h.middleware.NewTokenMiddleware, h.HandleDeletePost)
	posts.Post("/:id/add_comment", h.middleware.NewTokenMiddleware, h.HandleAddComment)
	posts.Get("/:id/comments", h.middleware.NewOptionalTokenMiddleware, h.HandlePostComments)

	comments := srv.Group("/comments")
	comments.Get("", h.HandleListComments)
	comments.Post("", h.middleware.NewTokenMiddleware, h.HandleCreateComment)
	comments.Get("/:id", h.HandleGetComment)
	comments.Put("/:id", h.middleware.NewTokenMiddleware, h.HandleUpdateComment)
	comments.Patch("/:id", h.middleware.NewTokenMiddleware, h.HandleUpdateComment)
	comments.Delete("/:id", h.middleware.NewTokenMiddleware, h.HandleDeleteComment)
}
