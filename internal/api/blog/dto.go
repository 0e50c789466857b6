package blogs

import "time"

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"omitempty,min=1,max=100"`
	Description string `json:"description" validate:"omitempty"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CreatePostRequest struct {
	Title      string `json:"title" form:"title" validate:"required,min=3,max=200"`
	Content    string `json:"content" form:"content" validate:"required"`
	Status     string `json:"status" form:"status" validate:"omitempty,oneof=draft published"`
	CategoryID string `json:"category_id" form:"category_id" validate:"omitempty"`
}

type UpdatePostRequest struct {
	Title      string `json:"title" form:"title" validate:"omitempty,min=3,max=200"`
	Content    string `json:"content" form:"content" validate:"omitempty"`
	Status     string `json:"status" form:"status" validate:"omitempty,oneof=draft published"`
	CategoryID string `json:"category_id" form:"category_id" validate:"omitempty"`
}

type PostResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	Image         string            `json:"image,omitempty"`
	ImageURL      *string           `json:"image_url"`
	Status        string            `json:"status"`
	Author        UserResponse      `json:"author"`
	Category      *CategoryResponse `json:"category"`
	Comments      []CommentResponse `json:"comments"`
	CommentsCount int               `json:"comments_count"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type CreateCommentRequest struct {
	PostID  string `json:"post_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type CommentResponse struct {
	ID         string       `json:"id"`
	Content    string       `json:"content"`
	Author     UserResponse `json:"author"`
	CreatedAt  time.Time    `json:"created_at"`
	IsApproved bool         `json:"is_approved"`
}

// PostFilter is the allow-listed query parameter set of the post list
// endpoints. Zero values mean the predicate is omitted.
type PostFilter struct {
	Title          string
	Content        string
	Status         string
	CategoryID     string
	AuthorID       string
	AuthorUsername string
	Search         string
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time // exclusive upper bound, already advanced past the requested day
	Ordering       string
}

type CommentFilter struct {
	Content        string
	AuthorUsername string
	PostID         string
	Search         string
	IsApproved     *bool
	Ordering       string
}
