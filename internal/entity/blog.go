package entity

import "time"

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

type Category struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// Post carries the row plus the author and category it was joined with.
// Category is nil when the post has no category. CommentsCount only counts
// approved comments.
type Post struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Content       string    `db:"content"`
	Image         string    `db:"image"`
	Status        string    `db:"status"`
	AuthorID      string    `db:"author_id"`
	CategoryID    string    `db:"category_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	Author        User
	Category      *Category
	Comments      []Comment
	CommentsCount int
}

type Comment struct {
	ID         string    `db:"id"`
	PostID     string    `db:"post_id"`
	AuthorID   string    `db:"author_id"`
	Content    string    `db:"content"`
	IsApproved bool      `db:"is_approved"`
	CreatedAt  time.Time `db:"created_at"`
	Author     User
}
