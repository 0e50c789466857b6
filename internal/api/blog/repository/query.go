package blogRepository

import (
	blogs "BlogGolang/internal/api/blog"
	"fmt"
	"strings"
)

const (
	queryCreateCategory = `
		INSERT INTO categories (
			id,
			name,
			description,
			created_at
		) VALUES (
			:id,
			:name,
			:description,
			:created_at
		)
	`

	queryGetCategoryByID = `
		SELECT
			id,
			name,
			description,
			created_at
		FROM categories
		WHERE id = :id
	`

	queryListCategories = `
		SELECT
			id,
			name,
			description,
			created_at
		FROM categories
	`

	queryCountCategories = `
		SELECT COUNT(*)
		FROM categories
	`

	queryUpdateCategory = `
		UPDATE categories
		SET
			name = CASE WHEN :name = '' THEN name ELSE :name END,
			description = CASE WHEN :description = '' THEN description ELSE :description END
		WHERE id = :id
	`

	queryDeleteCategory = `
		DELETE FROM categories
		WHERE id = :id
	`

	queryCreatePost = `
		INSERT INTO posts (
			id,
			title,
			content,
			image,
			status,
			author_id,
			category_id,
			created_at,
			updated_at
		) VALUES (
			:id,
			:title,
			:content,
			:image,
			:status,
			:author_id,
			NULLIF(:category_id, ''),
			:created_at,
			:updated_at
		)
	`

	queryPostColumns = `
		SELECT
			p.id,
			p.title,
			p.content,
			p.image,
			p.status,
			p.author_id,
			p.category_id,
			p.created_at,
			p.updated_at,
			u.username AS author_username,
			u.first_name AS author_first_name,
			u.last_name AS author_last_name,
			c.name AS category_name,
			c.description AS category_description,
			c.created_at AS category_created_at,
			(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id AND cm.is_approved = TRUE) AS comments_count
	`

	queryPostFrom = `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		LEFT JOIN categories c ON c.id = p.category_id
	`

	queryCountPosts = `
		SELECT COUNT(*)
	` + queryPostFrom

	// total_comments deliberately counts unapproved comments too.
	queryPopularPosts = queryPostColumns + `,
			(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS total_comments
	` + queryPostFrom + `
		WHERE p.status = 'published'
		ORDER BY total_comments DESC, p.id ASC
		LIMIT :limit
	`

	queryUpdatePost = `
		UPDATE posts
		SET
			title = CASE WHEN :title = '' THEN title ELSE :title END,
			content = CASE WHEN :content = '' THEN content ELSE :content END,
			image = CASE WHEN :image = '' THEN image ELSE :image END,
			status = CASE WHEN :status = '' THEN status ELSE :status END,
			category_id = CASE WHEN :category_id = '' THEN category_id ELSE :category_id END,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeletePost = `
		DELETE FROM posts
		WHERE id = :id
	`

	queryCreateComment = `
		INSERT INTO comments (
			id,
			post_id,
			author_id,
			content,
			is_approved,
			created_at
		) VALUES (
			:id,
			:post_id,
			:author_id,
			:content,
			:is_approved,
			:created_at
		)
	`

	queryCommentColumns = `
		SELECT
			cm.id,
			cm.post_id,
			cm.author_id,
			cm.content,
			cm.is_approved,
			cm.created_at,
			u.username AS author_username,
			u.first_name AS author_first_name,
			u.last_name AS author_last_name
	`

	queryCommentFrom = `
		FROM comments cm
		JOIN users u ON u.id = cm.author_id
	`

	queryCountComments = `
		SELECT COUNT(*)
	` + queryCommentFrom

	queryUpdateComment = `
		UPDATE comments
		SET content = :content
		WHERE id = :id
	`

	queryDeleteComment = `
		DELETE FROM comments
		WHERE id = :id
	`
)

var postOrderings = map[string]string{
	"created_at": "p.created_at",
	"updated_at": "p.updated_at",
	"title":      "p.title",
}

var categoryOrderings = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

var commentOrderings = map[string]string{
	"created_at": "cm.created_at",
}

// orderBy resolves a requested ordering key against the allow-list, falling
// back to the default. The id tie-break keeps page ordering deterministic.
func orderBy(allowed map[string]string, requested, fallback, idColumn string) string {
	key := requested
	if key == "" {
		key = fallback
	}

	desc := strings.HasPrefix(key, "-")
	column, ok := allowed[strings.TrimPrefix(key, "-")]
	if !ok {
		desc = strings.HasPrefix(fallback, "-")
		column = allowed[strings.TrimPrefix(fallback, "-")]
	}

	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	return fmt.Sprintf("ORDER BY %s %s, %s ASC", column, direction, idColumn)
}

func substring(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// buildPostPredicates translates the allow-listed post filters into WHERE
// conditions. publishedOnly enforces the visibility rule for non-staff
// callers and authorID scopes the listing to one author's posts.
func buildPostPredicates(f blogs.PostFilter, publishedOnly bool, authorID string) ([]string, map[string]interface{}) {
	var conds []string
	args := map[string]interface{}{}

	if publishedOnly {
		conds = append(conds, "p.status = :visible_status")
		args["visible_status"] = "published"
	}
	if authorID != "" {
		conds = append(conds, "p.author_id = :scope_author_id")
		args["scope_author_id"] = authorID
	}
	if f.Title != "" {
		conds = append(conds, "LOWER(p.title) LIKE :title")
		args["title"] = substring(f.Title)
	}
	if f.Content != "" {
		conds = append(conds, "LOWER(p.content) LIKE :content")
		args["content"] = substring(f.Content)
	}
	if f.CreatedAfter != nil {
		conds = append(conds, "p.created_at >= :created_after")
		args["created_after"] = *f.CreatedAfter
	}
	if f.CreatedBefore != nil {
		conds = append(conds, "p.created_at < :created_before")
		args["created_before"] = *f.CreatedBefore
	}
	if f.Status != "" {
		conds = append(conds, "p.status = :status")
		args["status"] = f.Status
	}
	if f.CategoryID != "" {
		conds = append(conds, "p.category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.AuthorID != "" {
		conds = append(conds, "p.author_id = :author_id")
		args["author_id"] = f.AuthorID
	}
	if f.AuthorUsername != "" {
		conds = append(conds, "LOWER(u.username) LIKE :author_username")
		args["author_username"] = substring(f.AuthorUsername)
	}
	if f.Search != "" {
		conds = append(conds, "(LOWER(p.title) LIKE :search OR LOWER(p.content) LIKE :search OR LOWER(u.username) LIKE :search)")
		args["search"] = substring(f.Search)
	}

	return conds, args
}

func buildCommentPredicates(f blogs.CommentFilter, approvedOnly bool) ([]string, map[string]interface{}) {
	var conds []string
	args := map[string]interface{}{}

	if approvedOnly {
		conds = append(conds, "cm.is_approved = TRUE")
	}
	if f.Content != "" {
		conds = append(conds, "LOWER(cm.content) LIKE :content")
		args["content"] = substring(f.Content)
	}
	if f.AuthorUsername != "" {
		conds = append(conds, "LOWER(u.username) LIKE :author_username")
		args["author_username"] = substring(f.AuthorUsername)
	}
	if f.PostID != "" {
		conds = append(conds, "cm.post_id = :post_id")
		args["post_id"] = f.PostID
	}
	if f.IsApproved != nil {
		conds = append(conds, "cm.is_approved = :is_approved")
		args["is_approved"] = *f.IsApproved
	}
	if f.Search != "" {
		conds = append(conds, "(LOWER(cm.content) LIKE :search OR LOWER(u.username) LIKE :search)")
		args["search"] = substring(f.Search)
	}

	return conds, args
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
