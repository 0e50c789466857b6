package blogHandler

import (
	blogs "BlogGolang/internal/api/blog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit = 10
	maxLimit     = 100

	dateLayout = "2006-01-02"
)

func parsePage(ctx *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(ctx.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(ctx.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}

func parsePostFilter(ctx *fiber.Ctx) blogs.PostFilter {
	filter := blogs.PostFilter{
		Title:          ctx.Query("title"),
		Content:        ctx.Query("content"),
		Status:         ctx.Query("status"),
		CategoryID:     ctx.Query("category_id"),
		AuthorID:       ctx.Query("author_id"),
		AuthorUsername: ctx.Query("author_username"),
		Search:         ctx.Query("search"),
		Ordering:       ctx.Query("ordering"),
	}

	if after := ctx.Query("created_after"); after != "" {
		if t, err := time.Parse(dateLayout, after); err == nil {
			filter.CreatedAfter = &t
		}
	}

	// The date is inclusive, so the stored bound is the following midnight and
	// compared exclusively.
	if before := ctx.Query("created_before"); before != "" {
		if t, err := time.Parse(dateLayout, before); err == nil {
			bound := t.AddDate(0, 0, 1)
			filter.CreatedBefore = &bound
		}
	}

	return filter
}

func parseCommentFilter(ctx *fiber.Ctx) blogs.CommentFilter {
	filter := blogs.CommentFilter{
		Content:        ctx.Query("content"),
		AuthorUsername: ctx.Query("author_username"),
		PostID:         ctx.Query("post_id"),
		Search:         ctx.Query("search"),
		Ordering:       ctx.Query("ordering"),
	}

	if approved := ctx.Query("is_approved"); approved != "" {
		if b, err := strconv.ParseBool(approved); err == nil {
			filter.IsApproved = &b
		}
	}

	return filter
}

func requestURL(ctx *fiber.Ctx) string {
	return ctx.BaseURL() + ctx.OriginalURL()
}
