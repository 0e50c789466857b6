package blogHandler

import (
	blogs "BlogGolang/internal/api/blog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probe runs fn against a request for the given target URL so the query
// parsers can be exercised with a real fiber context.
func probe(t *testing.T, target string, fn func(ctx *fiber.Ctx)) {
	t.Helper()

	app := fiber.New()
	app.Get("/probe", func(ctx *fiber.Ctx) error {
		fn(ctx)
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestParsePage(t *testing.T) {
	probe(t, "/probe", func(ctx *fiber.Ctx) {
		page, limit := parsePage(ctx)
		assert.Equal(t, 1, page)
		assert.Equal(t, defaultLimit, limit)
	})

	probe(t, "/probe?page=3&limit=25", func(ctx *fiber.Ctx) {
		page, limit := parsePage(ctx)
		assert.Equal(t, 3, page)
		assert.Equal(t, 25, limit)
	})

	probe(t, "/probe?page=0&limit=-5", func(ctx *fiber.Ctx) {
		page, limit := parsePage(ctx)
		assert.Equal(t, 1, page)
		assert.Equal(t, defaultLimit, limit)
	})

	probe(t, "/probe?limit=5000", func(ctx *fiber.Ctx) {
		_, limit := parsePage(ctx)
		assert.Equal(t, maxLimit, limit)
	})

	probe(t, "/probe?page=abc&limit=xyz", func(ctx *fiber.Ctx) {
		page, limit := parsePage(ctx)
		assert.Equal(t, 1, page)
		assert.Equal(t, defaultLimit, limit)
	})
}

func TestParsePostFilter(t *testing.T) {
	probe(t, "/probe?title=go&status=published&author_username=alice&search=fiber&ordering=-title", func(ctx *fiber.Ctx) {
		filter := parsePostFilter(ctx)
		assert.Equal(t, "go", filter.Title)
		assert.Equal(t, "published", filter.Status)
		assert.Equal(t, "alice", filter.AuthorUsername)
		assert.Equal(t, "fiber", filter.Search)
		assert.Equal(t, "-title", filter.Ordering)
		assert.Nil(t, filter.CreatedAfter)
		assert.Nil(t, filter.CreatedBefore)
	})
}

func TestParsePostFilterDates(t *testing.T) {
	probe(t, "/probe?created_after=2026-01-01&created_before=2026-01-31", func(ctx *fiber.Ctx) {
		filter := parsePostFilter(ctx)

		require.NotNil(t, filter.CreatedAfter)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *filter.CreatedAfter)

		// Inclusive day: the bound is pushed to the following midnight.
		require.NotNil(t, filter.CreatedBefore)
		assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *filter.CreatedBefore)
	})

	probe(t, "/probe?created_after=not-a-date", func(ctx *fiber.Ctx) {
		filter := parsePostFilter(ctx)
		assert.Nil(t, filter.CreatedAfter)
	})
}

func TestParseCommentFilter(t *testing.T) {
	probe(t, "/probe?content=nice&post_id=post-1&is_approved=true", func(ctx *fiber.Ctx) {
		filter := parseCommentFilter(ctx)
		assert.Equal(t, "nice", filter.Content)
		assert.Equal(t, "post-1", filter.PostID)
		require.NotNil(t, filter.IsApproved)
		assert.True(t, *filter.IsApproved)
	})

	probe(t, "/probe?is_approved=banana", func(ctx *fiber.Ctx) {
		filter := parseCommentFilter(ctx)
		assert.Nil(t, filter.IsApproved)
	})

	probe(t, "/probe", func(ctx *fiber.Ctx) {
		filter := parseCommentFilter(ctx)
		assert.Equal(t, blogs.CommentFilter{}, filter)
	})
}
