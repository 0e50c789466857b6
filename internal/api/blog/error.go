package blogs

import "BlogGolang/pkg/response"

var (
	ErrCategoryNotFound       = response.NewError(404, "category not found")
	ErrPostNotFound           = response.NewError(404, "post not found")
	ErrCommentNotFound        = response.NewError(404, "comment not found")
	ErrCreateCategory         = response.NewError(500, "failed to create category")
	ErrCreatePost             = response.NewError(500, "failed to create post")
	ErrCreateComment          = response.NewError(500, "failed to create comment")
	ErrCommentContentRequired = response.NewError(400, "comment content is required")
	ErrInvalidFileType        = response.NewError(400, "invalid file type")
	ErrFailedToUpload         = response.NewError(500, "failed to upload file")
)
