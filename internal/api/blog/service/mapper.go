package blogService

import (
	blogs "BlogGolang/internal/api/blog"
	"BlogGolang/internal/entity"

	"github.com/sirupsen/logrus"
)

func makeUserResponse(user entity.User) blogs.UserResponse {
	return blogs.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func makeCategoryResponse(category entity.Category) blogs.CategoryResponse {
	return blogs.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

func makeCommentResponse(comment entity.Comment) blogs.CommentResponse {
	return blogs.CommentResponse{
		ID:         comment.ID,
		Content:    comment.Content,
		Author:     makeUserResponse(comment.Author),
		CreatedAt:  comment.CreatedAt,
		IsApproved: comment.IsApproved,
	}
}

func makeCommentResponses(comments []entity.Comment) []blogs.CommentResponse {
	responses := make([]blogs.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, makeCommentResponse(comment))
	}
	return responses
}

// makePostResponse presigns the stored object key so clients get a fetchable
// URL. A presign failure degrades to a null image_url instead of failing the
// whole request.
func (s *postDomainImpl) makePostResponse(post entity.Post) blogs.PostResponse {
	resp := blogs.PostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		Image:         post.Image,
		Status:        post.Status,
		Author:        makeUserResponse(post.Author),
		Comments:      makeCommentResponses(post.Comments),
		CommentsCount: post.CommentsCount,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}

	if post.Category != nil {
		category := makeCategoryResponse(*post.Category)
		resp.Category = &category
	}

	if post.Image != "" {
		url, err := s.s3Client.PresignUrl(post.Image)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"post_id": post.ID,
				"error":   err.Error(),
			}).Warn("Failed to presign post image")
		} else {
			resp.ImageURL = &url
		}
	}

	return resp
}

func (s *postDomainImpl) makePostResponses(posts []entity.Post) []blogs.PostResponse {
	responses := make([]blogs.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, s.makePostResponse(post))
	}
	return responses
}
