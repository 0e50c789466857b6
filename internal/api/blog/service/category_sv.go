package blogService

import (
	blogs "BlogGolang/internal/api/blog"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"BlogGolang/pkg/pagination"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *categoryDomainImpl) Create(ctx context.Context, req blogs.CreateCategoryRequest) (*blogs.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, err
	}

	category := entity.Category{
		ID:          categoryID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := repo.Categories.CreateCategory(ctx, category); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create category")
		return nil, blogs.ErrCreateCategory
	}

	resp := makeCategoryResponse(category)
	return &resp, nil
}

func (s *categoryDomainImpl) GetByID(ctx context.Context, id string) (*blogs.CategoryResponse, error) {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	category, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := makeCategoryResponse(category)
	return &resp, nil
}

func (s *categoryDomainImpl) List(ctx context.Context, search, ordering string, page, limit int) ([]blogs.CategoryResponse, int, error) {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, 0, err
	}

	categories, count, err := repo.Categories.ListCategories(ctx, search, ordering, limit, pagination.Offset(page, limit))
	if err != nil {
		return nil, 0, err
	}

	responses := make([]blogs.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, makeCategoryResponse(category))
	}

	return responses, count, nil
}

func (s *categoryDomainImpl) Update(ctx context.Context, id string, req blogs.UpdateCategoryRequest) (*blogs.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	category, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}

	if err := repo.Categories.UpdateCategory(ctx, category); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"category_id": id,
			"error":       err.Error(),
		}).Error("Failed to update category")
		return nil, err
	}

	resp := makeCategoryResponse(category)
	return &resp, nil
}

func (s *categoryDomainImpl) Delete(ctx context.Context, id string) error {
	repo, err := s.blogRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Categories.DeleteCategory(ctx, id)
}
