package service

import (
	"errors"
	"fmt"

	"github.com/corpsite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrTestimonialRating   = errors.New("rating must be between 1 and 5")
)

const (
	minRating     = 1
	maxRating     = 5
	defaultRating = 5
)

// TestimonialInput 描述客户评价的可编辑字段。
type TestimonialInput struct {
	AuthorName  *string `json:"authorName" binding:"omitempty,max=100"`
	AuthorTitle *string `json:"authorTitle"`
	Company     *string `json:"company"`
	Content     *string `json:"content"`
	Rating      *int    `json:"rating" binding:"omitempty,rating"`
	AvatarURL   *string `json:"avatarUrl"`
	SortOrder   *int    `json:"sortOrder"`
	IsActive    *bool   `json:"isActive"`
	IsFeatured  *bool   `json:"isFeatured"`
}

// TestimonialService handles testimonial CRUD.
type TestimonialService struct {
	db *gorm.DB
}

// NewTestimonialService creates a TestimonialService instance.
func NewTestimonialService(gdb *gorm.DB) *TestimonialService {
	return &TestimonialService{db: gdb}
}

// ValidRating 判断评分是否在 1..5 之间。
func ValidRating(rating int) bool {
	return rating >= minRating && rating <= maxRating
}

// List returns testimonials matching the filter.
func (s *TestimonialService) List(filter ListFilter) (ListResult[db.Testimonial], error) {
	query := applyCommonFilters(s.db.Model(&db.Testimonial{}), filter, []string{"author_name", "company", "content"}, true)
	result, err := paginate[db.Testimonial](query, filter, "sort_order asc", "created_at desc")
	if err != nil {
		return result, fmt.Errorf("list testimonials: %w", err)
	}
	return result, nil
}

// Get fetches a testimonial by id.
func (s *TestimonialService) Get(id string) (*db.Testimonial, error) {
	return findByID[db.Testimonial](s.db, id, ErrTestimonialNotFound)
}

// Create inserts a testimonial; rating defaults to 5.
func (s *TestimonialService) Create(input TestimonialInput) (*db.Testimonial, error) {
	if trimPtr(input.AuthorName) == "" {
		return nil, invalid("authorName is required")
	}
	if trimPtr(input.Content) == "" {
		return nil, invalid("content is required")
	}

	rating := defaultRating
	if input.Rating != nil {
		if !ValidRating(*input.Rating) {
			return nil, ErrTestimonialRating
		}
		rating = *input.Rating
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		next, err := nextSortOrder[db.Testimonial](s.db)
		if err != nil {
			return nil, err
		}
		sortOrder = next
	}

	item := db.Testimonial{
		AuthorName:  trimPtr(input.AuthorName),
		AuthorTitle: trimPtr(input.AuthorTitle),
		Company:     trimPtr(input.Company),
		Content:     trimPtr(input.Content),
		Rating:      rating,
		AvatarURL:   trimPtr(input.AvatarURL),
		SortOrder:   sortOrder,
		IsActive:    boolOr(input.IsActive, true),
		IsFeatured:  boolOr(input.IsFeatured, false),
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return &item, nil
}

// Update modifies the fields present in input.
func (s *TestimonialService) Update(id string, input TestimonialInput) (*db.Testimonial, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.AuthorName != nil && trimPtr(input.AuthorName) == "" {
		return nil, invalid("authorName cannot be empty")
	}
	if input.Content != nil && trimPtr(input.Content) == "" {
		return nil, invalid("content cannot be empty")
	}
	if input.Rating != nil {
		if !ValidRating(*input.Rating) {
			return nil, ErrTestimonialRating
		}
		item.Rating = *input.Rating
	}

	setString(&item.AuthorName, input.AuthorName)
	setString(&item.AuthorTitle, input.AuthorTitle)
	setString(&item.Company, input.Company)
	setString(&item.Content, input.Content)
	setString(&item.AvatarURL, input.AvatarURL)
	setInt(&item.SortOrder, input.SortOrder)
	setBool(&item.IsActive, input.IsActive)
	setBool(&item.IsFeatured, input.IsFeatured)

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update testimonial: %w", err)
	}
	return item, nil
}

// Delete deactivates the testimonial, or removes it when permanent is set.
func (s *TestimonialService) Delete(id string, permanent bool) error {
	return removeByID[db.Testimonial](s.db, id, permanent, ErrTestimonialNotFound)
}
