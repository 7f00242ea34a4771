package service

import (
	"errors"
	"fmt"

	"github.com/corpsite/internal/db"
	"gorm.io/gorm"
)

// ErrAboutNotFound 关于我们段落不存在。
var ErrAboutNotFound = errors.New("about section not found")

// AboutInput 描述创建或更新关于我们段落时可设置的字段，nil 表示保持原值。
type AboutInput struct {
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	Content   *string `json:"content"`
	ImageURL  *string `json:"imageUrl" binding:"omitempty,max=500"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}

// AboutService provides access to the about page sections.
type AboutService struct {
	db *gorm.DB
}

// NewAboutService returns a new AboutService instance.
func NewAboutService(gdb *gorm.DB) *AboutService {
	return &AboutService{db: gdb}
}

// List returns sections ordered by sort order.
func (s *AboutService) List(filter ListFilter) (ListResult[db.About], error) {
	query := applyCommonFilters(s.db.Model(&db.About{}), filter, []string{"title", "subtitle", "content"}, false)
	result, err := paginate[db.About](query, filter, "sort_order asc", "created_at desc")
	if err != nil {
		return result, fmt.Errorf("list about sections: %w", err)
	}
	return result, nil
}

// Get fetches a section by id.
func (s *AboutService) Get(id string) (*db.About, error) {
	return findByID[db.About](s.db, id, ErrAboutNotFound)
}

// Create inserts a new section, appended to the end when no sort order is given.
func (s *AboutService) Create(input AboutInput) (*db.About, error) {
	if trimPtr(input.Title) == "" {
		return nil, invalid("title is required")
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		next, err := nextSortOrder[db.About](s.db)
		if err != nil {
			return nil, err
		}
		sortOrder = next
	}

	item := db.About{
		Title:     trimPtr(input.Title),
		Subtitle:  trimPtr(input.Subtitle),
		Content:   trimPtr(input.Content),
		ImageURL:  trimPtr(input.ImageURL),
		SortOrder: sortOrder,
		IsActive:  boolOr(input.IsActive, true),
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create about section: %w", err)
	}
	return &item, nil
}

// Update modifies the fields present in input.
func (s *AboutService) Update(id string, input AboutInput) (*db.About, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil && trimPtr(input.Title) == "" {
		return nil, invalid("title cannot be empty")
	}

	setString(&item.Title, input.Title)
	setString(&item.Subtitle, input.Subtitle)
	setString(&item.Content, input.Content)
	setString(&item.ImageURL, input.ImageURL)
	setInt(&item.SortOrder, input.SortOrder)
	setBool(&item.IsActive, input.IsActive)

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update about section: %w", err)
	}
	return item, nil
}

// Delete deactivates the section, or removes it when permanent is set.
func (s *AboutService) Delete(id string, permanent bool) error {
	return removeByID[db.About](s.db, id, permanent, ErrAboutNotFound)
}
