package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corpsite/internal/db"
	"gorm.io/gorm"
)

// ErrNewsNotFound 新闻不存在。
var ErrNewsNotFound = errors.New("news not found")

// NewsInput 描述新闻的可编辑字段。
type NewsInput struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Summary     *string    `json:"summary" binding:"omitempty,max=500"`
	Content     *string    `json:"content"`
	CoverURL    *string    `json:"coverUrl"`
	Category    *string    `json:"category"`
	Author      *string    `json:"author"`
	PublishedAt *time.Time `json:"publishedAt"`
	IsActive    *bool      `json:"isActive"`
	IsFeatured  *bool      `json:"isFeatured"`
}

// NewsService wraps news related operations.
type NewsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewNewsService creates a NewsService instance.
func NewNewsService(gdb *gorm.DB) *NewsService {
	return &NewsService{db: gdb, now: time.Now}
}

// List returns news, newest first.
func (s *NewsService) List(filter ListFilter) (ListResult[db.News], error) {
	query := applyCommonFilters(s.db.Model(&db.News{}), filter, []string{"title", "summary", "content"}, true)
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	result, err := paginate[db.News](query, filter, "published_at desc", "created_at desc")
	if err != nil {
		return result, fmt.Errorf("list news: %w", err)
	}
	return result, nil
}

// Get fetches a news item by id.
func (s *NewsService) Get(id string) (*db.News, error) {
	return findByID[db.News](s.db, id, ErrNewsNotFound)
}

// View 返回启用中的新闻并累加浏览次数，停用的新闻视为不存在。
func (s *NewsService) View(id string) (*db.News, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, ErrNewsNotFound
	}

	if err := s.db.Model(&db.News{}).
		Where("id = ?", item.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		return nil, fmt.Errorf("increase news views: %w", err)
	}
	item.ViewCount++
	return item, nil
}

// Create inserts a news item; publishedAt defaults to now.
func (s *NewsService) Create(input NewsInput) (*db.News, error) {
	if trimPtr(input.Title) == "" {
		return nil, invalid("title is required")
	}

	publishedAt := s.now()
	if input.PublishedAt != nil && !input.PublishedAt.IsZero() {
		publishedAt = *input.PublishedAt
	}

	item := db.News{
		Title:       trimPtr(input.Title),
		Summary:     trimPtr(input.Summary),
		Content:     trimPtr(input.Content),
		CoverURL:    trimPtr(input.CoverURL),
		Category:    trimPtr(input.Category),
		Author:      trimPtr(input.Author),
		PublishedAt: publishedAt,
		IsActive:    boolOr(input.IsActive, true),
		IsFeatured:  boolOr(input.IsFeatured, false),
	}
	if item.Summary == "" {
		item.Summary = summarizeContent(item.Content)
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return &item, nil
}

// Update modifies the fields present in input.
func (s *NewsService) Update(id string, input NewsInput) (*db.News, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil && trimPtr(input.Title) == "" {
		return nil, invalid("title cannot be empty")
	}

	setString(&item.Title, input.Title)
	setString(&item.Summary, input.Summary)
	setString(&item.Content, input.Content)
	setString(&item.CoverURL, input.CoverURL)
	setString(&item.Category, input.Category)
	setString(&item.Author, input.Author)
	if input.PublishedAt != nil && !input.PublishedAt.IsZero() {
		item.PublishedAt = *input.PublishedAt
	}
	setBool(&item.IsActive, input.IsActive)
	setBool(&item.IsFeatured, input.IsFeatured)

	// view_count 只由 View 累加
	if err := s.db.Omit("view_count").Save(item).Error; err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}
	return item, nil
}

// Delete deactivates the news item, or removes it when permanent is set.
func (s *NewsService) Delete(id string, permanent bool) error {
	return removeByID[db.News](s.db, id, permanent, ErrNewsNotFound)
}
