package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corpsite/internal/db"
	"gorm.io/gorm"
)

// ErrHomeBlockNotFound 首页区块不存在。
var ErrHomeBlockNotFound = errors.New("home block not found")

const (
	homeFeaturedLimit = 6
	homeNewsLimit     = 3
)

// HomeInput 描述首页区块的可编辑字段。
type HomeInput struct {
	Section     *string `json:"section"`
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	LinkURL     *string `json:"linkUrl"`
	LinkText    *string `json:"linkText"`
	SortOrder   *int    `json:"sortOrder"`
	IsActive    *bool   `json:"isActive"`
}

// HomeOverview 聚合前台首页需要的全部数据。
type HomeOverview struct {
	Sections         map[string][]db.Home `json:"sections"`
	FeaturedProducts []db.Product         `json:"featuredProducts"`
	FeaturedCases    []db.EngineeringCase `json:"featuredCases"`
	LatestNews       []db.News            `json:"latestNews"`
	Testimonials     []db.Testimonial     `json:"testimonials"`
}

// HomeService 管理首页区块并生成首页聚合数据。
type HomeService struct {
	db *gorm.DB
}

// NewHomeService creates a HomeService instance.
func NewHomeService(gdb *gorm.DB) *HomeService {
	return &HomeService{db: gdb}
}

// List returns home blocks; Category filters by section.
func (s *HomeService) List(filter ListFilter) (ListResult[db.Home], error) {
	query := applyCommonFilters(s.db.Model(&db.Home{}), filter, []string{"title", "subtitle", "description"}, false)
	if section := strings.ToLower(strings.TrimSpace(filter.Category)); section != "" {
		query = query.Where("section = ?", section)
	}
	result, err := paginate[db.Home](query, filter, "sort_order asc", "created_at desc")
	if err != nil {
		return result, fmt.Errorf("list home blocks: %w", err)
	}
	return result, nil
}

// Get fetches a block by id.
func (s *HomeService) Get(id string) (*db.Home, error) {
	return findByID[db.Home](s.db, id, ErrHomeBlockNotFound)
}

// Create inserts a block; section defaults to banner.
func (s *HomeService) Create(input HomeInput) (*db.Home, error) {
	if trimPtr(input.Title) == "" {
		return nil, invalid("title is required")
	}
	section, err := normalizeHomeSection(input.Section)
	if err != nil {
		return nil, err
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else if sortOrder, err = nextSortOrder[db.Home](s.db); err != nil {
		return nil, err
	}

	item := db.Home{
		Section:     section,
		Title:       trimPtr(input.Title),
		Subtitle:    trimPtr(input.Subtitle),
		Description: trimPtr(input.Description),
		ImageURL:    trimPtr(input.ImageURL),
		LinkURL:     trimPtr(input.LinkURL),
		LinkText:    trimPtr(input.LinkText),
		SortOrder:   sortOrder,
		IsActive:    boolOr(input.IsActive, true),
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create home block: %w", err)
	}
	return &item, nil
}

// Update modifies the fields present in input.
func (s *HomeService) Update(id string, input HomeInput) (*db.Home, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil && trimPtr(input.Title) == "" {
		return nil, invalid("title cannot be empty")
	}
	if input.Section != nil {
		section, err := normalizeHomeSection(input.Section)
		if err != nil {
			return nil, err
		}
		item.Section = section
	}

	setString(&item.Title, input.Title)
	setString(&item.Subtitle, input.Subtitle)
	setString(&item.Description, input.Description)
	setString(&item.ImageURL, input.ImageURL)
	setString(&item.LinkURL, input.LinkURL)
	setString(&item.LinkText, input.LinkText)
	setInt(&item.SortOrder, input.SortOrder)
	setBool(&item.IsActive, input.IsActive)

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update home block: %w", err)
	}
	return item, nil
}

// Delete deactivates the block, or removes it when permanent is set.
func (s *HomeService) Delete(id string, permanent bool) error {
	return removeByID[db.Home](s.db, id, permanent, ErrHomeBlockNotFound)
}

// Overview 返回首页聚合：按区块分组的启用区块、推荐产品/案例、最新新闻与推荐评价。
func (s *HomeService) Overview() (HomeOverview, error) {
	overview := HomeOverview{
		Sections:         map[string][]db.Home{},
		FeaturedProducts: []db.Product{},
		FeaturedCases:    []db.EngineeringCase{},
		LatestNews:       []db.News{},
		Testimonials:     []db.Testimonial{},
	}

	var blocks []db.Home
	if err := s.db.Where("is_active = ?", true).
		Order("sort_order asc").Order("created_at desc").
		Find(&blocks).Error; err != nil {
		return overview, fmt.Errorf("load home blocks: %w", err)
	}
	for _, section := range db.HomeSections {
		overview.Sections[section] = []db.Home{}
	}
	for _, block := range blocks {
		overview.Sections[block.Section] = append(overview.Sections[block.Section], block)
	}

	if err := s.db.Where("is_active = ? AND is_featured = ?", true, true).
		Order("sort_order asc").Order("created_at desc").
		Limit(homeFeaturedLimit).Find(&overview.FeaturedProducts).Error; err != nil {
		return overview, fmt.Errorf("load featured products: %w", err)
	}

	if err := s.db.Preload("Product", activeOnly).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("sort_order asc").Order("created_at desc").
		Limit(homeFeaturedLimit).Find(&overview.FeaturedCases).Error; err != nil {
		return overview, fmt.Errorf("load featured cases: %w", err)
	}

	if err := s.db.Where("is_active = ?", true).
		Order("published_at desc").Order("created_at desc").
		Limit(homeNewsLimit).Find(&overview.LatestNews).Error; err != nil {
		return overview, fmt.Errorf("load latest news: %w", err)
	}

	if err := s.db.Where("is_active = ? AND is_featured = ?", true, true).
		Order("sort_order asc").Order("created_at desc").
		Limit(homeFeaturedLimit).Find(&overview.Testimonials).Error; err != nil {
		return overview, fmt.Errorf("load testimonials: %w", err)
	}

	return overview, nil
}

func normalizeHomeSection(value *string) (string, error) {
	section := strings.ToLower(trimPtr(value))
	if section == "" {
		return db.HomeSectionBanner, nil
	}
	if !contains(db.HomeSections, section) {
		return "", invalid("unknown section %q", section)
	}
	return section, nil
}
