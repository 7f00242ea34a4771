package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corpsite/internal/db"
	"gorm.io/gorm"
)

// ErrCaseNotFound 工程案例不存在。
var ErrCaseNotFound = errors.New("engineering case not found")

// CaseInput 描述工程案例的可编辑字段。ProductID 传空字符串表示解除关联。
type CaseInput struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Client      *string    `json:"client"`
	Location    *string    `json:"location"`
	ProductID   *string    `json:"productId"`
	Summary     *string    `json:"summary" binding:"omitempty,max=500"`
	Content     *string    `json:"content"`
	CoverURL    *string    `json:"coverUrl"`
	CompletedAt *time.Time `json:"completedAt"`
	SortOrder   *int       `json:"sortOrder"`
	IsActive    *bool      `json:"isActive"`
	IsFeatured  *bool      `json:"isFeatured"`
}

// CaseService handles engineering case CRUD.
type CaseService struct {
	db *gorm.DB
}

// NewCaseService creates a CaseService instance.
func NewCaseService(gdb *gorm.DB) *CaseService {
	return &CaseService{db: gdb}
}

// List returns cases with their product preloaded. Public lists leave out
// products that are no longer active.
func (s *CaseService) List(filter ListFilter) (ListResult[db.EngineeringCase], error) {
	query := s.db.Model(&db.EngineeringCase{})
	if filter.Public {
		query = query.Preload("Product", activeOnly)
	} else {
		query = query.Preload("Product")
	}
	query = applyCommonFilters(query, filter, []string{"title", "client", "location", "summary"}, true)
	if productID := strings.TrimSpace(filter.ProductID); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	result, err := paginate[db.EngineeringCase](query, filter, "sort_order asc", "created_at desc")
	if err != nil {
		return result, fmt.Errorf("list cases: %w", err)
	}
	return result, nil
}

// Get fetches a case by id together with its product.
func (s *CaseService) Get(id string) (*db.EngineeringCase, error) {
	return findByID[db.EngineeringCase](s.db, id, ErrCaseNotFound, "Product")
}

// Create inserts a new case.
func (s *CaseService) Create(input CaseInput) (*db.EngineeringCase, error) {
	if trimPtr(input.Title) == "" {
		return nil, invalid("title is required")
	}
	productID, err := s.resolveProduct(input.ProductID)
	if err != nil {
		return nil, err
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else if sortOrder, err = nextSortOrder[db.EngineeringCase](s.db); err != nil {
		return nil, err
	}

	item := db.EngineeringCase{
		Title:       trimPtr(input.Title),
		Client:      trimPtr(input.Client),
		Location:    trimPtr(input.Location),
		ProductID:   productID,
		Summary:     trimPtr(input.Summary),
		Content:     trimPtr(input.Content),
		CoverURL:    trimPtr(input.CoverURL),
		CompletedAt: input.CompletedAt,
		SortOrder:   sortOrder,
		IsActive:    boolOr(input.IsActive, true),
		IsFeatured:  boolOr(input.IsFeatured, false),
	}
	if err := s.db.Omit("Product").Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}
	return s.Get(item.ID)
}

// Update modifies the fields present in input.
func (s *CaseService) Update(id string, input CaseInput) (*db.EngineeringCase, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil && trimPtr(input.Title) == "" {
		return nil, invalid("title cannot be empty")
	}
	if input.ProductID != nil {
		productID, err := s.resolveProduct(input.ProductID)
		if err != nil {
			return nil, err
		}
		item.ProductID = productID
	}

	setString(&item.Title, input.Title)
	setString(&item.Client, input.Client)
	setString(&item.Location, input.Location)
	setString(&item.Summary, input.Summary)
	setString(&item.Content, input.Content)
	setString(&item.CoverURL, input.CoverURL)
	if input.CompletedAt != nil {
		item.CompletedAt = input.CompletedAt
	}
	setInt(&item.SortOrder, input.SortOrder)
	setBool(&item.IsActive, input.IsActive)
	setBool(&item.IsFeatured, input.IsFeatured)

	item.Product = nil
	if err := s.db.Omit("Product").Save(item).Error; err != nil {
		return nil, fmt.Errorf("update case: %w", err)
	}
	return s.Get(item.ID)
}

// Delete deactivates the case, or removes it when permanent is set.
func (s *CaseService) Delete(id string, permanent bool) error {
	return removeByID[db.EngineeringCase](s.db, id, permanent, ErrCaseNotFound)
}

// resolveProduct 校验产品存在，空值表示不关联产品。
func (s *CaseService) resolveProduct(value *string) (*string, error) {
	id := trimPtr(value)
	if id == "" {
		return nil, nil
	}
	if _, err := findByID[db.Product](s.db, id, ErrProductNotFound); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, invalid("product %s does not exist", id)
		}
		return nil, err
	}
	return &id, nil
}
