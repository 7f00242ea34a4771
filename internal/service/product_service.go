package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corpsite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductNameTaken = errors.New("product name already exists")
)

// ProductInput 描述产品的可编辑字段；Gallery/Specs 传入时整体替换。
type ProductInput struct {
	Name        *string            `json:"name" binding:"omitempty,max=200"`
	Model       *string            `json:"model"`
	Category    *string            `json:"category"`
	Summary     *string            `json:"summary" binding:"omitempty,max=500"`
	Description *string            `json:"description"`
	ImageURL    *string            `json:"imageUrl"`
	Gallery     *[]string          `json:"gallery"`
	Specs       *map[string]string `json:"specs"`
	SortOrder   *int               `json:"sortOrder"`
	IsActive    *bool              `json:"isActive"`
	IsFeatured  *bool              `json:"isFeatured"`
}

// ProductService handles product CRUD.
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a ProductService instance.
func NewProductService(gdb *gorm.DB) *ProductService {
	return &ProductService{db: gdb}
}

// List returns products matching the filter.
func (s *ProductService) List(filter ListFilter) (ListResult[db.Product], error) {
	query := applyCommonFilters(s.db.Model(&db.Product{}), filter, []string{"name", "model", "summary"}, true)
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	result, err := paginate[db.Product](query, filter, "sort_order asc", "created_at desc")
	if err != nil {
		return result, fmt.Errorf("list products: %w", err)
	}
	return result, nil
}

// Get fetches a product by id.
func (s *ProductService) Get(id string) (*db.Product, error) {
	return findByID[db.Product](s.db, id, ErrProductNotFound)
}

// Categories returns the distinct categories of active products.
func (s *ProductService) Categories() ([]string, error) {
	categories := []string{}
	if err := s.db.Model(&db.Product{}).
		Where("is_active = ? AND category <> ''", true).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("list product categories: %w", err)
	}
	return categories, nil
}

// Create inserts a new product with a unique name.
func (s *ProductService) Create(input ProductInput) (*db.Product, error) {
	name := trimPtr(input.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if err := s.ensureNameAvailable(name, ""); err != nil {
		return nil, err
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		next, err := nextSortOrder[db.Product](s.db)
		if err != nil {
			return nil, err
		}
		sortOrder = next
	}

	item := db.Product{
		Name:        name,
		Model:       trimPtr(input.Model),
		Category:    trimPtr(input.Category),
		Summary:     trimPtr(input.Summary),
		Description: trimPtr(input.Description),
		ImageURL:    trimPtr(input.ImageURL),
		Gallery:     []string{},
		Specs:       map[string]string{},
		SortOrder:   sortOrder,
		IsActive:    boolOr(input.IsActive, true),
		IsFeatured:  boolOr(input.IsFeatured, false),
	}
	if input.Gallery != nil {
		item.Gallery = cleanList(*input.Gallery)
	}
	if input.Specs != nil {
		item.Specs = cleanSpecs(*input.Specs)
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &item, nil
}

// Update changes the product while keeping the name unique.
func (s *ProductService) Update(id string, input ProductInput) (*db.Product, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := trimPtr(input.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		if err := s.ensureNameAvailable(name, item.ID); err != nil {
			return nil, err
		}
		item.Name = name
	}

	setString(&item.Model, input.Model)
	setString(&item.Category, input.Category)
	setString(&item.Summary, input.Summary)
	setString(&item.Description, input.Description)
	setString(&item.ImageURL, input.ImageURL)
	if input.Gallery != nil {
		item.Gallery = cleanList(*input.Gallery)
	}
	if input.Specs != nil {
		item.Specs = cleanSpecs(*input.Specs)
	}
	setInt(&item.SortOrder, input.SortOrder)
	setBool(&item.IsActive, input.IsActive)
	setBool(&item.IsFeatured, input.IsFeatured)

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return item, nil
}

// Delete deactivates the product. A permanent delete also detaches the
// product from cases and messages that reference it.
func (s *ProductService) Delete(id string, permanent bool) error {
	if !permanent {
		return removeByID[db.Product](s.db, id, false, ErrProductNotFound)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.EngineeringCase{}).
			Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return fmt.Errorf("detach cases: %w", err)
		}
		if err := tx.Model(&db.ContactMessage{}).
			Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return fmt.Errorf("detach messages: %w", err)
		}
		return removeByID[db.Product](tx, id, true, ErrProductNotFound)
	})
}

func (s *ProductService) ensureNameAvailable(name, excludeID string) error {
	query := s.db.Model(&db.Product{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check product name: %w", err)
	}
	if count > 0 {
		return ErrProductNameTaken
	}
	return nil
}

func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func cleanSpecs(specs map[string]string) map[string]string {
	cleaned := make(map[string]string, len(specs))
	for key, value := range specs {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		cleaned[key] = strings.TrimSpace(value)
	}
	return cleaned
}
