package service

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/corpsite/internal/db"
	"gorm.io/gorm"
)

// ErrMaterialNotFound 资料不存在。
var ErrMaterialNotFound = errors.New("material not found")

// MaterialInput 描述下载资料的可编辑字段。
type MaterialInput struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	FileURL     *string `json:"fileUrl"`
	FileName    *string `json:"fileName"`
	FileSize    *int64  `json:"fileSize" binding:"omitempty,min=0"`
	FileType    *string `json:"fileType"`
	SortOrder   *int    `json:"sortOrder"`
	IsActive    *bool   `json:"isActive"`
}

// MaterialService handles downloadable material CRUD.
type MaterialService struct {
	db *gorm.DB
}

// NewMaterialService creates a MaterialService instance.
func NewMaterialService(gdb *gorm.DB) *MaterialService {
	return &MaterialService{db: gdb}
}

// List returns materials matching the filter.
func (s *MaterialService) List(filter ListFilter) (ListResult[db.Material], error) {
	query := applyCommonFilters(s.db.Model(&db.Material{}), filter, []string{"title", "description", "file_name"}, false)
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	result, err := paginate[db.Material](query, filter, "sort_order asc", "created_at desc")
	if err != nil {
		return result, fmt.Errorf("list materials: %w", err)
	}
	return result, nil
}

// Get fetches a material by id.
func (s *MaterialService) Get(id string) (*db.Material, error) {
	return findByID[db.Material](s.db, id, ErrMaterialNotFound)
}

// Create inserts a material; fileName defaults to the last segment of fileUrl.
func (s *MaterialService) Create(input MaterialInput) (*db.Material, error) {
	if trimPtr(input.Title) == "" {
		return nil, invalid("title is required")
	}
	fileURL := trimPtr(input.FileURL)
	if fileURL == "" {
		return nil, invalid("fileUrl is required")
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		next, err := nextSortOrder[db.Material](s.db)
		if err != nil {
			return nil, err
		}
		sortOrder = next
	}

	item := db.Material{
		Title:       trimPtr(input.Title),
		Category:    trimPtr(input.Category),
		Description: trimPtr(input.Description),
		FileURL:     fileURL,
		FileName:    trimPtr(input.FileName),
		FileType:    trimPtr(input.FileType),
		SortOrder:   sortOrder,
		IsActive:    boolOr(input.IsActive, true),
	}
	if input.FileSize != nil {
		item.FileSize = *input.FileSize
	}
	if item.FileName == "" {
		item.FileName = path.Base(fileURL)
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}
	return &item, nil
}

// Update modifies the fields present in input.
func (s *MaterialService) Update(id string, input MaterialInput) (*db.Material, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil && trimPtr(input.Title) == "" {
		return nil, invalid("title cannot be empty")
	}
	if input.FileURL != nil && trimPtr(input.FileURL) == "" {
		return nil, invalid("fileUrl cannot be empty")
	}

	setString(&item.Title, input.Title)
	setString(&item.Category, input.Category)
	setString(&item.Description, input.Description)
	setString(&item.FileURL, input.FileURL)
	setString(&item.FileName, input.FileName)
	setString(&item.FileType, input.FileType)
	if input.FileSize != nil {
		item.FileSize = *input.FileSize
	}
	setInt(&item.SortOrder, input.SortOrder)
	setBool(&item.IsActive, input.IsActive)

	if err := s.db.Omit("download_count").Save(item).Error; err != nil {
		return nil, fmt.Errorf("update material: %w", err)
	}
	return item, nil
}

// Delete deactivates the material, or removes it when permanent is set.
func (s *MaterialService) Delete(id string, permanent bool) error {
	return removeByID[db.Material](s.db, id, permanent, ErrMaterialNotFound)
}

// RecordDownload 累加下载次数并返回资料，停用的资料视为不存在。
func (s *MaterialService) RecordDownload(id string) (*db.Material, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, ErrMaterialNotFound
	}

	if err := s.db.Model(&db.Material{}).
		Where("id = ?", item.ID).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1)).Error; err != nil {
		return nil, fmt.Errorf("record material download: %w", err)
	}
	item.DownloadCount++
	return item, nil
}
