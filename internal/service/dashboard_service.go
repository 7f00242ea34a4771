package service

import (
	"fmt"

	"github.com/corpsite/internal/db"
	"gorm.io/gorm"
)

// ModuleCount 统计单个模块的记录数。
type ModuleCount struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// DashboardSummary 是后台首页的统计数据。
type DashboardSummary struct {
	Modules        map[string]ModuleCount `json:"modules"`
	UnreadMessages int64                  `json:"unreadMessages"`
}

// DashboardService 汇总各模块数据量。
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a DashboardService instance.
func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{db: gdb}
}

// Summary counts total and active records per module.
func (s *DashboardService) Summary() (DashboardSummary, error) {
	summary := DashboardSummary{Modules: map[string]ModuleCount{}}

	models := []struct {
		name  string
		model any
	}{
		{"about", &db.About{}},
		{"home", &db.Home{}},
		{"contact", &db.Contact{}},
		{"messages", &db.ContactMessage{}},
		{"news", &db.News{}},
		{"products", &db.Product{}},
		{"cases", &db.EngineeringCase{}},
		{"materials", &db.Material{}},
		{"testimonials", &db.Testimonial{}},
		{"users", &db.AdminUser{}},
	}

	for _, entry := range models {
		var count ModuleCount
		if err := s.db.Model(entry.model).Count(&count.Total).Error; err != nil {
			return summary, fmt.Errorf("count %s: %w", entry.name, err)
		}
		if err := s.db.Model(entry.model).Where("is_active = ?", true).Count(&count.Active).Error; err != nil {
			return summary, fmt.Errorf("count active %s: %w", entry.name, err)
		}
		summary.Modules[entry.name] = count
	}

	if err := s.db.Model(&db.ContactMessage{}).
		Where("is_read = ? AND is_active = ?", false, true).
		Count(&summary.UnreadMessages).Error; err != nil {
		return summary, fmt.Errorf("count unread messages: %w", err)
	}

	return summary, nil
}
