package db

import "time"

// News 定义新闻动态模型
type News struct {
	Base
	Title       string    `gorm:"size:200;not null" json:"title"`
	Summary     string    `gorm:"size:500" json:"summary"`
	Content     string    `gorm:"type:text" json:"content"`
	CoverURL    string    `gorm:"size:500" json:"coverUrl"`
	Category    string    `gorm:"size:100;index" json:"category"`
	Author      string    `gorm:"size:100" json:"author"`
	PublishedAt time.Time `gorm:"index" json:"publishedAt"`
	ViewCount   int64     `gorm:"default:0" json:"viewCount"`
	IsActive    bool      `gorm:"index" json:"isActive"`
	IsFeatured  bool      `gorm:"index" json:"isFeatured"`
}

// TableName 避免 gorm 对 news 的复数化歧义。
func (News) TableName() string {
	return "news"
}
