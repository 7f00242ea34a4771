package db

// Testimonial 客户评价
type Testimonial struct {
	Base
	AuthorName  string `gorm:"size:100;not null" json:"authorName"`
	AuthorTitle string `gorm:"size:100" json:"authorTitle"`
	Company     string `gorm:"size:200" json:"company"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Rating      int    `gorm:"default:5" json:"rating"`
	AvatarURL   string `gorm:"size:500" json:"avatarUrl"`
	SortOrder   int    `gorm:"default:0;index" json:"sortOrder"`
	IsActive    bool   `gorm:"index" json:"isActive"`
	IsFeatured  bool   `gorm:"index" json:"isFeatured"`
}

// TableName 指定自定义表名。
func (Testimonial) TableName() string {
	return "testimonials"
}
