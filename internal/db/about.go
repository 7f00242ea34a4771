package db

// About 是关于我们页面中的一个段落，前台按 SortOrder 依次展示。
type About struct {
	Base
	Title     string `gorm:"size:200;not null" json:"title"`
	Subtitle  string `gorm:"size:255" json:"subtitle"`
	Content   string `gorm:"type:text" json:"content"`
	ImageURL  string `gorm:"size:500" json:"imageUrl"`
	SortOrder int    `gorm:"default:0;index" json:"sortOrder"`
	IsActive  bool   `gorm:"index" json:"isActive"`
}

// TableName 指定自定义表名。
func (About) TableName() string {
	return "about_sections"
}
