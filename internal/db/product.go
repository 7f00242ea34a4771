package db

// Product 定义产品模型，名称在全站唯一。
type Product struct {
	Base
	Name        string            `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Model       string            `gorm:"size:100" json:"model"`
	Category    string            `gorm:"size:100;index" json:"category"`
	Summary     string            `gorm:"size:500" json:"summary"`
	Description string            `gorm:"type:text" json:"description"`
	ImageURL    string            `gorm:"size:500" json:"imageUrl"`
	Gallery     []string          `gorm:"type:text;serializer:json" json:"gallery"`
	Specs       map[string]string `gorm:"type:text;serializer:json" json:"specs"`
	SortOrder   int               `gorm:"default:0;index" json:"sortOrder"`
	IsActive    bool              `gorm:"index" json:"isActive"`
	IsFeatured  bool              `gorm:"index" json:"isFeatured"`
}

// TableName 指定自定义表名。
func (Product) TableName() string {
	return "products"
}
