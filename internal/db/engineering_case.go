package db

import "time"

// EngineeringCase 记录工程案例，可关联一个使用到的产品。
type EngineeringCase struct {
	Base
	Title       string     `gorm:"size:200;not null" json:"title"`
	Client      string     `gorm:"size:200" json:"client"`
	Location    string     `gorm:"size:200" json:"location"`
	ProductID   *string    `gorm:"size:36;index" json:"productId"`
	Product     *Product   `gorm:"constraint:OnDelete:SET NULL" json:"product,omitempty"`
	Summary     string     `gorm:"size:500" json:"summary"`
	Content     string     `gorm:"type:text" json:"content"`
	CoverURL    string     `gorm:"size:500" json:"coverUrl"`
	CompletedAt *time.Time `json:"completedAt"`
	SortOrder   int        `gorm:"default:0;index" json:"sortOrder"`
	IsActive    bool       `gorm:"index" json:"isActive"`
	IsFeatured  bool       `gorm:"index" json:"isFeatured"`
}

// TableName 指定自定义表名。
func (EngineeringCase) TableName() string {
	return "engineering_cases"
}
