package db

// 首页区块类型
const (
	HomeSectionBanner  = "banner"
	HomeSectionIntro   = "intro"
	HomeSectionFeature = "feature"
	HomeSectionCTA     = "cta"
)

// HomeSections 列出合法的首页区块类型。
var HomeSections = []string{HomeSectionBanner, HomeSectionIntro, HomeSectionFeature, HomeSectionCTA}

// Home 表示首页上的一个展示区块（轮播图、简介、卖点、行动号召）。
type Home struct {
	Base
	Section     string `gorm:"size:20;index;not null" json:"section"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Subtitle    string `gorm:"size:255" json:"subtitle"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:500" json:"imageUrl"`
	LinkURL     string `gorm:"size:500" json:"linkUrl"`
	LinkText    string `gorm:"size:80" json:"linkText"`
	SortOrder   int    `gorm:"default:0;index" json:"sortOrder"`
	IsActive    bool   `gorm:"index" json:"isActive"`
}

// TableName 指定自定义表名。
func (Home) TableName() string {
	return "home_blocks"
}
