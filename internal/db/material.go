package db

// Material 是可供下载的资料（样本、说明书、认证文件等）。
type Material struct {
	Base
	Title         string `gorm:"size:200;not null" json:"title"`
	Category      string `gorm:"size:100;index" json:"category"`
	Description   string `gorm:"type:text" json:"description"`
	FileURL       string `gorm:"size:500;not null" json:"fileUrl"`
	FileName      string `gorm:"size:255" json:"fileName"`
	FileSize      int64  `json:"fileSize"`
	FileType      string `gorm:"size:100" json:"fileType"`
	DownloadCount int64  `gorm:"default:0" json:"downloadCount"`
	SortOrder     int    `gorm:"default:0;index" json:"sortOrder"`
	IsActive      bool   `gorm:"index" json:"isActive"`
}

// TableName 指定自定义表名。
func (Material) TableName() string {
	return "materials"
}
