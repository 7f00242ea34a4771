package db

// 联系方式类型
const (
	ContactTypePhone    = "phone"
	ContactTypeEmail    = "email"
	ContactTypeAddress  = "address"
	ContactTypeWechat   = "wechat"
	ContactTypeWhatsApp = "whatsapp"
	ContactTypeOther    = "other"
)

// ContactTypes 列出合法的联系方式类型。
var ContactTypes = []string{
	ContactTypePhone,
	ContactTypeEmail,
	ContactTypeAddress,
	ContactTypeWechat,
	ContactTypeWhatsApp,
	ContactTypeOther,
}

// Contact 保存前台展示的联系渠道
// Icon 字段用于匹配前端内置的图标
// SortOrder 值越小越靠前
type Contact struct {
	Base
	Type      string `gorm:"size:20;not null" json:"type"`
	Label     string `gorm:"size:80;not null" json:"label"`
	Value     string `gorm:"size:255;not null" json:"value"`
	Link      string `gorm:"size:255" json:"link"`
	Icon      string `gorm:"size:50" json:"icon"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
	IsActive  bool   `gorm:"index" json:"isActive"`
}

// TableName 返回自定义表名。
func (Contact) TableName() string {
	return "contacts"
}

// ContactMessage 是访客通过联系表单提交的询盘。
type ContactMessage struct {
	Base
	Name      string  `gorm:"size:100;not null" json:"name"`
	Email     string  `gorm:"size:255" json:"email"`
	Phone     string  `gorm:"size:50" json:"phone"`
	Company   string  `gorm:"size:200" json:"company"`
	Subject   string  `gorm:"size:200" json:"subject"`
	Message   string  `gorm:"type:text;not null" json:"message"`
	ProductID *string `gorm:"size:36;index" json:"productId"`
	IP        string  `gorm:"size:64" json:"ip"`
	IsRead    bool    `gorm:"index" json:"isRead"`
	IsActive  bool    `gorm:"index" json:"isActive"`
}

// TableName 返回自定义表名。
func (ContactMessage) TableName() string {
	return "contact_messages"
}
