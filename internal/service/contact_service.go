package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/corpsite/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrContactNotFound 在指定的联系方式不存在时返回
	ErrContactNotFound = errors.New("contact not found")
	// ErrContactMessageNotFound 在指定的询盘不存在时返回
	ErrContactMessageNotFound = errors.New("contact message not found")
)

// ContactService 负责维护联系方式以及访客提交的询盘
// 提供排序、增删改查能力，与 handler 解耦
type ContactService struct {
	db *gorm.DB
}

// NewContactService 构造 ContactService
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// ContactInput 描述创建或更新联系方式时可设置的字段
// SortOrder/IsActive 使用指针判断是否显式传入
type ContactInput struct {
	Type      *string `json:"type"`
	Label     *string `json:"label"`
	Value     *string `json:"value"`
	Link      *string `json:"link"`
	Icon      *string `json:"icon"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}

// ContactMessageInput 是联系表单提交的内容
type ContactMessageInput struct {
	Name      string  `json:"name" binding:"required,max=100"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Phone     string  `json:"phone" binding:"max=50"`
	Company   string  `json:"company" binding:"max=200"`
	Subject   string  `json:"subject" binding:"max=200"`
	Message   string  `json:"message" binding:"required,max=5000"`
	ProductID *string `json:"productId"`
	IP        string  `json:"-"`
}

// MessageFilter 筛选询盘，Unread 为 true 时只返回未读。
type MessageFilter struct {
	ListFilter
	Unread bool
}

// List 返回联系方式集合，默认按照排序值升序
func (s *ContactService) List(filter ListFilter) (ListResult[db.Contact], error) {
	query := applyCommonFilters(s.db.Model(&db.Contact{}), filter, []string{"label", "value"}, false)
	if kind := strings.ToLower(strings.TrimSpace(filter.Category)); kind != "" {
		query = query.Where("type = ?", kind)
	}
	result, err := paginate[db.Contact](query, filter, "sort_order asc", "created_at asc")
	if err != nil {
		return result, fmt.Errorf("list contacts: %w", err)
	}
	return result, nil
}

// Get 根据主键获取联系方式
func (s *ContactService) Get(id string) (*db.Contact, error) {
	return findByID[db.Contact](s.db, id, ErrContactNotFound)
}

// Create 新建联系方式，未指定排序时自动追加到末尾
func (s *ContactService) Create(input ContactInput) (*db.Contact, error) {
	if trimPtr(input.Label) == "" {
		return nil, invalid("label is required")
	}
	if trimPtr(input.Value) == "" {
		return nil, invalid("value is required")
	}
	kind, err := normalizeContactType(input.Type)
	if err != nil {
		return nil, err
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else if sortOrder, err = nextSortOrder[db.Contact](s.db); err != nil {
		return nil, fmt.Errorf("resolve contact sort: %w", err)
	}

	contact := db.Contact{
		Type:      kind,
		Label:     trimPtr(input.Label),
		Value:     trimPtr(input.Value),
		Link:      trimPtr(input.Link),
		Icon:      trimPtr(input.Icon),
		SortOrder: sortOrder,
		IsActive:  boolOr(input.IsActive, true),
	}
	if err := s.db.Create(&contact).Error; err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return &contact, nil
}

// Update 更新指定联系方式
func (s *ContactService) Update(id string, input ContactInput) (*db.Contact, error) {
	contact, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.Label != nil && trimPtr(input.Label) == "" {
		return nil, invalid("label cannot be empty")
	}
	if input.Value != nil && trimPtr(input.Value) == "" {
		return nil, invalid("value cannot be empty")
	}
	if input.Type != nil {
		kind, err := normalizeContactType(input.Type)
		if err != nil {
			return nil, err
		}
		contact.Type = kind
	}

	setString(&contact.Label, input.Label)
	setString(&contact.Value, input.Value)
	setString(&contact.Link, input.Link)
	setString(&contact.Icon, input.Icon)
	setInt(&contact.SortOrder, input.SortOrder)
	setBool(&contact.IsActive, input.IsActive)

	if err := s.db.Save(contact).Error; err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

// Delete 停用或删除指定联系方式
func (s *ContactService) Delete(id string, permanent bool) error {
	return removeByID[db.Contact](s.db, id, permanent, ErrContactNotFound)
}

// SubmitMessage 保存访客询盘；关联产品必须存在。
func (s *ContactService) SubmitMessage(input ContactMessageInput) (*db.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)
	if name == "" {
		return nil, invalid("name is required")
	}
	if message == "" {
		return nil, invalid("message is required")
	}

	email := strings.TrimSpace(input.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, invalid("email is malformed")
		}
	}

	var productID *string
	if id := trimPtr(input.ProductID); id != "" {
		if _, err := findByID[db.Product](s.db, id, ErrProductNotFound); err != nil {
			if errors.Is(err, ErrProductNotFound) {
				return nil, invalid("product %s does not exist", id)
			}
			return nil, err
		}
		productID = &id
	}

	item := db.ContactMessage{
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(input.Phone),
		Company:   strings.TrimSpace(input.Company),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   message,
		ProductID: productID,
		IP:        strings.TrimSpace(input.IP),
		IsActive:  true,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return &item, nil
}

// ListMessages 返回询盘，最新的在前
func (s *ContactService) ListMessages(filter MessageFilter) (ListResult[db.ContactMessage], error) {
	query := applyCommonFilters(s.db.Model(&db.ContactMessage{}), filter.ListFilter,
		[]string{"name", "email", "company", "subject", "message"}, false)
	if filter.Unread {
		query = query.Where("is_read = ?", false)
	}
	if productID := strings.TrimSpace(filter.ProductID); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	result, err := paginate[db.ContactMessage](query, filter.ListFilter, "created_at desc")
	if err != nil {
		return result, fmt.Errorf("list contact messages: %w", err)
	}
	return result, nil
}

// GetMessage 根据主键获取询盘
func (s *ContactService) GetMessage(id string) (*db.ContactMessage, error) {
	return findByID[db.ContactMessage](s.db, id, ErrContactMessageNotFound)
}

// MarkMessageRead 设置询盘的已读状态
func (s *ContactService) MarkMessageRead(id string, read bool) (*db.ContactMessage, error) {
	item, err := s.GetMessage(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(item).Update("is_read", read).Error; err != nil {
		return nil, fmt.Errorf("mark contact message: %w", err)
	}
	item.IsRead = read
	return item, nil
}

// DeleteMessage 归档或删除询盘
func (s *ContactService) DeleteMessage(id string, permanent bool) error {
	return removeByID[db.ContactMessage](s.db, id, permanent, ErrContactMessageNotFound)
}

func normalizeContactType(value *string) (string, error) {
	kind := strings.ToLower(trimPtr(value))
	if kind == "" {
		return db.ContactTypeOther, nil
	}
	if !contains(db.ContactTypes, kind) {
		return "", invalid("unknown contact type %q", kind)
	}
	return kind, nil
}
