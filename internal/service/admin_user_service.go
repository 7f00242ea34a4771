package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/corpsite/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAdminUserNotFound  = errors.New("admin user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminUserDisabled  = errors.New("admin user is disabled")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrSelfModification   = errors.New("cannot remove or demote the current account")
)

const minPasswordLength = 8

// AdminUserInput 描述后台账号的可编辑字段。Password 传入时重新哈希。
type AdminUserInput struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=64"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin editor"`
	IsActive *bool   `json:"isActive"`
}

// AdminUserService 管理后台账号与登录校验。
type AdminUserService struct {
	db   *gorm.DB
	now  func() time.Time
	cost int
}

// NewAdminUserService constructs AdminUserService.
func NewAdminUserService(gdb *gorm.DB) *AdminUserService {
	return &AdminUserService{db: gdb, now: time.Now, cost: bcrypt.DefaultCost}
}

// Authenticate 校验用户名与密码，成功后记录最近登录时间。
func (s *AdminUserService) Authenticate(username, password string) (*db.AdminUser, error) {
	var user db.AdminUser
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAdminUserDisabled
	}

	now := s.now()
	if err := s.db.Model(&user).UpdateColumn("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	user.LastLoginAt = &now
	return &user, nil
}

// List returns admin users ordered by username.
func (s *AdminUserService) List(filter ListFilter) (ListResult[db.AdminUser], error) {
	query := applyCommonFilters(s.db.Model(&db.AdminUser{}), filter, []string{"username", "email"}, false)
	if role := strings.TrimSpace(filter.Category); role != "" {
		query = query.Where("role = ?", role)
	}
	result, err := paginate[db.AdminUser](query, filter, "username asc")
	if err != nil {
		return result, fmt.Errorf("list admin users: %w", err)
	}
	return result, nil
}

// Get fetches an admin user by id.
func (s *AdminUserService) Get(id string) (*db.AdminUser, error) {
	return findByID[db.AdminUser](s.db, id, ErrAdminUserNotFound)
}

// Create adds an account; role defaults to editor.
func (s *AdminUserService) Create(input AdminUserInput) (*db.AdminUser, error) {
	username := trimPtr(input.Username)
	if username == "" {
		return nil, invalid("username is required")
	}
	if input.Password == nil {
		return nil, invalid("password is required")
	}
	role, err := normalizeRole(input.Role, db.RoleEditor)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUsernameAvailable(username, ""); err != nil {
		return nil, err
	}
	hashed, err := s.hash(*input.Password)
	if err != nil {
		return nil, err
	}

	user := db.AdminUser{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     role,
		IsActive: boolOr(input.IsActive, true),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create admin user: %w", err)
	}
	return &user, nil
}

// Update modifies an account. actorID 为当前操作者，不能停用或降级自己。
func (s *AdminUserService) Update(actorID, id string, input AdminUserInput) (*db.AdminUser, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if user.ID == actorID {
		if input.IsActive != nil && !*input.IsActive {
			return nil, ErrSelfModification
		}
		if role := trimPtr(input.Role); role != "" && !strings.EqualFold(role, db.RoleAdmin) && user.Role == db.RoleAdmin {
			return nil, ErrSelfModification
		}
	}

	if input.Username != nil {
		username := trimPtr(input.Username)
		if username == "" {
			return nil, invalid("username cannot be empty")
		}
		if err := s.ensureUsernameAvailable(username, user.ID); err != nil {
			return nil, err
		}
		user.Username = username
	}
	if input.Email != nil {
		email, err := normalizeEmail(input.Email)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}
	if input.Role != nil {
		role, err := normalizeRole(input.Role, user.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if input.Password != nil {
		hashed, err := s.hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	setBool(&user.IsActive, input.IsActive)

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update admin user: %w", err)
	}
	return user, nil
}

// Delete deactivates an account, or removes it when permanent is set.
func (s *AdminUserService) Delete(actorID, id string, permanent bool) error {
	if strings.TrimSpace(id) == actorID {
		return ErrSelfModification
	}
	return removeByID[db.AdminUser](s.db, id, permanent, ErrAdminUserNotFound)
}

// ChangePassword 校验旧密码后更新为新密码。
func (s *AdminUserService) ChangePassword(id, oldPassword, newPassword string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.db.Model(user).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (s *AdminUserService) hash(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *AdminUserService) ensureUsernameAvailable(username, excludeID string) error {
	query := s.db.Model(&db.AdminUser{}).Where("username = ?", username)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	return nil
}

func normalizeRole(value *string, fallback string) (string, error) {
	role := strings.ToLower(trimPtr(value))
	if role == "" {
		return fallback, nil
	}
	if role != db.RoleAdmin && role != db.RoleEditor {
		return "", invalid("unknown role %q", role)
	}
	return role, nil
}

func normalizeEmail(value *string) (string, error) {
	email := trimPtr(value)
	if email == "" {
		return "", nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", invalid("email is malformed")
	}
	return email, nil
}
