package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 后台账号角色
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// AdminUser 定义后台账号模型，Password 存储 bcrypt 哈希。
type AdminUser struct {
	Base
	Username    string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"size:255" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        string     `gorm:"size:20;not null" json:"role"`
	IsActive    bool       `gorm:"index" json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

// TableName 指定自定义表名。
func (AdminUser) TableName() string {
	return "admin_users"
}

// EnsureAdmin 存在性检查：若用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的管理员。
// 返回值表示是否新建了账号。
func EnsureAdmin(gdb *gorm.DB, username, password, email string) (bool, error) {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return false, nil
	}

	if gdb == nil {
		return false, errors.New("database not initialized")
	}

	var existing AdminUser
	err := gdb.Where("username = ?", trimmedUser).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	user := AdminUser{
		Username: trimmedUser,
		Email:    strings.TrimSpace(email),
		Password: string(hashed),
		Role:     RoleAdmin,
		IsActive: true,
	}
	if err := gdb.Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}
