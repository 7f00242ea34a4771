package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Options 描述数据库连接参数。
type Options struct {
	Driver   string // sqlite | postgres
	Path     string // sqlite 文件路径
	DSN      string // postgres 连接串
	LogLevel logger.LogLevel
}

// Models 返回需要自动迁移的全部模型。
func Models() []any {
	return []any{
		&AdminUser{},
		&About{},
		&Home{},
		&Contact{},
		&ContactMessage{},
		&Product{},
		&EngineeringCase{},
		&Material{},
		&News{},
		&Testimonial{},
	}
}

// Open 根据驱动建立连接，不做迁移。
func Open(opts Options) (*gorm.DB, error) {
	level := opts.LogLevel
	if level == 0 {
		level = logger.Silent
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(level)}

	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "postgres":
		dsn := strings.TrimSpace(opts.DSN)
		if dsn == "" {
			return nil, errors.New("postgres driver requires DATABASE_DSN")
		}
		return gorm.Open(postgres.Open(dsn), cfg)
	case "", "sqlite":
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			path = "corpsite.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		return gorm.Open(sqlite.Open(path), cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// Init 初始化全局连接并执行自动迁移。
func Init(opts Options) error {
	gdb, err := Open(opts)
	if err != nil {
		return err
	}
	if err := AutoMigrate(gdb); err != nil {
		return err
	}
	DB = gdb
	return nil
}

// AutoMigrate 为核心模型创建或更新表结构。
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close 关闭底层连接池。
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
