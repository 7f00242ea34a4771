package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/corpsite/internal/config"
	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// rootCmd 不带子命令时等同于 serve
var rootCmd = &cobra.Command{
	Use:   "corpsite",
	Short: "Corporate site API and admin CMS",
	Long: `corpsite serves the public marketing API and the admin CMS backend.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd, seedCmd)
}

// runtime 是各子命令共享的启动结果。
type runtime struct {
	cfg    config.AppConfig
	logger *zap.Logger
	db     *gorm.DB
}

// bootstrap 读取配置、构建日志并打开数据库（含自动迁移）。
func bootstrap() (*runtime, error) {
	cfg := config.Load()
	log := logging.Must(cfg.LogLevel, cfg.LogFormat)

	level := logger.Silent
	if strings.EqualFold(cfg.LogLevel, "debug") {
		level = logger.Info
	}

	if err := db.Init(db.Options{
		Driver:   cfg.DatabaseDriver,
		Path:     cfg.DatabasePath,
		DSN:      cfg.DatabaseDSN,
		LogLevel: level,
	}); err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	log.Info("database ready", zap.String("driver", cfg.DatabaseDriver))
	return &runtime{cfg: cfg, logger: log, db: db.DB}, nil
}

func (r *runtime) close() {
	if err := db.Close(r.db); err != nil {
		r.logger.Warn("close database failed", zap.Error(err))
	}
	_ = r.logger.Sync()
}
