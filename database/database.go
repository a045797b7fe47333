package database

import (
	"fmt"

	"ledgerconsole/config"
	"ledgerconsole/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// DSN 构建 MySQL 连接字符串
func DSN(cfg config.DatabaseConfig) string {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		charset,
	)
}

// Init 初始化数据库连接（仅数据库会话存储使用）
func Init(cfg *config.Config) error {
	level := logger.Warn
	if cfg.Server.Mode == "debug" {
		level = logger.Info
	}

	db, err := gorm.Open(mysql.Open(DSN(cfg.Database)), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}
	return Setup(db)
}

// Setup 配置连接池并迁移会话表
func Setup(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := db.AutoMigrate(&models.SessionEntry{}); err != nil {
		return fmt.Errorf("迁移会话表失败: %w", err)
	}

	DB = db
	logrus.Info("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
