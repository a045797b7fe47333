package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Menu     MenuConfig     `mapstructure:"menu"`
	Log      LogConfig      `mapstructure:"log"`
	Sidebar  []SidebarGroup `mapstructure:"sidebar"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`
	BaseURL     string   `mapstructure:"base_url"`
	CORSOrigins []string `mapstructure:"cors_origins"` // 允许携带 cookie 跨域访问的前端地址
}

// BackendConfig 上游 REST 后端配置
type BackendConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`        // 固定请求超时，默认 10s
	RefreshWindow time.Duration `mapstructure:"refresh_window"` // token 剩余有效期小于该值时拒绝发送，默认 5m
}

// SessionConfig 会话配置
type SessionConfig struct {
	Store      string        `mapstructure:"store"` // memory / redis / database
	CookieName string        `mapstructure:"cookie_name"`
	TTLHours   int           `mapstructure:"ttl_hours"`
	TTL        time.Duration `mapstructure:"-"`
	Secret     string        `mapstructure:"secret"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// JWTConfig JWT配置
// Secret 为空时只解码不验签（token 由后端签发）
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// MenuConfig 菜单树配置
type MenuConfig struct {
	RootParent int64  `mapstructure:"root_parent"`
	Orphans    string `mapstructure:"orphans"` // drop / surface
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text / json
}

// SidebarGroup 侧边栏分组
type SidebarGroup struct {
	Label      string        `mapstructure:"label" json:"label"`
	Route      string        `mapstructure:"route" json:"route,omitempty"`
	Permission string        `mapstructure:"permission" json:"permission,omitempty"`
	Items      []SidebarItem `mapstructure:"items" json:"items"`
}

// SidebarItem 侧边栏子菜单项，Permission 对应角色菜单的 url
type SidebarItem struct {
	Label      string `mapstructure:"label" json:"label"`
	Route      string `mapstructure:"route" json:"route"`
	Permission string `mapstructure:"permission" json:"permission"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	logrus.Debug("已加载内置默认配置")

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			logrus.WithError(err).Warnf("无法读取指定配置文件 %s", configPath)
		} else {
			logrus.Infof("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/ledgerconsole")
		externalViper.AddConfigPath("$HOME/.ledgerconsole")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				logrus.WithError(err).Warn("合并外部配置失败")
			} else {
				logrus.Infof("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 支持环境变量覆盖，如 CONSOLE_BACKEND_BASE_URL
	v.SetEnvPrefix("CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.applyDefaults()

	GlobalConfig = &cfg
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = 10 * time.Second
	}
	if c.Backend.RefreshWindow <= 0 {
		c.Backend.RefreshWindow = 5 * time.Minute
	}
	if c.Session.TTLHours <= 0 {
		c.Session.TTLHours = 24
	}
	c.Session.TTL = time.Duration(c.Session.TTLHours) * time.Hour
	if c.Session.CookieName == "" {
		c.Session.CookieName = "console_sid"
	}
	if c.Session.Store == "" {
		c.Session.Store = "memory"
	}
	if c.Menu.Orphans == "" {
		c.Menu.Orphans = "surface"
	}
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	logrus.WithFields(logrus.Fields{
		"port":    GlobalConfig.Server.Port,
		"mode":    GlobalConfig.Server.Mode,
		"backend": GlobalConfig.Backend.BaseURL,
		"timeout": GlobalConfig.Backend.Timeout,
		"session": GlobalConfig.Session.Store,
		"orphans": GlobalConfig.Menu.Orphans,
	}).Info("当前配置")
}
