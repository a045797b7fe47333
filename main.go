package main

import (
	"context"
	"fmt"
	"strings"

	"ledgerconsole/api"
	"ledgerconsole/backend"
	"ledgerconsole/config"
	"ledgerconsole/database"
	"ledgerconsole/guard"
	"ledgerconsole/logger"
	"ledgerconsole/menutree"
	"ledgerconsole/metrics"
	"ledgerconsole/router"
	"ledgerconsole/sequence"
	"ledgerconsole/session"
	"ledgerconsole/token"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// @title 财务进销存管理控制台 API
// @version 1.0
// @description 会计与进销存后台控制台：会话、菜单权限树、侧边栏、会计科目与业务资源代理
// @host localhost:8080
// @BasePath /

const version = "v1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	pflag.StringVarP(&configFile, "config", "c", "", "外部配置文件路径（可选）")
	pflag.StringVarP(&port, "port", "p", "", "监听端口，如: 8080 或 :8080")
	pflag.BoolVarP(&showVersion, "version", "v", false, "显示版本信息")
}

func main() {
	pflag.Parse()

	if showVersion {
		fmt.Println("ledgerconsole " + version)
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		logrus.Fatalf("加载配置失败: %v", err)
	}
	log := logger.Init(cfg.Log)

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Infof("命令行指定端口: %s", port)
	}

	config.PrintConfig()

	store, err := newStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("会话存储初始化失败: %v", err)
	}
	sessions, err := session.NewManager(store, session.ManagerOptions{
		CookieName: cfg.Session.CookieName,
		Secret:     cfg.Session.Secret,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Server.Mode == "release",
	})
	if err != nil {
		log.Fatalf("会话管理器初始化失败: %v", err)
	}

	orphans, err := menutree.ParseOrphanPolicy(cfg.Menu.Orphans)
	if err != nil {
		log.Fatalf("菜单配置错误: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	decoder := token.NewDecoder(cfg.JWT.Secret)
	client := backend.New(backend.Options{
		BaseURL:       cfg.Backend.BaseURL,
		Timeout:       cfg.Backend.Timeout,
		RefreshWindow: cfg.Backend.RefreshWindow,
		Decoder:       decoder,
		Logger:        log,
		Observe:       m.ObserveBackend,
	})
	g := guard.New(store, decoder,
		guard.WithLogger(log),
		guard.WithObserver(func(d guard.Decision) { m.ObserveGuard(d.State.String(), d.Reason) }),
	)
	tracker, err := sequence.New(sequence.DefaultSize)
	if err != nil {
		log.Fatalf("请求跟踪器初始化失败: %v", err)
	}

	r := router.SetupRouter(cfg, router.Deps{
		Client:   client,
		Sessions: sessions,
		Guard:    g,
		Decoder:  decoder,
		Tracker:  tracker,
		Metrics:  m,
		Tree:     api.TreeOptions{Root: cfg.Menu.RootParent, Orphans: orphans},
		Log:      log,
	})

	log.Info("==========================================")
	log.Info("  财务进销存管理控制台已启动")
	log.Info("==========================================")
	log.Infof("  后端地址: %s", cfg.Backend.BaseURL)
	log.Infof("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Infof("  指标:     http://localhost%s/metrics", cfg.Server.Port)
	log.Info("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}

// newStore 按 session.store 选择会话存储
func newStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Store {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		client, err := session.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(client), nil
	case "database":
		if err := database.Init(cfg); err != nil {
			return nil, err
		}
		store := session.NewGormStore(database.GetDB())
		// 启动时清理上次运行遗留的过期会话，之后由 Set 按间隔顺带清理
		if n, err := store.Purge(ctx); err != nil {
			logrus.WithError(err).Warn("清理过期会话失败")
		} else {
			logrus.WithField("rows", n).Info("已清理过期会话")
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
