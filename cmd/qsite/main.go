package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "qsite/cmd/qsite/docs" // 引入生成的 Swagger 文件
	adminapp "qsite/internal/admin/app"
	adminrepo "qsite/internal/admin/repository"
	"qsite/internal/api/handlers"
	"qsite/internal/api/router"
	memberapp "qsite/internal/member/app"
	memberdomain "qsite/internal/member/domain"
	memberrepo "qsite/internal/member/repository"
	messagingapp "qsite/internal/messaging/app"
	messagingrepo "qsite/internal/messaging/repository"
	statusapp "qsite/internal/status/app"
	statusrepo "qsite/internal/status/repository"
	"qsite/pkg/config"
	"qsite/pkg/database"
	"qsite/pkg/logger"
	"qsite/pkg/notify"
	"qsite/pkg/testtool"
	"qsite/pkg/token"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.Qsite, config.EnvConfig.QsiteLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.Qsite](config.EnvConfig.Qsite, config.EnvConfig.QsiteYAMLPath)
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.JWTSecret != "" {
		token.SetSecret(cfg.JWTSecret)
	}
	token.SetExpiration(cfg.SessionTTL)

	testtool.StartPprof()

	pgConn := database.Connection{
		ConnectStr:    database.PostgresDSN(cfg.PostgreSQL),
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	}

	// gorm: table repositories
	db, err := database.NewPGConnection(pgConn)
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL (gorm) after retries", zap.Error(err))
	}
	if err := memberrepo.Migrate(db); err != nil {
		logger.Log.Fatal("member migrate failed", zap.Error(err))
	}
	if err := messagingrepo.Migrate(db); err != nil {
		logger.Log.Fatal("messaging migrate failed", zap.Error(err))
	}
	if err := statusrepo.Migrate(db); err != nil {
		logger.Log.Fatal("status migrate failed", zap.Error(err))
	}

	// pgx: stored procedures
	pool, err := database.NewDatabaseConnection(pgConn)
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL (pgx) after retries", zap.Error(err))
	}
	defer pool.Close()

	redisClient, err := newRedisClient(cfg.Redis)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	defer redisClient.Close()

	rabbitConn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    database.RabbitURL(cfg.RabbitMQ),
		RetryCount:    cfg.RabbitMQ.RetryCount,
		RetryInterval: time.Duration(cfg.RabbitMQ.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("connect rabbitmq failed", zap.Error(err))
	}
	defer rabbitConn.Close()

	rabbitCh, err := database.GetRabbitMQChannelWithRetry(rabbitConn, cfg.RabbitMQ.RetryCount, time.Duration(cfg.RabbitMQ.RetryInterval))
	if err != nil {
		logger.Log.Fatal("open rabbitmq channel failed", zap.Error(err))
	}
	defer rabbitCh.Close()

	queue := cfg.RabbitMQ.Queue
	if queue == "" {
		queue = notify.DefaultQueue
	}
	if err := database.DeclareQueue(rabbitCh, queue); err != nil {
		logger.Log.Fatal("declare sms queue failed", zap.String("queue", queue), zap.Error(err))
	}
	smsPublisher := notify.NewPublisher(database.NewRabbitRepository(rabbitCh), queue)

	// use cases
	rpcRepo := adminrepo.NewRPCRepository(pool)
	sessionRepo := database.NewRedisRepository[memberdomain.MemberSession](redisClient, "session:")
	memberUC := memberapp.NewMemberUseCase(memberrepo.NewMemberRepository(db), rpcRepo, cfg.SessionTTL, sessionRepo)

	convRepo := messagingrepo.NewConversationRepository(db)
	unreadUC := messagingapp.NewUnreadUseCase(convRepo)
	safetyUC := messagingapp.NewSafetyUseCase(messagingrepo.NewSafetyRepository(db), convRepo)
	statusUC := statusapp.NewStatusUseCase(statusrepo.NewStatusRepository(db))
	adminUC := adminapp.NewAdminUseCase(rpcRepo, memberUC, smsPublisher)

	r := fiber.New(fiber.Config{
		AppName:      "qsite",
		ErrorHandler: handlers.ErrorHandler,
	})

	// access log 寫檔
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.QsiteLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		logger.Log.Fatal("Failed to open log file", zap.Error(err))
	}
	defer file.Close()

	r.Use(recover.New())
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: cfg.CORSOrigin != "*",
	}))

	router.RegisterRoutes(r, memberUC, router.Handlers{
		Messaging: handlers.NewMessagingHandler(unreadUC, safetyUC),
		Status:    handlers.NewStatusHandler(statusUC),
		Admin:     handlers.NewAdminHandler(adminUC),
		Member:    handlers.NewMemberHandler(memberUC, cfg.SessionTTL, config.IsProduction()),
		Websocket: messagingapp.NewUnreadWebsocketHandler(unreadUC),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Log.Info("Shutting down qsite api")
		if err := r.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Log.Error("shutdown failed", zap.Error(err))
		}
	}()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	logger.Log.Info("qsite api listening", zap.String("port", port))
	if err := r.Listen(":" + port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}

// newRedisClient addr 有值用單機，否則走 sentinel
func newRedisClient(c config.RedisConfig) (*redis.Client, error) {
	if c.Addr != "" {
		return database.NewRedisSingleClient(c.Addr, c.RedisDB)
	}
	masterName, sentinel := config.GetRedisSetting()
	return database.NewRedisClient(masterName, sentinel, c.RedisDB)
}
