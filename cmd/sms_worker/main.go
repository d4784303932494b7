package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	memberrepo "qsite/internal/member/repository"
	smsapp "qsite/internal/sms/app"
	"qsite/pkg/config"
	"qsite/pkg/database"
	"qsite/pkg/i18n"
	"qsite/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.SMSWorker, config.EnvConfig.SMSWorkerLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.SMSWorker](config.EnvConfig.SMSWorker, config.EnvConfig.SMSWorkerYAMLPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPGConnection(database.Connection{
		ConnectStr:    database.PostgresDSN(cfg.PostgreSQL),
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL after retries", zap.Error(err))
	}

	conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    database.RabbitURL(cfg.RabbitMQ),
		RetryCount:    cfg.RabbitMQ.RetryCount,
		RetryInterval: time.Duration(cfg.RabbitMQ.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("connect rabbitmq failed", zap.Error(err))
	}
	defer conn.Close()

	ch, err := database.GetRabbitMQChannelWithRetry(conn, cfg.RabbitMQ.RetryCount, time.Duration(cfg.RabbitMQ.RetryInterval))
	if err != nil {
		logger.Log.Fatal("open rabbitmq channel failed", zap.Error(err))
	}
	defer ch.Close()

	if err := database.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
		logger.Log.Fatal("declare sms queue failed", zap.Error(err))
	}
	// 一次只拿一則，失敗 back-off 時不會卡住其他訊息
	if err := ch.Qos(1, 0, false); err != nil {
		logger.Log.Fatal("set qos failed", zap.Error(err))
	}

	lang, ok := i18n.Parse(cfg.Language)
	if !ok {
		lang = i18n.Default()
	}

	worker := smsapp.NewWorker(
		memberrepo.NewMemberRepository(db),
		smsapp.NewHTTPCarrier(cfg.Carrier),
		lang,
		cfg.RabbitMQ.Queue,
	)
	if err := worker.StartConsumer(ctx, ch); err != nil {
		logger.Log.Fatal("sms worker stopped", zap.Error(err))
	}
}
