package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	memberapp "qsite/internal/member/app"
	memberrepo "qsite/internal/member/repository"
	"qsite/pkg/config"
	"qsite/pkg/database"
	"qsite/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "member email")
	password := flag.String("password", "", "member password")
	name := flag.String("name", "", "display name")
	role := flag.String("role", "user", "admin | moderator | user")
	phone := flag.String("phone", "", "phone number for sms notifications")
	flag.Parse()

	logger.Log = logger.Initialize(config.EnvConfig.Qsite, config.EnvConfig.QsiteLogPath)
	defer logger.Log.Sync()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.LoadConfig[config.Qsite](config.EnvConfig.Qsite, config.EnvConfig.QsiteYAMLPath)
	db, err := database.NewPGConnection(database.Connection{
		ConnectStr:    database.PostgresDSN(cfg.PostgreSQL),
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL after retries", zap.Error(err))
	}
	if err := memberrepo.Migrate(db); err != nil {
		logger.Log.Fatal("member migrate failed", zap.Error(err))
	}

	// 建立帳號不需要 session / 登入檢查
	uc := memberapp.NewMemberUseCase(memberrepo.NewMemberRepository(db), nil, 0, nil)
	member, err := uc.CreateMember(context.Background(), memberapp.CreateMemberInput{
		Email:       *email,
		Password:    *password,
		DisplayName: *name,
		Role:        *role,
		Phone:       *phone,
	})
	if err != nil {
		logger.Log.Fatal("create member failed", zap.Error(err))
	}
	fmt.Printf("created member %s (%s, role=%s)\n", member.ID, member.Email, member.Role)
}
