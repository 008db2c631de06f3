package main

import (
	"context"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/client"
	"github.com/rayyan-siddiqu1/self-healing-infra/internal/config"
	"github.com/rayyan-siddiqu1/self-healing-infra/internal/db"
	"github.com/rayyan-siddiqu1/self-healing-infra/internal/handler"
	"github.com/rayyan-siddiqu1/self-healing-infra/internal/service"
)

func main() {
	// .env 로딩 (없으면 환경변수만 사용)
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()
	ctx := context.Background()

	// 분류 규칙: 정책 파일이 지정되면 내장 기본 규칙을 전체 교체
	classifier := service.NewClassifier()
	if cfg.RulesFile != "" {
		ruleConfigs, err := config.LoadRules(cfg.RulesFile)
		if err != nil {
			log.Fatalf("Failed to load classification rules: %v", err)
		}
		classifier, err = service.NewClassifierFromConfig(ruleConfigs)
		if err != nil {
			log.Fatalf("Failed to build classifier: %v", err)
		}
		log.Printf("Loaded %d classification rules from %s", len(ruleConfigs), cfg.RulesFile)
	}

	// Postgres는 선택 사항: 없으면 인메모리 잠금으로 동작하고 감사 저장만 생략
	var (
		database *db.Postgres
		locker   service.Locker
	)
	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	switch {
	case err == nil:
		database = &db.Postgres{Pool: pool}
		if err := database.EnsureLockSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure lock schema: %v", err)
		}
		if err := database.EnsureAuditSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure audit schema: %v", err)
		}
		locker = database
		log.Println("Connected to postgres (keyed lock + audit store)")
	case errors.Is(err, db.ErrNotConfigured):
		locker = service.NewMemoryLocker()
		log.Println("Postgres not configured: using in-memory lock, no cross-process exclusion")
	default:
		// 연결 정보가 있는데 연결이 안 되는 것은 설정 문제이므로 하드 실패
		log.Fatalf("Failed to connect to postgres: %v", err)
	}

	env := cfg.Environment
	project := cfg.ProjectName

	// 복구 분기
	runner := client.NewRunnerClient(cfg.Remediation.RunnerURL, cfg.Remediation.HealthCheckURL, env, project)
	dispatcher := service.NewDispatcher(runner, locker,
		cfg.Remediation.Timeout, cfg.Remediation.LockTTL, cfg.Remediation.LockWait)

	// 알림 분기
	clients := []service.DeliveryClient{
		client.NewSlackClient(cfg.Channels.SlackWebhookURL, env, project),
		client.NewDiscordClient(cfg.Channels.DiscordWebhookURL, env, project),
		client.NewTeamsClient(cfg.Channels.TeamsWebhookURL, env, project),
		client.NewPagerDutyClient(cfg.Channels.PagerDutyAPIKey, cfg.Channels.PagerDutyRoutingKey, env, project),
		client.NewTopicClient(cfg.Channels.TopicARN, cfg.Channels.TopicEndpointURL, env),
		client.NewEmailClient(cfg.Channels.SMTPHost, cfg.Channels.SMTPPort, cfg.Channels.SMTPUser,
			cfg.Channels.SMTPPassword, cfg.Channels.DefaultEmail, env, project),
	}
	alertRouter := service.NewRouter(clients)

	normalizer := service.NewNormalizer(project, cfg.SuppressOKEvents)

	var processor *service.Processor
	if database != nil {
		processor = service.NewProcessor(normalizer, classifier, dispatcher, alertRouter, database, cfg.InvocationTimeout, project)
	} else {
		processor = service.NewProcessor(normalizer, classifier, dispatcher, alertRouter, nil, cfg.InvocationTimeout, project)
	}

	router := gin.Default()

	router.GET("/ping", handler.Ping)
	router.GET("/", handler.Root)

	eventHandler := handler.NewEventHandler(processor)
	router.POST("/api/v1/events", handler.IngestAuthMiddleware(cfg.IngestToken), eventHandler.Ingest)

	// 감사 조회 API는 JWT 설정과 DB가 모두 있을 때만 노출
	if cfg.Auth.JWTSecret != "" && database != nil {
		authService, err := service.NewAuthService(cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize auth: %v", err)
		}

		authHandler := handler.NewAuthHandler(authService)
		auditHandler := handler.NewAuditHandler(database)

		router.POST("/api/v1/auth/login", authHandler.Login)

		authed := router.Group("/api/v1", handler.AuthMiddleware(authService))
		authed.GET("/outcomes", auditHandler.ListOutcomes)
		authed.GET("/deliveries", auditHandler.ListDeliveries)
	} else {
		log.Println("Audit API disabled (requires JWT_SECRET and postgres)")
	}

	if err := router.Run(cfg.Listen); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
