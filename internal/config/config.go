// 환경변수 기반 설정 로딩
//
// 채널 자격증명이 비어 있으면 해당 채널은 "미설정" 상태로 간주되어
// 라우터가 전송을 건너뜀 (건너뛴 사실은 로그로 남김)

package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Listen      string
	Environment string
	ProjectName string

	Channels    ChannelConfig
	Remediation RemediationConfig
	Auth        AuthConfig
	Postgres    PostgresConfig

	// InvocationTimeout: 이벤트 1건 처리 전체에 대한 상한
	InvocationTimeout time.Duration

	// SuppressOKEvents: true면 OK/INSUFFICIENT_DATA 상태 전환의 감사 알림을 생략
	SuppressOKEvents bool

	// RulesFile: 분류 규칙 yaml 정책 파일 경로 (비어 있으면 내장 기본 규칙 사용)
	RulesFile string

	// IngestToken: 수신 엔드포인트 보호용 공유 토큰 (비어 있으면 비보호)
	IngestToken string
}

type ChannelConfig struct {
	SlackWebhookURL     string
	DiscordWebhookURL   string
	TeamsWebhookURL     string
	PagerDutyAPIKey     string
	PagerDutyRoutingKey string

	// 토픽 채널: ARN과 게시 엔드포인트가 모두 있어야 설정된 것으로 간주
	TopicARN         string
	TopicEndpointURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	DefaultEmail string
}

type RemediationConfig struct {
	// RunnerURL: 실제 복구 명령을 실행하는 외부 러너 엔드포인트
	RunnerURL string

	// HealthCheckURL: health_check 타입이 조회하는 상태 확인 엔드포인트
	HealthCheckURL string

	// Timeout: 복구 동작 1회 실행 상한 (초과 시 errorDetail="timeout", 자동 재시도 없음)
	Timeout time.Duration

	// LockTTL: (타입, 소스) 키 잠금의 유효 기간
	LockTTL time.Duration

	// LockWait: 잠금 획득 대기 상한 (초과 시 "이미 진행 중"으로 건너뜀)
	LockWait time.Duration
}

type AuthConfig struct {
	JWTSecret     string
	JWTAccessTTL  string
	AdminLoginID  string
	AdminPassword string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func Load() Config {
	return Config{
		Listen:      getenv("LISTEN_ADDR", ":8080"),
		Environment: getenv("ENVIRONMENT", "prod"),
		ProjectName: getenv("PROJECT_NAME", "self-healing-infra"),
		Channels: ChannelConfig{
			SlackWebhookURL:     os.Getenv("SLACK_WEBHOOK_URL"),
			DiscordWebhookURL:   os.Getenv("DISCORD_WEBHOOK_URL"),
			TeamsWebhookURL:     os.Getenv("TEAMS_WEBHOOK_URL"),
			PagerDutyAPIKey:     os.Getenv("PAGERDUTY_API_KEY"),
			PagerDutyRoutingKey: os.Getenv("PAGERDUTY_ROUTING_KEY"),
			TopicARN:            os.Getenv("NOTIFICATION_TOPIC_ARN"),
			TopicEndpointURL:    os.Getenv("TOPIC_ENDPOINT_URL"),
			SMTPHost:            os.Getenv("SMTP_HOST"),
			SMTPPort:            getenvInt("SMTP_PORT", 587),
			SMTPUser:            os.Getenv("SMTP_USER"),
			SMTPPassword:        os.Getenv("SMTP_PASSWORD"),
			DefaultEmail:        os.Getenv("DEFAULT_EMAIL"),
		},
		Remediation: RemediationConfig{
			RunnerURL:      os.Getenv("REMEDIATION_RUNNER_URL"),
			HealthCheckURL: os.Getenv("HEALTH_CHECK_URL"),
			Timeout:        getenvSeconds("REMEDIATION_TIMEOUT_SECONDS", 120),
			LockTTL:        getenvSeconds("REMEDIATION_LOCK_TTL_SECONDS", 300),
			LockWait:       time.Duration(getenvInt("REMEDIATION_LOCK_WAIT_MS", 500)) * time.Millisecond,
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			JWTAccessTTL:  getenv("JWT_ACCESS_TTL", "1h"),
			AdminLoginID:  os.Getenv("ADMIN_LOGIN_ID"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		InvocationTimeout: getenvSeconds("INVOCATION_TIMEOUT_SECONDS", 30),
		SuppressOKEvents:  getenvBool("SUPPRESS_OK_EVENTS", false),
		RulesFile:         os.Getenv("RULES_FILE"),
		IngestToken:       os.Getenv("INGEST_TOKEN"),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getenvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getenvInt(key, fallback)) * time.Second
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}
