// Discord Webhook 클라이언트
//
// 환경변수:
//   - DISCORD_WEBHOOK_URL: 채널 Webhook URL

package client

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

type DiscordClient struct {
	webhookURL  string
	environment string
	project     string
	httpClient  HTTPDoer
}

// DiscordMessage - Webhook 페이로드
type DiscordMessage struct {
	Username string         `json:"username,omitempty"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed - 임베드 본문
// Color는 hex가 아닌 10진수 정수를 요구함
type DiscordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int64          `json:"color"`
	Fields      []DiscordField `json:"fields,omitempty"`
	Footer      DiscordFooter  `json:"footer"`
	Timestamp   string         `json:"timestamp"`
}

type DiscordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

func NewDiscordClient(webhookURL, environment, project string) *DiscordClient {
	return &DiscordClient{
		webhookURL:  webhookURL,
		environment: environment,
		project:     project,
		httpClient:  &http.Client{Timeout: defaultClientTimeout},
	}
}

func (c *DiscordClient) Channel() model.Channel { return model.ChannelDiscord }

func (c *DiscordClient) IsConfigured() bool {
	return c.webhookURL != ""
}

// SetHTTPClient - 테스트용 HTTP 클라이언트 주입
func (c *DiscordClient) SetHTTPClient(doer HTTPDoer) {
	c.httpClient = doer
}

func (c *DiscordClient) Send(ctx context.Context, alert model.Alert) model.DeliveryResult {
	msg := c.BuildMessage(alert)
	status, err := postJSON(ctx, c.httpClient, c.webhookURL, nil, msg)
	return resultFrom(status, err)
}

// BuildMessage - Alert를 Discord 임베드로 렌더링
func (c *DiscordClient) BuildMessage(alert model.Alert) DiscordMessage {
	// hex 색상을 10진수로 변환
	color, _ := strconv.ParseInt(strings.TrimPrefix(alert.Severity.Color(), "#"), 16, 64)

	return DiscordMessage{
		Username: c.project + " Monitor",
		Embeds: []DiscordEmbed{
			{
				Title:       alert.Severity.Emoji() + " " + alert.Title,
				Description: alert.Message,
				Color:       color,
				Fields: []DiscordField{
					{Name: "Severity", Value: string(alert.Severity), Inline: true},
					{Name: "Environment", Value: c.environment, Inline: true},
					{Name: "Source", Value: alert.Source, Inline: true},
					{Name: "Timestamp", Value: alert.Timestamp.Format(time.RFC3339), Inline: true},
				},
				Footer:    DiscordFooter{Text: c.project},
				Timestamp: alert.Timestamp.Format(time.RFC3339),
			},
		},
	}
}
