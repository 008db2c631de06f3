// Microsoft Teams Webhook 클라이언트 (MessageCard 형식)
//
// 환경변수:
//   - TEAMS_WEBHOOK_URL: 커넥터 Webhook URL

package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

type TeamsClient struct {
	webhookURL  string
	environment string
	project     string
	httpClient  HTTPDoer
}

// TeamsMessage - MessageCard 페이로드
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	Summary    string         `json:"summary"`
	ThemeColor string         `json:"themeColor"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections"`
}

type TeamsSection struct {
	Facts []TeamsFact `json:"facts"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func NewTeamsClient(webhookURL, environment, project string) *TeamsClient {
	return &TeamsClient{
		webhookURL:  webhookURL,
		environment: environment,
		project:     project,
		httpClient:  &http.Client{Timeout: defaultClientTimeout},
	}
}

func (c *TeamsClient) Channel() model.Channel { return model.ChannelTeams }

func (c *TeamsClient) IsConfigured() bool {
	return c.webhookURL != ""
}

// SetHTTPClient - 테스트용 HTTP 클라이언트 주입
func (c *TeamsClient) SetHTTPClient(doer HTTPDoer) {
	c.httpClient = doer
}

func (c *TeamsClient) Send(ctx context.Context, alert model.Alert) model.DeliveryResult {
	msg := c.BuildMessage(alert)
	status, err := postJSON(ctx, c.httpClient, c.webhookURL, nil, msg)
	return resultFrom(status, err)
}

// BuildMessage - Alert를 MessageCard로 렌더링
func (c *TeamsClient) BuildMessage(alert model.Alert) TeamsMessage {
	return TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		Summary:    alert.Title,
		ThemeColor: strings.TrimPrefix(alert.Severity.Color(), "#"),
		Title:      alert.Severity.Emoji() + " " + alert.Title,
		Text:       alert.Message,
		Sections: []TeamsSection{
			{
				Facts: []TeamsFact{
					{Name: "Severity", Value: string(alert.Severity)},
					{Name: "Environment", Value: c.environment},
					{Name: "Source", Value: alert.Source},
					{Name: "Timestamp", Value: alert.Timestamp.Format(time.RFC3339)},
				},
			},
		},
	}
}
