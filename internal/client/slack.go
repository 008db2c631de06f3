// Slack Incoming Webhook 클라이언트
//
// 환경변수:
//   - SLACK_WEBHOOK_URL: Incoming Webhook URL (https://hooks.slack.com/services/...)
//
// Bot Token 대신 Webhook을 사용하는 이유:
//   - 디스패처는 단방향 알림만 보내며 쓰레드 관리가 필요 없음
//   - 모니터링 스택 쪽 설정이 Webhook URL 하나로 끝남

package client

import (
	"context"
	"net/http"
	"time"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

// SlackClient 구조체 정의
type SlackClient struct {
	webhookURL  string
	environment string
	project     string
	httpClient  HTTPDoer
}

// SlackMessage(메시지 내용) 구조체 정의
type SlackMessage struct {
	Username    string            `json:"username,omitempty"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

// SlackAttachment(메시지 포맷) 구조체 정의
type SlackAttachment struct {
	// Color: severity별 강조 색상 (critical: #dc3545, error: #fd7e14, ...)
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text"`
	Fields []SlackField `json:"fields,omitempty"`
	Footer string       `json:"footer,omitempty"`
	Ts     int64        `json:"ts,omitempty"`
}

// SlackField(메시지 포맷 필드) 구조체 정의
type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// SlackClient 객체 생성
func NewSlackClient(webhookURL, environment, project string) *SlackClient {
	return &SlackClient{
		webhookURL:  webhookURL,
		environment: environment,
		project:     project,
		httpClient:  &http.Client{Timeout: defaultClientTimeout},
	}
}

func (c *SlackClient) Channel() model.Channel { return model.ChannelSlack }

// Webhook URL이 설정되어 있는지 체크
func (c *SlackClient) IsConfigured() bool {
	return c.webhookURL != ""
}

// SetHTTPClient - 테스트용 HTTP 클라이언트 주입
func (c *SlackClient) SetHTTPClient(doer HTTPDoer) {
	c.httpClient = doer
}

// Send - Alert를 Slack attachment 형태로 전송
func (c *SlackClient) Send(ctx context.Context, alert model.Alert) model.DeliveryResult {
	msg := c.BuildMessage(alert)
	status, err := postJSON(ctx, c.httpClient, c.webhookURL, nil, msg)
	return resultFrom(status, err)
}

// BuildMessage - Alert를 SlackMessage로 렌더링
// 테스트에서 렌더링 결과를 직접 검증할 수 있도록 분리
func (c *SlackClient) BuildMessage(alert model.Alert) SlackMessage {
	return SlackMessage{
		Username:  c.project + " Monitor",
		IconEmoji: ":robot_face:",
		Attachments: []SlackAttachment{
			{
				Color: alert.Severity.Color(),
				Title: alert.Severity.Emoji() + " " + alert.Title,
				Text:  alert.Message,
				Fields: []SlackField{
					{Title: "Severity", Value: string(alert.Severity), Short: true},
					{Title: "Environment", Value: c.environment, Short: true},
					{Title: "Source", Value: alert.Source, Short: true},
					{Title: "Timestamp", Value: alert.Timestamp.Format(time.RFC3339), Short: true},
				},
				Footer: c.project,
				Ts:     alert.Timestamp.Unix(),
			},
		},
	}
}
