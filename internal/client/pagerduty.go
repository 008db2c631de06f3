// PagerDuty Events API v2 클라이언트
//
// 환경변수:
//   - PAGERDUTY_API_KEY: API 토큰
//   - PAGERDUTY_ROUTING_KEY: Events v2 라우팅 키 (둘 다 있어야 설정된 것으로 간주)
//
// dedup key는 (source, title)에서 결정적으로 파생되어
// 동일 알림 반복 시 새 인시던트를 열지 않고 기존 인시던트를 갱신함

package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

const pagerDutyEventsURL = "https://events.pagerduty.com/v2/enqueue"

type PagerDutyClient struct {
	apiKey      string
	routingKey  string
	environment string
	project     string
	eventsURL   string
	httpClient  HTTPDoer
}

// PagerDutyEvent - Events v2 엔벨로프
type PagerDutyEvent struct {
	RoutingKey  string           `json:"routing_key"`
	EventAction string           `json:"event_action"`
	DedupKey    string           `json:"dedup_key"`
	Payload     PagerDutyPayload `json:"payload"`
}

type PagerDutyPayload struct {
	Summary       string            `json:"summary"`
	Source        string            `json:"source"`
	Severity      string            `json:"severity"`
	Timestamp     string            `json:"timestamp"`
	CustomDetails map[string]string `json:"custom_details,omitempty"`
}

func NewPagerDutyClient(apiKey, routingKey, environment, project string) *PagerDutyClient {
	return &PagerDutyClient{
		apiKey:      apiKey,
		routingKey:  routingKey,
		environment: environment,
		project:     project,
		eventsURL:   pagerDutyEventsURL,
		httpClient:  &http.Client{Timeout: defaultClientTimeout},
	}
}

func (c *PagerDutyClient) Channel() model.Channel { return model.ChannelPagerDuty }

// API 키와 라우팅 키가 모두 설정되어 있는지 체크
func (c *PagerDutyClient) IsConfigured() bool {
	return c.apiKey != "" && c.routingKey != ""
}

// SetHTTPClient - 테스트용 HTTP 클라이언트 주입
func (c *PagerDutyClient) SetHTTPClient(doer HTTPDoer) {
	c.httpClient = doer
}

// SetEventsURL - 테스트용 엔드포인트 교체
func (c *PagerDutyClient) SetEventsURL(url string) {
	c.eventsURL = url
}

func (c *PagerDutyClient) Send(ctx context.Context, alert model.Alert) model.DeliveryResult {
	event := c.BuildEvent(alert)
	headers := map[string]string{
		"Authorization": "Token token=" + c.apiKey,
	}
	status, err := postJSON(ctx, c.httpClient, c.eventsURL, headers, event)
	return resultFrom(status, err)
}

// BuildEvent - Alert를 Events v2 엔벨로프로 렌더링
func (c *PagerDutyClient) BuildEvent(alert model.Alert) PagerDutyEvent {
	details := map[string]string{
		"message":     alert.Message,
		"environment": c.environment,
		"source":      alert.Source,
	}
	for k, v := range alert.Metadata {
		details["meta_"+k] = v
	}

	return PagerDutyEvent{
		RoutingKey:  c.routingKey,
		EventAction: "trigger",
		DedupKey:    DedupKey(alert.Source, alert.Title),
		Payload: PagerDutyPayload{
			Summary:       alert.Title,
			Source:        c.project + "-" + c.environment,
			Severity:      alert.Severity.PagerDutyLevel(),
			Timestamp:     alert.Timestamp.Format(time.RFC3339),
			CustomDetails: details,
		},
	}
}

// DedupKey - (source, title)에서 파생되는 안정적인 dedup key
func DedupKey(source, title string) string {
	sum := sha256.Sum256([]byte(source + "\x00" + title))
	return hex.EncodeToString(sum[:16])
}
