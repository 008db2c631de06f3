// 토픽 게시 클라이언트 (SNS형 채널)
//
// 환경변수:
//   - NOTIFICATION_TOPIC_ARN: 게시 대상 토픽 식별자
//   - TOPIC_ENDPOINT_URL: 게시 프록시 엔드포인트 (둘 다 있어야 설정된 것으로 간주)
//
// 클라우드 SDK에 직접 의존하지 않고 게시 프록시에 JSON POST하는 방식을 사용:
// 토픽 식별자는 페이로드 필드로 전달됨

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

type TopicClient struct {
	topicARN    string
	endpointURL string
	environment string
	httpClient  HTTPDoer
}

// TopicPublish - 게시 요청 페이로드
type TopicPublish struct {
	TopicArn string `json:"topicArn"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

func NewTopicClient(topicARN, endpointURL, environment string) *TopicClient {
	return &TopicClient{
		topicARN:    topicARN,
		endpointURL: endpointURL,
		environment: environment,
		httpClient:  &http.Client{Timeout: defaultClientTimeout},
	}
}

func (c *TopicClient) Channel() model.Channel { return model.ChannelTopic }

func (c *TopicClient) IsConfigured() bool {
	return c.topicARN != "" && c.endpointURL != ""
}

// SetHTTPClient - 테스트용 HTTP 클라이언트 주입
func (c *TopicClient) SetHTTPClient(doer HTTPDoer) {
	c.httpClient = doer
}

func (c *TopicClient) Send(ctx context.Context, alert model.Alert) model.DeliveryResult {
	pub := c.BuildPublish(alert)
	status, err := postJSON(ctx, c.httpClient, c.endpointURL, nil, pub)
	return resultFrom(status, err)
}

// BuildPublish - Alert를 제목 + 평문 본문으로 렌더링
func (c *TopicClient) BuildPublish(alert model.Alert) TopicPublish {
	message := fmt.Sprintf("%s\n\n%s\n\nSeverity: %s\nEnvironment: %s\nSource: %s\nTimestamp: %s\n",
		alert.Title,
		alert.Message,
		alert.Severity,
		c.environment,
		alert.Source,
		alert.Timestamp.Format(time.RFC3339),
	)

	return TopicPublish{
		TopicArn: c.topicARN,
		Subject:  alert.Title,
		Message:  message,
	}
}
