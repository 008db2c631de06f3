// 채널 클라이언트 공통 유틸
//
// 모든 웹훅형 채널은 JSON POST 한 번으로 전송되며, 결과 분류 규칙은 공통:
//   - 네트워크 오류 / 5xx / 429: 재시도 가능 실패
//   - 그 외 4xx: 재시도 불가 실패 (설정 문제로 간주)

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

const defaultClientTimeout = 10 * time.Second

// HTTPDoer - 테스트에서 가짜 HTTP 클라이언트를 주입하기 위한 인터페이스
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// postJSON - JSON 페이로드를 POST하고 상태 코드를 반환
func postJSON(ctx context.Context, doer HTTPDoer, url string, headers map[string]string, payload interface{}) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := doer.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// resultFrom - 상태 코드/오류를 DeliveryResult로 분류
func resultFrom(status int, err error) model.DeliveryResult {
	if err != nil {
		return model.DeliveryResult{Succeeded: false, Retryable: true, ErrorDetail: err.Error()}
	}
	if status >= 200 && status < 300 {
		return model.DeliveryResult{Succeeded: true}
	}
	detail := fmt.Sprintf("unexpected status %d", status)
	if status == http.StatusTooManyRequests || status >= 500 {
		return model.DeliveryResult{Succeeded: false, Retryable: true, ErrorDetail: detail}
	}
	return model.DeliveryResult{Succeeded: false, Retryable: false, ErrorDetail: detail}
}
