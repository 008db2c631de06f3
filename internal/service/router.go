// 알림 라우팅 비즈니스 로직
//
// severity별 자격 테이블에 따라 채널을 고르고 동시에 fan-out 전송:
//   - 채널 간 실패 격리: 한 채널의 실패/지연이 다른 채널 시도를 막지 않음
//   - 완료 기준은 "모두 시도됨"이지 "모두 성공"이 아님
//   - 재시도 가능 실패만 짧은 backoff로 최대 2회 재시도
//   - 미설정 채널은 건너뛰되 반드시 로그를 남김 (커버리지 감사용)

package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

// 재시도 가능 실패에 대한 추가 시도 횟수
const maxDeliveryRetries = 2

// DeliveryClient - 채널 클라이언트 공통 인터페이스 (internal/client의 각 채널이 구현)
type DeliveryClient interface {
	Channel() model.Channel
	IsConfigured() bool
	Send(ctx context.Context, alert model.Alert) model.DeliveryResult
}

// RouteResult - 채널 1개에 대한 최종 전송 결과
type RouteResult struct {
	Channel     model.Channel
	Succeeded   bool
	Attempts    int
	ErrorDetail string
}

// Router 구조체 정의
type Router struct {
	clients []DeliveryClient

	// initialBackoff: 재시도 간격의 시작값 (테스트에서 단축 가능)
	initialBackoff time.Duration
}

// Router 객체 생성
func NewRouter(clients []DeliveryClient) *Router {
	return &Router{
		clients:        clients,
		initialBackoff: 500 * time.Millisecond,
	}
}

// Route - 자격 있는 모든 설정된 채널로 동시 전송하고 시도된 채널별 결과를 반환
func (r *Router) Route(ctx context.Context, alert model.Alert) []RouteResult {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []RouteResult
	)

	for _, c := range r.clients {
		if !c.Channel().EligibleFor(alert.Severity) {
			log.Printf("[Router] channel %s not eligible for severity %s", c.Channel(), alert.Severity)
			continue
		}
		if !c.IsConfigured() {
			// 커버리지 감사를 위해 모든 알림마다 빠짐없이 기록
			log.Printf("[Router] channel skipped: not configured (channel=%s)", c.Channel())
			continue
		}

		wg.Add(1)
		go func(c DeliveryClient) {
			defer wg.Done()

			result := r.deliver(ctx, c, alert)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(c)
	}

	wg.Wait()
	return results
}

// deliver - 단일 채널 전송 (재시도 포함)
// retryable=false 실패는 즉시 확정, retryable=true 실패만 제한적으로 재시도
func (r *Router) deliver(ctx context.Context, c DeliveryClient, alert model.Alert) RouteResult {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initialBackoff

	result := RouteResult{Channel: c.Channel()}

	for attempt := 0; attempt <= maxDeliveryRetries; attempt++ {
		result.Attempts = attempt + 1

		delivery := c.Send(ctx, alert)
		if delivery.Succeeded {
			result.Succeeded = true
			result.ErrorDetail = ""
			log.Printf("[Router] delivered to %s (attempt=%d)", c.Channel(), result.Attempts)
			return result
		}

		result.ErrorDetail = delivery.ErrorDetail
		log.Printf("[Router] delivery to %s failed (attempt=%d, retryable=%v): %s",
			c.Channel(), result.Attempts, delivery.Retryable, delivery.ErrorDetail)

		if !delivery.Retryable {
			return result
		}

		if attempt < maxDeliveryRetries {
			select {
			case <-ctx.Done():
				result.ErrorDetail = "timeout"
				return result
			case <-time.After(policy.NextBackOff()):
			}
		}
	}

	return result
}
