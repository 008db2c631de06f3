// Remediation 디스패치 비즈니스 로직
//
// 처리 흐름:
//  1. (타입, 소스) 키 잠금 획득 시도 - 실패 시 "이미 진행 중"으로 건너뜀 (에러 아님)
//  2. health_check는 상태 조회만 수행 (상태 변경 없음)
//  3. 그 외 타입은 러너 호출, 실행 시간은 타임아웃으로 제한
//  4. 디스패치 1회당 RemediationOutcome 1건 생성 (타임아웃 시 errorDetail="timeout")
//
// 자동 재시도는 하지 않음: 복구 동작은 멱등이 보장되지 않으며
// 재시도 정책은 외부 오케스트레이션(알람 재평가 주기)의 소관

package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

// ActionInvoker - 복구 동작 실행자 인터페이스 (internal/client.RunnerClient가 구현)
type ActionInvoker interface {
	Invoke(ctx context.Context, remediationType model.RemediationType, alert model.Alert) error
	Probe(ctx context.Context) error
}

// Dispatcher 구조체 정의
type Dispatcher struct {
	invoker  ActionInvoker
	locker   Locker
	timeout  time.Duration
	lockTTL  time.Duration
	lockWait time.Duration
}

// Dispatcher 객체 생성
func NewDispatcher(invoker ActionInvoker, locker Locker, timeout, lockTTL, lockWait time.Duration) *Dispatcher {
	return &Dispatcher{
		invoker:  invoker,
		locker:   locker,
		timeout:  timeout,
		lockTTL:  lockTTL,
		lockWait: lockWait,
	}
}

// Dispatch - 분류된 RemediationType 1건을 실행하고 결과 레코드를 반환
// none 타입은 호출측에서 걸러지며 이 메서드로 오지 않음
func (d *Dispatcher) Dispatch(ctx context.Context, remediationType model.RemediationType, alert model.Alert) model.RemediationOutcome {
	outcome := model.RemediationOutcome{
		ID:        uuid.NewString(),
		Type:      remediationType,
		Source:    alert.Source,
		CreatedAt: time.Now(),
	}

	key := string(remediationType) + ":" + alert.Source

	// 잠금 획득은 짧은 상한 내에 끝나야 함 - 초과 시 차단 대신 건너뜀 (fail-safe)
	lockCtx, cancel := context.WithTimeout(ctx, d.lockWait)
	acquired, err := d.locker.TryAcquire(lockCtx, key, d.lockTTL)
	cancel()

	if err != nil {
		log.Printf("[Dispatcher] lock acquire failed for %s: %v, skipping remediation", key, err)
		outcome.ErrorDetail = "lock unavailable"
		return outcome
	}
	if !acquired {
		log.Printf("[Dispatcher] remediation already in progress for %s, skipping", key)
		outcome.ErrorDetail = "lock unavailable"
		return outcome
	}

	defer func() {
		// 해제는 원래 요청이 타임아웃되어도 시도되어야 하므로 별도 context 사용
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.locker.Release(releaseCtx, key); err != nil {
			log.Printf("[Dispatcher] lock release failed for %s: %v", key, err)
		}
	}()

	outcome.Attempted = true
	started := time.Now()

	runCtx, cancelRun := context.WithTimeout(ctx, d.timeout)
	defer cancelRun()

	if remediationType == model.RemediationHealthCheck {
		// 상태 조회만 수행, 프로브 자체가 실패하지 않는 한 성공
		err = d.invoker.Probe(runCtx)
	} else {
		err = d.invoker.Invoke(runCtx, remediationType, alert)
	}

	outcome.DurationMs = time.Since(started).Milliseconds()

	switch {
	case err == nil:
		outcome.Succeeded = true
		log.Printf("[Dispatcher] remediation %s succeeded (source=%s, duration=%dms)", remediationType, alert.Source, outcome.DurationMs)
	case errors.Is(err, context.DeadlineExceeded):
		outcome.ErrorDetail = "timeout"
		log.Printf("[Dispatcher] remediation %s timed out (source=%s)", remediationType, alert.Source)
	default:
		outcome.ErrorDetail = err.Error()
		log.Printf("[Dispatcher] remediation %s failed (source=%s): %v", remediationType, alert.Source, err)
	}

	return outcome
}
