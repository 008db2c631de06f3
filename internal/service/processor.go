// 이벤트 1건 처리 오케스트레이션
//
// 처리 흐름:
//  1. Normalize (실패해도 버리지 않고 실패 자체를 warning 알림으로 변환)
//  2. 두 분기를 동시에 실행 (서로 독립, 순서 보장 없음):
//     - Classify + Dispatch: 복구 분기
//     - Route: 원본 알림 전송 분기
//  3. 두 분기 완료(또는 타임아웃)까지 대기 후 구조화된 결과 반환
//  4. 복구 결과에 대한 후속 알림은 별도 이벤트로 best-effort 전송
//
// 알림 전송 실패가 복구를 막지 않고, 복구 실패가 알림 전송을 막지 않음

package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

// auditSink - 감사 저장소 인터페이스 (internal/db.Postgres가 구현, nil이면 저장 생략)
type auditSink interface {
	SaveOutcome(ctx context.Context, o model.RemediationOutcome) error
	SaveDelivery(ctx context.Context, r model.DeliveryRecord) error
}

// Processor 구조체 정의
type Processor struct {
	normalizer *Normalizer
	classifier *Classifier
	dispatcher *Dispatcher
	router     *Router
	audit      auditSink

	invocationTimeout time.Duration
	project           string
}

// Processor 객체 생성
// audit은 nil 허용 (DB 없이 기동한 경우)
func NewProcessor(normalizer *Normalizer, classifier *Classifier, dispatcher *Dispatcher, router *Router, audit auditSink, invocationTimeout time.Duration, project string) *Processor {
	return &Processor{
		normalizer:        normalizer,
		classifier:        classifier,
		dispatcher:        dispatcher,
		router:            router,
		audit:             audit,
		invocationTimeout: invocationTimeout,
		project:           project,
	}
}

// Process - raw JSON 이벤트 1건을 끝까지 처리
// 불량 입력은 결과 객체로 표현되며 에러로 전파되지 않음
func (p *Processor) Process(ctx context.Context, raw []byte) model.ProcessResult {
	ctx, cancel := context.WithTimeout(ctx, p.invocationTimeout)
	defer cancel()

	alert, err := p.normalizer.Normalize(raw)
	if err != nil {
		// 파싱 실패를 스스로 보고하는 알림으로 강등 (이벤트 유실 금지)
		log.Printf("[Processor] normalization failed: %v, reporting as self-alert", err)
		failure := p.normalizer.FailureAlert(raw, err)
		alert = &failure
	}
	if alert == nil {
		// 설정에 의해 생략된 감사 알림
		return model.ProcessResult{
			AlertProcessed: false,
			Notifications:  []model.ChannelResult{},
		}
	}

	var (
		outcome      *model.RemediationOutcome
		routeResults []RouteResult
		done         = make(chan struct{}, 2)
	)

	// 복구 분기
	go func() {
		defer func() { done <- struct{}{} }()
		outcome = p.remediate(ctx, *alert)
	}()

	// 알림 분기
	go func() {
		defer func() { done <- struct{}{} }()
		routeResults = p.router.Route(ctx, *alert)
		p.recordDeliveries(*alert, routeResults)
	}()

	<-done
	<-done

	notifications := make([]model.ChannelResult, 0, len(routeResults))
	for _, r := range routeResults {
		notifications = append(notifications, model.ChannelResult{
			Channel:   r.Channel,
			Succeeded: r.Succeeded,
		})
	}

	return model.ProcessResult{
		AlertProcessed: true,
		Alert:          alert,
		Remediation:    outcome,
		Notifications:  notifications,
	}
}

// remediate - 분류 후 디스패치, 결과 감사 기록 및 후속 알림까지 수행
func (p *Processor) remediate(ctx context.Context, alert model.Alert) *model.RemediationOutcome {
	remediationType := p.classifier.Classify(alert)
	if remediationType == model.RemediationNone {
		log.Printf("[Processor] no remediation classified (source=%s, title=%s)", alert.Source, alert.Title)
		return nil
	}

	outcome := p.dispatcher.Dispatch(ctx, remediationType, alert)

	if p.audit != nil {
		if err := p.audit.SaveOutcome(ctx, outcome); err != nil {
			log.Printf("[Processor] failed to save outcome to audit store: %v", err)
		}
	}

	// 후속 알림은 원본 알림 전송과 독립적인 별도 이벤트
	p.notifyOutcome(ctx, alert, outcome)

	return &outcome
}

// notifyOutcome - 복구 결과 요약 알림 (best-effort)
func (p *Processor) notifyOutcome(ctx context.Context, alert model.Alert, outcome model.RemediationOutcome) {
	summary := model.Alert{
		Source:    alert.Source,
		Timestamp: time.Now(),
		Metadata: map[string]string{
			"remediation_id": outcome.ID,
		},
	}

	switch {
	case !outcome.Attempted:
		summary.Severity = model.SeverityInfo
		summary.Title = p.project + ": remediation skipped"
		summary.Message = "Remediation " + string(outcome.Type) + " skipped for " + alert.Source + ": already in progress"
	case outcome.Succeeded:
		summary.Severity = model.SeveritySuccess
		summary.Title = p.project + ": remediation succeeded"
		summary.Message = "Remediation " + string(outcome.Type) + " completed successfully for " + alert.Source
	default:
		summary.Severity = model.SeverityError
		summary.Title = p.project + ": remediation failed"
		summary.Message = "Remediation " + string(outcome.Type) + " failed for " + alert.Source + ": " + outcome.ErrorDetail
	}

	results := p.router.Route(ctx, summary)
	p.recordDeliveries(summary, results)
}

// recordDeliveries - 채널별 전송 결과를 감사 저장소에 기록
func (p *Processor) recordDeliveries(alert model.Alert, results []RouteResult) {
	if p.audit == nil {
		return
	}

	// 원래 요청이 타임아웃된 뒤에도 기록은 남아야 하므로 별도 context 사용
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, r := range results {
		record := model.DeliveryRecord{
			ID:          uuid.NewString(),
			Channel:     r.Channel,
			AlertTitle:  alert.Title,
			Source:      alert.Source,
			Severity:    alert.Severity,
			Succeeded:   r.Succeeded,
			Attempts:    r.Attempts,
			ErrorDetail: r.ErrorDetail,
			CreatedAt:   time.Now(),
		}
		if err := p.audit.SaveDelivery(ctx, record); err != nil {
			log.Printf("[Processor] failed to save delivery record: %v", err)
		}
	}
}
