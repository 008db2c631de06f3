// 수신 이벤트 정규화 비즈니스 로직
//
// 세 가지 입력 형태를 하나의 Alert로 변환:
//  1. 직접 호출 페이로드 (message 필수)
//  2. 전송 엔벨로프 (Records[].Sns.Message 내부 JSON 파싱, 실패 시 원문 폴백)
//  3. 알람 상태 변경 (ALARM -> critical/error, OK/INSUFFICIENT_DATA -> info 감사 알림)
//
// 파싱 불가능한 이벤트도 버리지 않음: 파싱 실패 자체를 warning 알림으로 보고

package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

// 제목이 없을 때 message에서 잘라 쓰는 표시 길이
const titleDisplayLength = 80

var (
	// ErrInvalidInput - 직접 호출 페이로드에 message가 없음
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedEnvelope - 엔벨로프 본문이 JSON으로 파싱되지 않음 (폴백으로 복구됨)
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// Normalizer 구조체 정의
type Normalizer struct {
	project string

	// suppressOK: true면 OK/INSUFFICIENT_DATA 전환의 감사 알림을 생략
	suppressOK bool

	// now: 테스트에서 시각 고정용
	now func() time.Time
}

// Normalizer 객체 생성
func NewNormalizer(project string, suppressOK bool) *Normalizer {
	return &Normalizer{
		project:    project,
		suppressOK: suppressOK,
		now:        time.Now,
	}
}

// Normalize - raw JSON 이벤트를 Alert로 변환
// 반환값 (nil, nil)은 설정에 의해 감사 알림이 생략된 경우
func (n *Normalizer) Normalize(raw []byte) (*model.Alert, error) {
	var event model.InboundEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 형태 판별 순서: 엔벨로프 > 알람 상태 변경 > 직접 호출
	switch {
	case len(event.Records) > 0:
		return n.normalizeEnvelope(event.Records)
	case event.AlarmName != "":
		return n.normalizeAlarm(event)
	default:
		return n.normalizeDirect(event, "direct")
	}
}

// FailureAlert - 정규화 실패를 스스로 보고하는 warning 알림 생성
// 이벤트를 조용히 버리는 일은 없어야 하므로 실패 자체가 알림이 됨
func (n *Normalizer) FailureAlert(raw []byte, cause error) model.Alert {
	snippet := truncate(string(raw), titleDisplayLength)

	return model.Alert{
		Title:     n.project + ": event normalization failed",
		Message:   fmt.Sprintf("failed to normalize inbound event: %v\npayload: %s", cause, snippet),
		Severity:  model.SeverityWarning,
		Source:    "normalizer",
		Timestamp: n.now(),
	}
}

// normalizeDirect - 직접 호출 형태 처리
func (n *Normalizer) normalizeDirect(event model.InboundEvent, defaultSource string) (*model.Alert, error) {
	if event.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	severity, recognized := model.ParseSeverity(event.Severity)
	if event.Severity == "" {
		// severity 미지정: 본문 키워드로 추론
		severity = InferSeverity(event.Message)
	} else if !recognized {
		// 미인식 값은 info로 강제하되 반드시 로그로 남김 (조용한 유실 금지)
		log.Printf("[Normalizer] unrecognized severity %q coerced to info", event.Severity)
	}

	title := event.Title
	if title == "" {
		title = truncate(event.Message, titleDisplayLength)
	}

	source := event.Source
	if source == "" {
		source = defaultSource
	}

	return &model.Alert{
		Title:     title,
		Message:   event.Message,
		Severity:  severity,
		Source:    source,
		Metadata:  event.Metadata,
		Timestamp: n.now(),
	}, nil
}

// normalizeEnvelope - 엔벨로프 형태 처리
// 본문이 직접 호출 형태의 JSON이면 그대로 정규화하고,
// 아니면 원문 전체를 message로 하는 info 알림으로 폴백 (알림을 버리지 않음)
func (n *Normalizer) normalizeEnvelope(records []model.EventRecord) (*model.Alert, error) {
	var body string
	for _, record := range records {
		if record.Sns.Message != "" {
			body = record.Sns.Message
			break
		}
	}
	if body == "" {
		return nil, fmt.Errorf("%w: envelope contains no message body", ErrMalformedEnvelope)
	}

	var inner model.InboundEvent
	if err := json.Unmarshal([]byte(body), &inner); err == nil && inner.Message != "" {
		return n.normalizeDirect(inner, "sns")
	}

	log.Printf("[Normalizer] envelope body is not valid JSON, falling back to raw text")
	return &model.Alert{
		Title:     truncate(body, titleDisplayLength),
		Message:   body,
		Severity:  model.SeverityInfo,
		Source:    "envelope-fallback",
		Timestamp: n.now(),
	}, nil
}

// normalizeAlarm - 알람 상태 변경 형태 처리
func (n *Normalizer) normalizeAlarm(event model.InboundEvent) (*model.Alert, error) {
	severity := model.SeverityInfo

	switch event.NewStateValue {
	case model.AlarmStateAlarm:
		// 알람 이름에 critical이 포함되면 critical, 아니면 error
		if strings.Contains(strings.ToLower(event.AlarmName), "critical") {
			severity = model.SeverityCritical
		} else {
			severity = model.SeverityError
		}
	case model.AlarmStateOK, model.AlarmStateInsufficientData:
		// 감사 추적용 info 알림 (설정으로 생략 가능)
		if n.suppressOK {
			log.Printf("[Normalizer] suppressed %s transition for alarm %s", event.NewStateValue, event.AlarmName)
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown alarm state %q", ErrInvalidInput, event.NewStateValue)
	}

	return &model.Alert{
		Title:    "Alarm: " + event.AlarmName,
		Message:  fmt.Sprintf("State: %s\nReason: %s", event.NewStateValue, event.NewStateReason),
		Severity: severity,
		Source:   "cloudwatch",
		Metadata: map[string]string{
			"alarm_name":         event.AlarmName,
			model.MetaAlarmState: event.NewStateValue,
		},
		Timestamp: n.now(),
	}, nil
}

// InferSeverity - 본문 키워드 기반 severity 추론
// severity가 없는 엔벨로프 본문에만 사용
func InferSeverity(message string) model.Severity {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "critical", "down", "failed", "failure"):
		return model.SeverityCritical
	case containsAny(lower, "error", "problem", "issue"):
		return model.SeverityError
	case containsAny(lower, "warning", "warn", "degraded"):
		return model.SeverityWarning
	case containsAny(lower, "success", "resolved", "recovered", "healthy"):
		return model.SeveritySuccess
	}
	return model.SeverityInfo
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// truncate - 바이트 상한으로 자르되 멀티바이트 문자를 중간에서 쪼개지 않음
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
