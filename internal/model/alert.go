// 시스템 전역에서 사용하는 정규화된 Alert 구조체 및 Severity 정의
// handler, service, client 레이어에서 공통으로 사용하기 때문에 model 레이어에 별도로 정의

package model

import "time"

// Severity - 알림 심각도 (5단계 고정)
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
)

// severityDisplay - 채널 렌더링에 사용하는 색상/이모지/PagerDuty 레벨 테이블
// 원본 알람 시스템의 고정 테이블과 동일하게 유지
type severityDisplay struct {
	Color     string
	Emoji     string
	PagerDuty string
}

var severityTable = map[Severity]severityDisplay{
	SeverityCritical: {Color: "#dc3545", Emoji: "🚨", PagerDuty: "critical"},
	SeverityError:    {Color: "#fd7e14", Emoji: "❌", PagerDuty: "error"},
	SeverityWarning:  {Color: "#ffc107", Emoji: "⚠️", PagerDuty: "warning"},
	SeverityInfo:     {Color: "#17a2b8", Emoji: "ℹ️", PagerDuty: "info"},
	SeveritySuccess:  {Color: "#28a745", Emoji: "✅", PagerDuty: "info"},
}

// ParseSeverity - 입력 문자열을 Severity로 변환
// 인식 불가능한 값은 info로 강제 변환 (두 번째 반환값이 false)
// 정규화 이후 Severity는 반드시 5개 값 중 하나임을 보장
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityCritical, SeverityError, SeverityWarning, SeverityInfo, SeveritySuccess:
		return Severity(s), true
	}
	return SeverityInfo, false
}

// Color - 채널 공통 강조 색상 (hex)
func (s Severity) Color() string {
	return severityTable[s].Color
}

// Emoji - 채널 공통 아이콘
func (s Severity) Emoji() string {
	return severityTable[s].Emoji
}

// PagerDutyLevel - PagerDuty events v2 API가 허용하는 severity 값
func (s Severity) PagerDutyLevel() string {
	return severityTable[s].PagerDuty
}

// IsPageworthy - PagerDuty 호출 대상 여부 (critical, error만 호출)
func (s Severity) IsPageworthy() bool {
	return s == SeverityCritical || s == SeverityError
}

// Alert - 정규화된 단일 알림
// 수신 이벤트(직접 호출, 엔벨로프, 알람 상태 변경)를 Normalizer가 이 형태로 변환
type Alert struct {
	// Title: 표시용 제목 (없으면 message 앞부분으로 대체)
	Title string `json:"title"`

	// Message: 알림 본문 (분류 및 표시에 사용, 필수)
	Message string `json:"message"`

	// Severity: 정규화 이후 항상 5개 값 중 하나
	Severity Severity `json:"severity"`

	// Source: 발생 시스템 식별자 (예: "cloudwatch", "direct")
	Source string `json:"source"`

	// Metadata: 불투명 key/value (remediation_type 오버라이드 포함 가능)
	Metadata map[string]string `json:"metadata,omitempty"`

	// Timestamp: 정규화 시각 (입력에 없으면 정규화 시점으로 설정)
	Timestamp time.Time `json:"timestamp"`
}

// MetaRemediationOverride - metadata에서 분류 오버라이드로 인정하는 키
const MetaRemediationOverride = "remediation_type"

// MetaAlarmState - 알람 상태 전환 알림에 Normalizer가 기록하는 상태 키
// ALARM이 아닌 전환(OK, INSUFFICIENT_DATA)은 복구 대상이 아님
const MetaAlarmState = "new_state"
