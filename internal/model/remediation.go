// Remediation 타입 및 실행 결과 구조체 정의

package model

import "time"

// RemediationType - 복구 동작 종류 (닫힌 집합)
// none은 매칭되는 규칙이 없는 정상 종료 상태이며 에러가 아님
type RemediationType string

const (
	RemediationRestartService RemediationType = "restart_service"
	RemediationFixDiskSpace   RemediationType = "fix_disk_space"
	RemediationFixMemory      RemediationType = "fix_memory"
	RemediationRedeployApp    RemediationType = "redeploy_app"
	RemediationScaleInstance  RemediationType = "scale_instance"
	RemediationHealthCheck    RemediationType = "health_check"
	RemediationNone           RemediationType = "none"
)

// ParseRemediationType - 문자열을 RemediationType으로 변환
// metadata 오버라이드 값 검증에 사용, 미인식 값은 (none, false)
func ParseRemediationType(s string) (RemediationType, bool) {
	switch RemediationType(s) {
	case RemediationRestartService, RemediationFixDiskSpace, RemediationFixMemory,
		RemediationRedeployApp, RemediationScaleInstance, RemediationHealthCheck,
		RemediationNone:
		return RemediationType(s), true
	}
	return RemediationNone, false
}

// Mutating - 대상 시스템 상태를 변경하는 동작인지 여부
// health_check와 none은 상태를 변경하지 않음
func (t RemediationType) Mutating() bool {
	switch t {
	case RemediationHealthCheck, RemediationNone:
		return false
	}
	return true
}

// RemediationOutcome - 디스패치 1회당 생성되는 불변 결과 레코드
// 완료 후에는 수정하지 않으며 로그/감사 저장소로만 내보냄
type RemediationOutcome struct {
	ID          string          `json:"id"`
	Type        RemediationType `json:"type"`
	Source      string          `json:"source"`
	Attempted   bool            `json:"attempted"`
	Succeeded   bool            `json:"succeeded"`
	ErrorDetail string          `json:"errorDetail,omitempty"`
	DurationMs  int64           `json:"durationMs"`
	CreatedAt   time.Time       `json:"createdAt"`
}
