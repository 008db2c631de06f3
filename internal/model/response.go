// API 응답 구조체 정의

package model

// ProcessResult - 이벤트 1건 처리에 대한 구조화된 호출 결과
// 원본 입력이 불량이어도 항상 이 형태로 응답 (설정 문제일 때만 하드 실패)
type ProcessResult struct {
	AlertProcessed bool                `json:"alertProcessed"`
	Alert          *Alert              `json:"alert,omitempty"`
	Remediation    *RemediationOutcome `json:"remediation"`
	Notifications  []ChannelResult     `json:"notifications"`
}

// ErrorResponse - 공통 에러 응답
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// OutcomeListResponse - 복구 결과 감사 목록 응답
type OutcomeListResponse struct {
	Status string               `json:"status"`
	Data   []RemediationOutcome `json:"data"`
}

// DeliveryListResponse - 전송 기록 감사 목록 응답
type DeliveryListResponse struct {
	Status string           `json:"status"`
	Data   []DeliveryRecord `json:"data"`
}
