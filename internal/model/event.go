// 수신 이벤트 페이로드 구조체 정의
// Normalizer가 세 가지 입력 형태를 구분할 때 사용
//
// 세 가지 입력 형태:
//   - 직접 호출: {title, message, severity, source, metadata}
//   - 전송 엔벨로프: {Records: [{EventSource: "aws:sns", Sns: {Subject, Message}}]}
//     Message 본문은 그 자체로 직접 호출 형태의 JSON 문자열이어야 함
//   - 알람 상태 변경: {AlarmName, NewStateValue, NewStateReason}

package model

// InboundEvent - 수신 이벤트 모든 형태를 한 번에 받는 구조체
// 어떤 필드가 채워졌는지로 형태를 판별 (Records > AlarmName > message 순)
type InboundEvent struct {
	// 직접 호출 형태
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Severity string            `json:"severity"`
	Source   string            `json:"source"`
	Metadata map[string]string `json:"metadata"`

	// 엔벨로프 형태
	Records []EventRecord `json:"Records"`

	// 알람 상태 변경 형태
	AlarmName        string `json:"AlarmName"`
	AlarmDescription string `json:"AlarmDescription"`
	NewStateValue    string `json:"NewStateValue"`
	NewStateReason   string `json:"NewStateReason"`
}

// EventRecord - 엔벨로프 내 개별 레코드
type EventRecord struct {
	EventSource string      `json:"EventSource"`
	Sns         TopicRecord `json:"Sns"`
}

// TopicRecord - 토픽 레코드 본문
// Message는 불투명 문자열이며 Normalizer가 내부 JSON 파싱을 시도
type TopicRecord struct {
	Subject string `json:"Subject"`
	Message string `json:"Message"`
}

// 알람 상태 값
const (
	AlarmStateAlarm            = "ALARM"
	AlarmStateOK               = "OK"
	AlarmStateInsufficientData = "INSUFFICIENT_DATA"
)
