// 알림 채널 및 전송 결과 구조체 정의

package model

import "time"

// Channel - 알림 전송 채널 (닫힌 집합)
type Channel string

const (
	ChannelSlack     Channel = "slack"
	ChannelDiscord   Channel = "discord"
	ChannelTeams     Channel = "teams"
	ChannelPagerDuty Channel = "pagerduty"
	ChannelTopic     Channel = "sns"
	ChannelEmail     Channel = "email"
)

// AllChannels - 라우터가 순회하는 채널 전체 목록 (순서 고정)
var AllChannels = []Channel{
	ChannelSlack,
	ChannelDiscord,
	ChannelTeams,
	ChannelPagerDuty,
	ChannelTopic,
	ChannelEmail,
}

// EligibleFor - severity별 채널 자격 테이블
// PagerDuty는 critical/error에만 자격이 있고 나머지 채널은 모든 severity에 자격이 있음
func (c Channel) EligibleFor(severity Severity) bool {
	if c == ChannelPagerDuty {
		return severity.IsPageworthy()
	}
	return true
}

// DeliveryResult - 단일 채널 전송 시도 결과
// Retryable이 true인 실패만 라우터가 제한적으로 재시도
type DeliveryResult struct {
	Succeeded   bool   `json:"succeeded"`
	Retryable   bool   `json:"retryable"`
	ErrorDetail string `json:"errorDetail,omitempty"`
}

// ChannelResult - 호출 결과 응답에 포함되는 채널별 최종 결과
type ChannelResult struct {
	Channel   Channel `json:"channel"`
	Succeeded bool    `json:"succeeded"`
}

// DeliveryRecord - 감사 저장소에 남기는 채널별 전송 기록
type DeliveryRecord struct {
	ID          string    `json:"id"`
	Channel     Channel   `json:"channel"`
	AlertTitle  string    `json:"alertTitle"`
	Source      string    `json:"source"`
	Severity    Severity  `json:"severity"`
	Succeeded   bool      `json:"succeeded"`
	Attempts    int       `json:"attempts"`
	ErrorDetail string    `json:"errorDetail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
