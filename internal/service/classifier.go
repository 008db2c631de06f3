// Alert -> RemediationType 분류 비즈니스 로직
//
// 순서 있는 규칙 목록을 소문자 본문에 대해 평가, 첫 매칭이 승리:
//   상태 게이트(ALARM 전환만 허용) > 오버라이드 > 디스크 > 메모리 > 서비스 상태 > 스케일링 > none
//
// 순수 함수: 같은 Alert에는 항상 같은 결과 (시계/난수 의존 없음)

package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/config"
	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

// Rule - 분류 규칙 1건
type Rule struct {
	Name string

	// MatchAll: 본문에 모두 포함되어야 하는 키워드
	MatchAll []string

	// MatchAny: 하나라도 포함되면 충족
	MatchAny []string

	// Severities: 비어 있지 않으면 나열된 severity에서만 매칭
	Severities []model.Severity

	Outcome model.RemediationType
}

// Classifier 구조체 정의
type Classifier struct {
	rules []Rule
}

// defaultRules - 내장 기본 규칙
// 키워드 목록은 휴리스틱이므로 yaml 정책 파일로 전체 교체 가능
func defaultRules() []Rule {
	return []Rule{
		{
			Name:     "disk-exhaustion",
			MatchAny: []string{"disk", "no space left"},
			Outcome:  model.RemediationFixDiskSpace,
		},
		{
			Name:     "memory-exhaustion",
			MatchAny: []string{"memory", "oom"},
			Outcome:  model.RemediationFixMemory,
		},
		{
			Name:     "unhealthy-service",
			MatchAny: []string{"unhealthy", "target"},
			Outcome:  model.RemediationRestartService,
		},
		{
			Name:       "cpu-pressure",
			MatchAny:   []string{"cpu"},
			Severities: []model.Severity{model.SeverityCritical, model.SeverityError},
			Outcome:    model.RemediationScaleInstance,
		},
		{
			Name:     "health-probe",
			MatchAny: []string{"health check"},
			Outcome:  model.RemediationHealthCheck,
		},
	}
}

// Classifier 객체 생성 (내장 기본 규칙)
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules()}
}

// NewClassifierFromConfig - yaml 정책 파일 규칙으로 Classifier 생성
// 파일 규칙은 기본 규칙을 대체함 (병합하지 않음)
func NewClassifierFromConfig(configs []config.RuleConfig) (*Classifier, error) {
	rules := make([]Rule, 0, len(configs))
	for i, rc := range configs {
		outcome, ok := model.ParseRemediationType(rc.Outcome)
		if !ok {
			return nil, fmt.Errorf("rule %d (%s): unknown outcome %q", i, rc.Name, rc.Outcome)
		}

		var severities []model.Severity
		for _, s := range rc.Severities {
			severity, ok := model.ParseSeverity(s)
			if !ok {
				return nil, fmt.Errorf("rule %d (%s): unknown severity %q", i, rc.Name, s)
			}
			severities = append(severities, severity)
		}

		rules = append(rules, Rule{
			Name:       rc.Name,
			MatchAll:   lowerAll(rc.MatchAll),
			MatchAny:   lowerAll(rc.MatchAny),
			Severities: severities,
			Outcome:    outcome,
		})
	}
	return &Classifier{rules: rules}, nil
}

// Classify - Alert를 RemediationType으로 분류
// metadata의 remediation_type 오버라이드가 항상 추론보다 우선
func (c *Classifier) Classify(alert model.Alert) model.RemediationType {
	// 복구는 ALARM 상태 전환에만 허용됨
	// OK/INSUFFICIENT_DATA 전환은 감사 알림일 뿐이며, 회복 사유 본문에
	// 지표 키워드("memory utilization 45%" 등)가 있어도 복구를 트리거하면 안 됨
	if state, ok := alert.Metadata[model.MetaAlarmState]; ok && state != model.AlarmStateAlarm {
		log.Printf("[Classifier] alarm state %s is not ALARM, skipping remediation", state)
		return model.RemediationNone
	}

	if override, ok := alert.Metadata[model.MetaRemediationOverride]; ok {
		if t, valid := model.ParseRemediationType(override); valid {
			return t
		}
		// 미인식 오버라이드는 무시하고 추론으로 진행 (로그만 남김)
		log.Printf("[Classifier] ignoring unknown remediation_type override %q", override)
	}

	text := strings.ToLower(alert.Message + " " + alert.Source)

	for _, rule := range c.rules {
		if rule.matches(text, alert.Severity) {
			return rule.Outcome
		}
	}
	return model.RemediationNone
}

func (r Rule) matches(text string, severity model.Severity) bool {
	if len(r.Severities) > 0 {
		found := false
		for _, s := range r.Severities {
			if s == severity {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for _, w := range r.MatchAll {
		if !strings.Contains(text, w) {
			return false
		}
	}

	if len(r.MatchAny) > 0 {
		for _, w := range r.MatchAny {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
	return len(r.MatchAll) > 0
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
