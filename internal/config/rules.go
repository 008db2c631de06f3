// 분류 규칙 yaml 정책 파일 로딩
//
// 키워드 목록은 고정 계약이 아니라 교체 가능한 정책이므로 규칙을 데이터로 취급:
// 파일이 지정되면 내장 기본 규칙 전체를 파일 내용으로 대체

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// RuleConfig - 분류 규칙 1건
// 규칙은 선언 순서대로 평가되며 첫 매칭이 승리
type RuleConfig struct {
	Name string `yaml:"name"`

	// MatchAll: 소문자 본문에 모두 포함되어야 하는 키워드
	MatchAll []string `yaml:"match_all"`

	// MatchAny: 하나라도 포함되면 충족 (MatchAll과 함께 쓰면 둘 다 만족해야 함)
	MatchAny []string `yaml:"match_any"`

	// Severities: 비어 있지 않으면 나열된 severity에서만 매칭
	Severities []string `yaml:"severities"`

	// Outcome: 매칭 시 반환할 RemediationType 문자열
	Outcome string `yaml:"outcome"`
}

type rulesFile struct {
	Rules []RuleConfig `yaml:"rules"`
}

// LoadRules - yaml 정책 파일에서 규칙 목록을 읽음
func LoadRules(path string) ([]RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	for i, r := range f.Rules {
		if r.Outcome == "" {
			return nil, fmt.Errorf("rule %d (%s): outcome is required", i, r.Name)
		}
		if len(r.MatchAll) == 0 && len(r.MatchAny) == 0 {
			return nil, fmt.Errorf("rule %d (%s): match_all or match_any is required", i, r.Name)
		}
	}

	return f.Rules, nil
}
