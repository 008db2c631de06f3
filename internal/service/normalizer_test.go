package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

func TestNormalizeDirect(t *testing.T) {
	n := NewNormalizer("test-proj", false)

	tests := []struct {
		name         string
		raw          string
		wantSeverity model.Severity
		wantSource   string
		wantTitle    string
	}{
		{
			name:         "full-payload",
			raw:          `{"title":"High CPU","message":"CPU utilization 97%","severity":"critical","source":"cloudwatch"}`,
			wantSeverity: model.SeverityCritical,
			wantSource:   "cloudwatch",
			wantTitle:    "High CPU",
		},
		{
			name:         "severity-absent-inferred",
			raw:          `{"message":"service recovered and healthy"}`,
			wantSeverity: model.SeveritySuccess,
			wantSource:   "direct",
			wantTitle:    "service recovered and healthy",
		},
		{
			name:         "severity-null-coerced",
			raw:          `{"message":"plain note", "severity":null}`,
			wantSeverity: model.SeverityInfo,
			wantSource:   "direct",
			wantTitle:    "plain note",
		},
		{
			name:         "severity-unrecognized-coerced",
			raw:          `{"message":"plain note", "severity":"catastrophic"}`,
			wantSeverity: model.SeverityInfo,
			wantSource:   "direct",
			wantTitle:    "plain note",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert, err := n.Normalize([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if alert.Severity != tt.wantSeverity {
				t.Errorf("severity = %v, want %v", alert.Severity, tt.wantSeverity)
			}
			if alert.Source != tt.wantSource {
				t.Errorf("source = %q, want %q", alert.Source, tt.wantSource)
			}
			if alert.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", alert.Title, tt.wantTitle)
			}
			if alert.Timestamp.IsZero() {
				t.Error("timestamp must be set at normalization time")
			}
		})
	}
}

func TestNormalizeDirectMissingMessage(t *testing.T) {
	n := NewNormalizer("test-proj", false)

	_, err := n.Normalize([]byte(`{"title":"no body"}`))
	if err == nil {
		t.Fatal("expected error for missing message")
	}
}

func TestNormalizeTitleTruncation(t *testing.T) {
	n := NewNormalizer("test-proj", false)

	long := strings.Repeat("x", 200)
	alert, err := n.Normalize([]byte(`{"message":"` + long + `"}`))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(alert.Title) != titleDisplayLength {
		t.Errorf("title length = %d, want %d", len(alert.Title), titleDisplayLength)
	}
	if alert.Message != long {
		t.Error("message must not be truncated")
	}
}

func TestNormalizeTitleTruncationRuneBoundary(t *testing.T) {
	n := NewNormalizer("test-proj", false)

	// 멀티바이트 문자가 잘림 경계에 걸리는 본문
	long := strings.Repeat("x", titleDisplayLength-1) + "메모리 사용량 초과"
	alert, err := n.Normalize([]byte(`{"message":"` + long + `"}`))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !utf8.ValidString(alert.Title) {
		t.Errorf("title is not valid UTF-8: %q", alert.Title)
	}
	if len(alert.Title) > titleDisplayLength {
		t.Errorf("title length = %d, want <= %d", len(alert.Title), titleDisplayLength)
	}
	if !strings.HasPrefix(long, alert.Title) {
		t.Errorf("title %q is not a prefix of the message", alert.Title)
	}
}

func TestNormalizeEnvelope(t *testing.T) {
	n := NewNormalizer("test-proj", false)

	t.Run("valid-inner-json", func(t *testing.T) {
		raw := `{"Records":[{"EventSource":"aws:sns","Sns":{"Message":"{\"message\":\"disk usage at 92% on /data\",\"severity\":\"warning\"}"}}]}`
		alert, err := n.Normalize([]byte(raw))
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if alert.Severity != model.SeverityWarning {
			t.Errorf("severity = %v, want warning", alert.Severity)
		}
		if alert.Source != "sns" {
			t.Errorf("source = %q, want sns", alert.Source)
		}
	})

	t.Run("non-json-body-falls-back", func(t *testing.T) {
		raw := `{"Records":[{"EventSource":"aws:sns","Sns":{"Message":"plain text, not json"}}]}`
		alert, err := n.Normalize([]byte(raw))
		if err != nil {
			t.Fatalf("fallback must not return error, got %v", err)
		}
		if alert.Message != "plain text, not json" {
			t.Errorf("message = %q, want raw body", alert.Message)
		}
		if alert.Severity != model.SeverityInfo {
			t.Errorf("severity = %v, want info", alert.Severity)
		}
		if alert.Source != "envelope-fallback" {
			t.Errorf("source = %q, want envelope-fallback", alert.Source)
		}
	})
}

func TestNormalizeAlarm(t *testing.T) {
	n := NewNormalizer("test-proj", false)

	tests := []struct {
		name         string
		raw          string
		wantSeverity model.Severity
	}{
		{
			name:         "alarm-state",
			raw:          `{"AlarmName":"cpu-utilization-high","NewStateValue":"ALARM","NewStateReason":"threshold crossed"}`,
			wantSeverity: model.SeverityError,
		},
		{
			name:         "alarm-state-critical-name",
			raw:          `{"AlarmName":"critical-disk-full","NewStateValue":"ALARM","NewStateReason":"threshold crossed"}`,
			wantSeverity: model.SeverityCritical,
		},
		{
			name:         "ok-state-audit",
			raw:          `{"AlarmName":"cpu-utilization-high","NewStateValue":"OK","NewStateReason":"back to normal"}`,
			wantSeverity: model.SeverityInfo,
		},
		{
			name:         "insufficient-data-audit",
			raw:          `{"AlarmName":"cpu-utilization-high","NewStateValue":"INSUFFICIENT_DATA","NewStateReason":"no data"}`,
			wantSeverity: model.SeverityInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert, err := n.Normalize([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if alert.Severity != tt.wantSeverity {
				t.Errorf("severity = %v, want %v", alert.Severity, tt.wantSeverity)
			}
			if alert.Source != "cloudwatch" {
				t.Errorf("source = %q, want cloudwatch", alert.Source)
			}
		})
	}
}

func TestNormalizeAlarmSuppressed(t *testing.T) {
	n := NewNormalizer("test-proj", true)

	alert, err := n.Normalize([]byte(`{"AlarmName":"cpu-utilization-high","NewStateValue":"OK","NewStateReason":"ok"}`))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if alert != nil {
		t.Fatal("OK transition must be suppressed when configured")
	}
}

func TestFailureAlert(t *testing.T) {
	n := NewNormalizer("test-proj", false)

	raw := []byte(`{{{not json`)
	_, err := n.Normalize(raw)
	if err == nil {
		t.Fatal("expected error for unparseable event")
	}

	alert := n.FailureAlert(raw, err)
	if alert.Severity != model.SeverityWarning {
		t.Errorf("failure alert severity = %v, want warning", alert.Severity)
	}
	if alert.Source != "normalizer" {
		t.Errorf("failure alert source = %q, want normalizer", alert.Source)
	}
	if !strings.Contains(alert.Message, "not json") {
		t.Error("failure alert must carry the original payload snippet")
	}
}

func TestInferSeverity(t *testing.T) {
	tests := []struct {
		message string
		want    model.Severity
	}{
		{"service is down", model.SeverityCritical},
		{"deployment failed", model.SeverityCritical},
		{"an error occurred", model.SeverityError},
		{"performance degraded", model.SeverityWarning},
		{"backup resolved successfully", model.SeveritySuccess},
		{"routine heartbeat", model.SeverityInfo},
	}

	for _, tt := range tests {
		if got := InferSeverity(tt.message); got != tt.want {
			t.Errorf("InferSeverity(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
