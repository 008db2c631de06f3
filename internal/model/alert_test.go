package model

import "testing"

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       Severity
		recognized bool
	}{
		{name: "critical", input: "critical", want: SeverityCritical, recognized: true},
		{name: "error", input: "error", want: SeverityError, recognized: true},
		{name: "warning", input: "warning", want: SeverityWarning, recognized: true},
		{name: "info", input: "info", want: SeverityInfo, recognized: true},
		{name: "success", input: "success", want: SeveritySuccess, recognized: true},
		{name: "empty-coerced", input: "", want: SeverityInfo, recognized: false},
		{name: "unknown-coerced", input: "catastrophic", want: SeverityInfo, recognized: false},
		{name: "case-sensitive", input: "CRITICAL", want: SeverityInfo, recognized: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, recognized := ParseSeverity(tt.input)
			if got != tt.want || recognized != tt.recognized {
				t.Fatalf("ParseSeverity(%q) = (%v, %v), want (%v, %v)",
					tt.input, got, recognized, tt.want, tt.recognized)
			}
		})
	}
}

func TestChannelEligibility(t *testing.T) {
	severities := []Severity{SeverityCritical, SeverityError, SeverityWarning, SeverityInfo, SeveritySuccess}

	for _, severity := range severities {
		pageworthy := severity == SeverityCritical || severity == SeverityError

		if got := ChannelPagerDuty.EligibleFor(severity); got != pageworthy {
			t.Errorf("pagerduty eligibility for %s = %v, want %v", severity, got, pageworthy)
		}

		// 나머지 채널은 모든 severity에 자격이 있음
		for _, ch := range AllChannels {
			if ch == ChannelPagerDuty {
				continue
			}
			if !ch.EligibleFor(severity) {
				t.Errorf("channel %s should be eligible for %s", ch, severity)
			}
		}
	}
}

func TestSeverityDisplayTable(t *testing.T) {
	tests := []struct {
		severity Severity
		color    string
		pd       string
	}{
		{SeverityCritical, "#dc3545", "critical"},
		{SeverityError, "#fd7e14", "error"},
		{SeverityWarning, "#ffc107", "warning"},
		{SeverityInfo, "#17a2b8", "info"},
		{SeveritySuccess, "#28a745", "info"},
	}

	for _, tt := range tests {
		if got := tt.severity.Color(); got != tt.color {
			t.Errorf("%s color = %q, want %q", tt.severity, got, tt.color)
		}
		if got := tt.severity.PagerDutyLevel(); got != tt.pd {
			t.Errorf("%s pagerduty level = %q, want %q", tt.severity, got, tt.pd)
		}
		if tt.severity.Emoji() == "" {
			t.Errorf("%s has no emoji", tt.severity)
		}
	}
}

func TestParseRemediationType(t *testing.T) {
	valid := []RemediationType{
		RemediationRestartService, RemediationFixDiskSpace, RemediationFixMemory,
		RemediationRedeployApp, RemediationScaleInstance, RemediationHealthCheck,
		RemediationNone,
	}
	for _, v := range valid {
		if got, ok := ParseRemediationType(string(v)); !ok || got != v {
			t.Errorf("ParseRemediationType(%q) = (%v, %v), want (%v, true)", v, got, ok, v)
		}
	}

	if _, ok := ParseRemediationType("reboot_everything"); ok {
		t.Error("unknown remediation type should not parse")
	}
}

func TestRemediationTypeMutating(t *testing.T) {
	if RemediationHealthCheck.Mutating() {
		t.Error("health_check must not be mutating")
	}
	if RemediationNone.Mutating() {
		t.Error("none must not be mutating")
	}
	if !RemediationScaleInstance.Mutating() {
		t.Error("scale_instance must be mutating")
	}
}
