package client

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

func sampleAlert() model.Alert {
	return model.Alert{
		Title:     "High CPU",
		Message:   "CPU utilization 97%",
		Severity:  model.SeverityCritical,
		Source:    "web01",
		Metadata:  map[string]string{"instance_id": "i-0abc"},
		Timestamp: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}

func TestSlackBuildMessage(t *testing.T) {
	c := NewSlackClient("http://hooks.example.com/x", "prod", "self-healing-infra")
	msg := c.BuildMessage(sampleAlert())

	if len(msg.Attachments) != 1 {
		t.Fatalf("attachments = %d", len(msg.Attachments))
	}
	att := msg.Attachments[0]
	if att.Color != "#dc3545" {
		t.Errorf("Color = %q", att.Color)
	}
	if !strings.Contains(att.Title, "High CPU") || !strings.Contains(att.Title, "🚨") {
		t.Errorf("Title = %q", att.Title)
	}
	if att.Text != "CPU utilization 97%" {
		t.Errorf("Text = %q", att.Text)
	}

	fields := map[string]string{}
	for _, f := range att.Fields {
		fields[f.Title] = f.Value
	}
	if fields["Severity"] != "critical" || fields["Source"] != "web01" || fields["Environment"] != "prod" {
		t.Errorf("fields = %v", fields)
	}
}

func TestDiscordBuildMessageDecimalColor(t *testing.T) {
	c := NewDiscordClient("http://discord.example.com/x", "prod", "self-healing-infra")
	msg := c.BuildMessage(sampleAlert())

	if len(msg.Embeds) != 1 {
		t.Fatalf("embeds = %d", len(msg.Embeds))
	}
	embed := msg.Embeds[0]
	// #dc3545 -> 14431557
	if embed.Color != 0xdc3545 {
		t.Errorf("Color = %d, want %d", embed.Color, 0xdc3545)
	}
	if embed.Description != "CPU utilization 97%" {
		t.Errorf("Description = %q", embed.Description)
	}
	if embed.Timestamp != "2026-08-31T12:00:00Z" {
		t.Errorf("Timestamp = %q", embed.Timestamp)
	}
}

func TestTeamsBuildMessageCard(t *testing.T) {
	c := NewTeamsClient("http://teams.example.com/x", "prod", "self-healing-infra")
	msg := c.BuildMessage(sampleAlert())

	if msg.Type != "MessageCard" || msg.Context != "https://schema.org/extensions" {
		t.Errorf("card envelope mismatch: type=%q context=%q", msg.Type, msg.Context)
	}
	if msg.ThemeColor != "dc3545" {
		t.Errorf("ThemeColor = %q, want without # prefix", msg.ThemeColor)
	}
	if msg.Summary != "High CPU" {
		t.Errorf("Summary = %q", msg.Summary)
	}
	if len(msg.Sections) != 1 || len(msg.Sections[0].Facts) != 4 {
		t.Fatalf("sections = %+v", msg.Sections)
	}
}

func TestPagerDutyBuildEvent(t *testing.T) {
	c := NewPagerDutyClient("api-key", "routing-key", "prod", "self-healing-infra")
	event := c.BuildEvent(sampleAlert())

	if event.RoutingKey != "routing-key" || event.EventAction != "trigger" {
		t.Errorf("envelope mismatch: %+v", event)
	}
	if event.Payload.Summary != "High CPU" {
		t.Errorf("Summary = %q", event.Payload.Summary)
	}
	if event.Payload.Severity != "critical" {
		t.Errorf("Severity = %q", event.Payload.Severity)
	}
	if event.Payload.Source != "self-healing-infra-prod" {
		t.Errorf("Source = %q", event.Payload.Source)
	}
	if event.Payload.CustomDetails["meta_instance_id"] != "i-0abc" {
		t.Errorf("metadata not carried: %v", event.Payload.CustomDetails)
	}
}

func TestPagerDutyErrorLevel(t *testing.T) {
	c := NewPagerDutyClient("api-key", "routing-key", "prod", "self-healing-infra")

	alert := sampleAlert()
	alert.Severity = model.SeverityError
	if got := c.BuildEvent(alert).Payload.Severity; got != "error" {
		t.Errorf("Severity = %q, want error", got)
	}
}

func TestDedupKeyStable(t *testing.T) {
	k1 := DedupKey("web01", "High CPU")
	k2 := DedupKey("web01", "High CPU")
	if k1 != k2 {
		t.Fatalf("dedup key must be deterministic: %q != %q", k1, k2)
	}
	if len(k1) != 32 {
		t.Errorf("len = %d, want 32 hex chars", len(k1))
	}
	if DedupKey("web02", "High CPU") == k1 {
		t.Error("different source must yield different key")
	}
	if DedupKey("web01", "High Memory") == k1 {
		t.Error("different title must yield different key")
	}
}

func TestPagerDutySendAuthorizationHeader(t *testing.T) {
	c := NewPagerDutyClient("api-key", "routing-key", "prod", "self-healing-infra")
	doer := &fakeDoer{status: 202}
	c.SetHTTPClient(doer)

	result := c.Send(context.Background(), sampleAlert())
	if !result.Succeeded {
		t.Fatalf("Send() = %+v", result)
	}
	if got := doer.lastReq.Header.Get("Authorization"); got != "Token token=api-key" {
		t.Errorf("Authorization = %q", got)
	}
	if doer.lastReq.URL.String() != pagerDutyEventsURL {
		t.Errorf("URL = %q", doer.lastReq.URL)
	}
}

func TestTopicBuildPublish(t *testing.T) {
	c := NewTopicClient("arn:aws:sns:us-east-1:123:alerts", "http://publisher.internal/publish", "prod")
	pub := c.BuildPublish(sampleAlert())

	if pub.TopicArn != "arn:aws:sns:us-east-1:123:alerts" {
		t.Errorf("TopicArn = %q", pub.TopicArn)
	}
	if pub.Subject != "High CPU" {
		t.Errorf("Subject = %q", pub.Subject)
	}
	for _, want := range []string{"CPU utilization 97%", "Severity: critical", "Source: web01"} {
		if !strings.Contains(pub.Message, want) {
			t.Errorf("Message missing %q:\n%s", want, pub.Message)
		}
	}
}

func TestTopicConfiguredRequiresBoth(t *testing.T) {
	if NewTopicClient("arn:x", "", "prod").IsConfigured() {
		t.Error("missing endpoint must not count as configured")
	}
	if NewTopicClient("", "http://x", "prod").IsConfigured() {
		t.Error("missing ARN must not count as configured")
	}
	if !NewTopicClient("arn:x", "http://x", "prod").IsConfigured() {
		t.Error("both set must count as configured")
	}
}

func TestEmailBuildMessage(t *testing.T) {
	c := NewEmailClient("smtp.example.com", 587, "user", "pass", "ops@example.com", "prod", "self-healing-infra")
	msg := string(c.BuildMessage(sampleAlert()))

	if !strings.Contains(msg, "Subject: [CRITICAL] High CPU\r\n") {
		t.Errorf("subject line missing:\n%s", msg)
	}
	if !strings.Contains(msg, "Content-Type: text/html; charset=UTF-8\r\n") {
		t.Error("HTML content type missing")
	}
	if !strings.Contains(msg, "CPU utilization 97%") {
		t.Error("message body missing")
	}
	if !strings.Contains(msg, "To: ops@example.com\r\n") {
		t.Error("recipient missing")
	}
}

func TestEmailSendUsesInjectedFunc(t *testing.T) {
	c := NewEmailClient("smtp.example.com", 587, "user", "pass", "ops@example.com", "prod", "self-healing-infra")

	var gotAddr, gotFrom string
	var gotTo []string
	c.SetSendFunc(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		return nil
	})

	result := c.Send(context.Background(), sampleAlert())
	if !result.Succeeded {
		t.Fatalf("Send() = %+v", result)
	}
	if gotAddr != "smtp.example.com:587" || gotFrom != "ops@example.com" {
		t.Errorf("addr=%q from=%q", gotAddr, gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "ops@example.com" {
		t.Errorf("to = %v", gotTo)
	}
}

func TestEmailSendUnblocksOnContextExpiry(t *testing.T) {
	c := NewEmailClient("smtp.example.com", 587, "", "", "ops@example.com", "prod", "self-healing-infra")

	// 연결은 받지만 응답하지 않는 SMTP 서버를 흉내냄
	release := make(chan struct{})
	defer close(release)
	c.SetSendFunc(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	result := c.Send(ctx, sampleAlert())
	elapsed := time.Since(start)

	if result.Succeeded || !result.Retryable {
		t.Errorf("hung send = %+v, want retryable failure", result)
	}
	if result.ErrorDetail == "" {
		t.Error("hung send must carry error detail")
	}
	if elapsed > time.Second {
		t.Errorf("Send blocked for %v, must return at context expiry", elapsed)
	}
}
