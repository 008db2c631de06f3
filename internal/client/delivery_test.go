package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

// fakeDoer - HTTPDoer 테스트 대역 (요청 캡처 + 고정 응답)
type fakeDoer struct {
	status  int
	err     error
	lastReq *http.Request
	body    string
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func TestResultFrom(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		err           error
		wantSucceeded bool
		wantRetryable bool
	}{
		{"network-error", 0, errors.New("connection refused"), false, true},
		{"ok", 200, nil, true, false},
		{"no-content", 204, nil, true, false},
		{"bad-request", 400, nil, false, false},
		{"unauthorized", 401, nil, false, false},
		{"not-found", 404, nil, false, false},
		{"rate-limited", 429, nil, false, true},
		{"server-error", 500, nil, false, true},
		{"bad-gateway", 502, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resultFrom(tt.status, tt.err)
			if got.Succeeded != tt.wantSucceeded || got.Retryable != tt.wantRetryable {
				t.Errorf("resultFrom(%d, %v) = %+v, want succeeded=%v retryable=%v",
					tt.status, tt.err, got, tt.wantSucceeded, tt.wantRetryable)
			}
			if !got.Succeeded && got.ErrorDetail == "" {
				t.Error("failures must carry error detail")
			}
		})
	}
}

func TestPostJSONSetsContentTypeAndHeaders(t *testing.T) {
	doer := &fakeDoer{status: 200}

	status, err := postJSON(context.Background(), doer, "http://example.com/hook",
		map[string]string{"Authorization": "Token token=abc"},
		map[string]string{"key": "value"})

	if err != nil || status != 200 {
		t.Fatalf("postJSON() = %d, %v", status, err)
	}
	if got := doer.lastReq.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := doer.lastReq.Header.Get("Authorization"); got != "Token token=abc" {
		t.Errorf("Authorization = %q", got)
	}
	if doer.body != `{"key":"value"}` {
		t.Errorf("body = %q", doer.body)
	}
}

func TestPostJSONPropagatesTransportError(t *testing.T) {
	doer := &fakeDoer{err: errors.New("dial tcp: timeout")}

	_, err := postJSON(context.Background(), doer, "http://example.com/hook", nil, struct{}{})
	if err == nil {
		t.Fatal("expected transport error")
	}

	result := resultFrom(0, err)
	if result.Succeeded || !result.Retryable {
		t.Errorf("transport error must be a retryable failure: %+v", result)
	}
}

func TestSendClassifiesWebhookResponses(t *testing.T) {
	alert := model.Alert{Title: "disk full", Message: "disk usage at 92%", Severity: model.SeverityWarning, Source: "web01"}

	tests := []struct {
		name          string
		status        int
		wantSucceeded bool
		wantRetryable bool
	}{
		{"accepted", 200, true, false},
		{"webhook-gone", 404, false, false},
		{"throttled", 429, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSlackClient("http://hooks.example.com/T000/B000", "prod", "self-healing-infra")
			c.SetHTTPClient(&fakeDoer{status: tt.status})

			got := c.Send(context.Background(), alert)
			if got.Succeeded != tt.wantSucceeded || got.Retryable != tt.wantRetryable {
				t.Errorf("Send() = %+v, want succeeded=%v retryable=%v", got, tt.wantSucceeded, tt.wantRetryable)
			}
		})
	}
}
