// SMTP 이메일 클라이언트
//
// 환경변수:
//   - SMTP_HOST / SMTP_PORT / SMTP_USER / SMTP_PASSWORD
//   - DEFAULT_EMAIL: 발신 겸 수신 주소 (호스트와 함께 있어야 설정된 것으로 간주)

package client

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

// smtpSendFunc - 테스트에서 실제 SMTP 전송을 대체하기 위한 함수 타입
type smtpSendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailClient struct {
	host        string
	port        int
	user        string
	password    string
	address     string
	environment string
	project     string
	send        smtpSendFunc
}

func NewEmailClient(host string, port int, user, password, address, environment, project string) *EmailClient {
	return &EmailClient{
		host:        host,
		port:        port,
		user:        user,
		password:    password,
		address:     address,
		environment: environment,
		project:     project,
		send:        smtp.SendMail,
	}
}

func (c *EmailClient) Channel() model.Channel { return model.ChannelEmail }

func (c *EmailClient) IsConfigured() bool {
	return c.host != "" && c.address != ""
}

// SetSendFunc - 테스트용 전송 함수 주입
func (c *EmailClient) SetSendFunc(fn smtpSendFunc) {
	c.send = fn
}

// Send - Alert를 HTML 본문 이메일로 전송
// SMTP 오류는 일시적 장애 가능성이 있으므로 재시도 가능으로 분류
//
// net/smtp는 context를 받지 않으므로 전송을 별도 고루틴에서 수행하고
// context 만료 시 즉시 반환함 - 응답 없는 SMTP 서버가 호출 전체를
// OS TCP 타임아웃까지 붙잡는 상황 방지 (전송 고루틴은 뒤에서 종료됨)
func (c *EmailClient) Send(ctx context.Context, alert model.Alert) model.DeliveryResult {
	msg := c.BuildMessage(alert)
	addr := fmt.Sprintf("%s:%d", c.host, c.port)

	var auth smtp.Auth
	if c.user != "" {
		auth = smtp.PlainAuth("", c.user, c.password, c.host)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.send(addr, auth, c.address, []string{c.address}, msg)
	}()

	select {
	case <-ctx.Done():
		return model.DeliveryResult{Succeeded: false, Retryable: true, ErrorDetail: ctx.Err().Error()}
	case err := <-errCh:
		if err != nil {
			return model.DeliveryResult{Succeeded: false, Retryable: true, ErrorDetail: err.Error()}
		}
		return model.DeliveryResult{Succeeded: true}
	}
}

// BuildMessage - MIME 헤더 포함 이메일 본문 렌더링
func (c *EmailClient) BuildMessage(alert model.Alert) []byte {
	subject := fmt.Sprintf("[%s] %s", strings.ToUpper(string(alert.Severity)), alert.Title)

	html := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif;">
<div style="background-color: %s; color: white; padding: 20px;">
<h1>%s %s</h1>
</div>
<div style="padding: 20px;">
<p>%s</p>
<div style="background-color: #f8f9fa; padding: 15px; margin-top: 20px;">
<strong>Severity:</strong> %s<br>
<strong>Environment:</strong> %s<br>
<strong>Source:</strong> %s<br>
<strong>Timestamp:</strong> %s
</div>
</div>
<div style="color: #6c757d; padding: 20px; font-size: 12px;">
<p>This is an automated notification from %s</p>
</div>
</body>
</html>`,
		alert.Severity.Color(),
		alert.Severity.Emoji(), alert.Title,
		strings.ReplaceAll(alert.Message, "\n", "<br>"),
		alert.Severity,
		c.environment,
		alert.Source,
		alert.Timestamp.Format(time.RFC3339),
		c.project,
	)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", c.project, c.address)
	fmt.Fprintf(&b, "To: %s\r\n", c.address)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)

	return []byte(b.String())
}
