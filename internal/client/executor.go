// 복구 동작 실행 클라이언트
//
// 실제 인프라 조작(원격 명령 실행, 스케일링 API 호출)은 외부 러너가 수행하며
// 이 클라이언트는 러너 엔드포인트로 명령 엔벨로프를 전달만 함
//
// 환경변수:
//   - REMEDIATION_RUNNER_URL: 러너 엔드포인트
//   - HEALTH_CHECK_URL: health_check 타입이 조회하는 상태 확인 엔드포인트

package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

type RunnerClient struct {
	runnerURL   string
	healthURL   string
	environment string
	project     string
	httpClient  HTTPDoer
}

// CommandEnvelope - 러너에 전달하는 명령 엔벨로프
type CommandEnvelope struct {
	Action      string   `json:"action"`
	Source      string   `json:"source"`
	Environment string   `json:"environment"`
	Project     string   `json:"project"`
	Comment     string   `json:"comment"`
	Commands    []string `json:"commands"`
}

func NewRunnerClient(runnerURL, healthURL, environment, project string) *RunnerClient {
	return &RunnerClient{
		runnerURL:   runnerURL,
		healthURL:   healthURL,
		environment: environment,
		project:     project,
		// 복구 동작은 수 분까지 걸릴 수 있으므로 클라이언트 자체 타임아웃 대신
		// 디스패처가 넘기는 context 기한으로 실행 시간을 제한함
		httpClient: &http.Client{},
	}
}

// SetHTTPClient - 테스트용 HTTP 클라이언트 주입
func (c *RunnerClient) SetHTTPClient(doer HTTPDoer) {
	c.httpClient = doer
}

// Invoke - 복구 명령 엔벨로프를 러너로 전송
// health_check는 Probe로 처리하며 이 경로로 오지 않음
func (c *RunnerClient) Invoke(ctx context.Context, remediationType model.RemediationType, alert model.Alert) error {
	if c.runnerURL == "" {
		return fmt.Errorf("remediation runner url not configured")
	}

	envelope := CommandEnvelope{
		Action:      string(remediationType),
		Source:      alert.Source,
		Environment: c.environment,
		Project:     c.project,
		Comment:     fmt.Sprintf("%s - self-healing", remediationType),
		Commands:    commandsFor(remediationType),
	}

	status, err := postJSON(ctx, c.httpClient, c.runnerURL, nil, envelope)
	if err != nil {
		return fmt.Errorf("runner request failed: %w", err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("runner returned status %d", status)
	}
	return nil
}

// Probe - 상태 확인 엔드포인트 조회 (상태 변경 없음)
func (c *RunnerClient) Probe(ctx context.Context) error {
	if c.healthURL == "" {
		return fmt.Errorf("health check url not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health probe returned status %d", resp.StatusCode)
	}
	return nil
}

// commandsFor - 타입별 기본 명령 목록
// 메모리/디스크 명령은 대상 호스트에서 안전하게 반복 실행 가능한 것만 포함
func commandsFor(t model.RemediationType) []string {
	switch t {
	case model.RemediationFixMemory:
		return []string{
			"sync",
			"echo 1 > /proc/sys/vm/drop_caches || true",
		}
	case model.RemediationFixDiskSpace:
		return []string{
			"find /tmp -type f -atime +7 -delete || true",
			`find /var/log -type f -name "*.log.*" -mtime +7 -delete || true`,
			"journalctl --vacuum-time=7d || true",
		}
	case model.RemediationRestartService:
		return []string{"systemctl restart app.service"}
	case model.RemediationRedeployApp:
		return []string{"/opt/deploy/redeploy.sh"}
	case model.RemediationScaleInstance:
		// 스케일링은 명령이 아니라 러너의 capacity 조정 액션으로 처리됨
		return nil
	}
	return nil
}
