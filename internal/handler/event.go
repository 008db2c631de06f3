// 이벤트 수신 엔드포인트

package handler

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

// eventProcessor - 서비스 인터페이스
type eventProcessor interface {
	Process(ctx context.Context, raw []byte) model.ProcessResult
}

// EventHandler - 이벤트 수신 핸들러
type EventHandler struct {
	processor eventProcessor
}

func NewEventHandler(processor eventProcessor) *EventHandler {
	return &EventHandler{processor: processor}
}

// Ingest godoc
// @Summary Ingest one monitoring event
// @Description 직접 호출 / 엔벨로프 / 알람 상태 변경 세 형태를 모두 허용
// @Tags events
// @Accept json
// @Produce json
// @Success 200 {object} model.ProcessResult
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/events [post]
func (h *EventHandler) Ingest(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "empty body"})
		return
	}

	// 불량 입력도 결과 객체로 표현됨 - 여기서 에러를 던지지 않음
	result := h.processor.Process(c.Request.Context(), raw)

	log.Printf("Processed event: processed=%v, remediation=%v, notifications=%d",
		result.AlertProcessed, result.Remediation != nil, len(result.Notifications))

	c.JSON(http.StatusOK, result)
}
