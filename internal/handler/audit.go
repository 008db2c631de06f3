// 감사 조회 핸들러 (복구 결과, 전송 기록)

package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/model"
)

const defaultAuditLimit = 50

// auditReader - DB 인터페이스 (조회 전용)
type auditReader interface {
	ListOutcomes(ctx context.Context, limit int) ([]model.RemediationOutcome, error)
	ListDeliveries(ctx context.Context, limit int) ([]model.DeliveryRecord, error)
}

// AuditHandler - 감사 조회 핸들러
type AuditHandler struct {
	db auditReader
}

func NewAuditHandler(db auditReader) *AuditHandler {
	return &AuditHandler{db: db}
}

// ListOutcomes godoc
// @Summary List recent remediation outcomes
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param limit query int false "max rows (default 50)"
// @Success 200 {object} model.OutcomeListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/outcomes [get]
func (h *AuditHandler) ListOutcomes(c *gin.Context) {
	outcomes, err := h.db.ListOutcomes(c.Request.Context(), limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.OutcomeListResponse{Status: "success", Data: outcomes})
}

// ListDeliveries godoc
// @Summary List recent delivery records
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param limit query int false "max rows (default 50)"
// @Success 200 {object} model.DeliveryListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/deliveries [get]
func (h *AuditHandler) ListDeliveries(c *gin.Context) {
	deliveries, err := h.db.ListDeliveries(c.Request.Context(), limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.DeliveryListResponse{Status: "success", Data: deliveries})
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", ""))
	if err != nil || limit <= 0 || limit > 500 {
		return defaultAuditLimit
	}
	return limit
}
