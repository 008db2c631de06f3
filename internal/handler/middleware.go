package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/service"
)

const authUserKey = "auth_user"

// AuthMiddleware - 감사 조회 API용 Bearer JWT 검증
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		loginID, err := authService.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(authUserKey, loginID)
		c.Next()
	}
}

// GetAuthUser - 미들웨어가 저장한 로그인 ID 조회
func GetAuthUser(c *gin.Context) string {
	if value, ok := c.Get(authUserKey); ok {
		if loginID, ok := value.(string); ok {
			return loginID
		}
	}
	return ""
}

// IngestAuthMiddleware - 수신 엔드포인트용 공유 토큰 검증
// 모니터링 시스템은 로그인 플로우를 타지 않으므로 고정 토큰 헤더를 사용
// 토큰이 설정되지 않은 경우 검증 생략
func IngestAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		if c.GetHeader("X-Ingest-Token") != token {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
