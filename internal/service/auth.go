// 운영 API 인증 비즈니스 로직
//
// 단일 운영자 계정 모델: 기동 시 환경변수 자격증명을 bcrypt 해시로 보관하고
// 로그인 성공 시 HMAC 서명 JWT 액세스 토큰을 발급
// (감사 조회 API 보호용, 수신 엔드포인트는 공유 토큰으로 별도 보호)

package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/config"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrMisconfigured = errors.New("auth config invalid")
)

// AuthService 구조체 정의
type AuthService struct {
	jwtSecret    []byte
	accessTTL    time.Duration
	adminLoginID string
	adminHash    []byte
}

type authClaims struct {
	LoginID string `json:"loginId"`
	jwt.RegisteredClaims
}

// AuthService 객체 생성
// JWT_SECRET이 설정된 경우 관리자 자격증명도 반드시 있어야 함
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if strings.TrimSpace(cfg.AdminLoginID) == "" || strings.TrimSpace(cfg.AdminPassword) == "" {
		return nil, fmt.Errorf("%w: ADMIN_LOGIN_ID/ADMIN_PASSWORD are required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.JWTAccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		jwtSecret:    []byte(cfg.JWTSecret),
		accessTTL:    accessTTL,
		adminLoginID: cfg.AdminLoginID,
		adminHash:    hash,
	}, nil
}

// Login - 자격증명 검증 후 액세스 토큰 발급
func (s *AuthService) Login(loginID, password string) (string, int64, error) {
	if loginID != s.adminLoginID {
		return "", 0, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		return "", 0, ErrUnauthorized
	}

	now := time.Now()
	claims := authClaims{
		LoginID: loginID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   loginID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return token, int64(s.accessTTL.Seconds()), nil
}

// ParseAccessToken - 토큰 검증 후 로그인 ID 반환
func (s *AuthService) ParseAccessToken(tokenStr string) (string, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}
	if claims.LoginID == "" {
		return "", ErrUnauthorized
	}
	return claims.LoginID, nil
}
