package service

import (
	"errors"
	"testing"

	"github.com/rayyan-siddiqu1/self-healing-infra/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "test-secret",
		JWTAccessTTL:  "1h",
		AdminLoginID:  "operator",
		AdminPassword: "hunter22",
	}
}

func TestAuthLoginAndParseRoundTrip(t *testing.T) {
	s, err := NewAuthService(testAuthConfig())
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}

	token, expiresIn, err := s.Login("operator", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" || expiresIn != 3600 {
		t.Fatalf("token=%q expiresIn=%d", token, expiresIn)
	}

	loginID, err := s.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if loginID != "operator" {
		t.Errorf("loginID = %q, want operator", loginID)
	}
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	s, err := NewAuthService(testAuthConfig())
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}

	if _, _, err := s.Login("operator", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("wrong password: err = %v, want ErrUnauthorized", err)
	}
	if _, _, err := s.Login("intruder", "hunter22"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("wrong login ID: err = %v, want ErrUnauthorized", err)
	}
}

func TestAuthParseRejectsTamperedToken(t *testing.T) {
	s, _ := NewAuthService(testAuthConfig())

	other := testAuthConfig()
	other.JWTSecret = "another-secret"
	s2, _ := NewAuthService(other)

	token, _, err := s2.Login("operator", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := s.ParseAccessToken(token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("foreign-key token must be rejected, err = %v", err)
	}
	if _, err := s.ParseAccessToken("not-a-token"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("garbage token must be rejected, err = %v", err)
	}
}

func TestNewAuthServiceValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AuthConfig)
	}{
		{"missing-secret", func(c *config.AuthConfig) { c.JWTSecret = "" }},
		{"missing-login", func(c *config.AuthConfig) { c.AdminLoginID = " " }},
		{"missing-password", func(c *config.AuthConfig) { c.AdminPassword = "" }},
		{"bad-ttl", func(c *config.AuthConfig) { c.JWTAccessTTL = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAuthConfig()
			tt.mutate(&cfg)
			if _, err := NewAuthService(cfg); !errors.Is(err, ErrMisconfigured) {
				t.Errorf("err = %v, want ErrMisconfigured", err)
			}
		})
	}
}
