package auth

import (
	"testing"

	"crm-backend/internal/config"
	"crm-backend/internal/models"
)

func testJWTManager() *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "crm-backend-test"
	return NewJWTManager(cfg)
}

func TestGenerateAndValidateToken(t *testing.T) {
	mgr := testJWTManager()
	user := &models.User{ID: 42, Email: "exec@example.com", Role: models.RoleExecutive, Zone: "West"}

	token, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "exec@example.com" || claims.Role != models.RoleExecutive || claims.Zone != "West" {
		t.Errorf("claims = %+v, want user 42 exec@example.com executive West", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	mgr := testJWTManager()
	token, err := mgr.GenerateToken(&models.User{ID: 1, Email: "a@b.c", Role: models.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}

	otherCfg := &config.Config{}
	otherCfg.JWT.Secret = "different-secret"
	otherCfg.JWT.ExpirationHours = 1
	other := NewJWTManager(otherCfg)

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	mgr := testJWTManager()
	if _, err := mgr.ValidateToken("not.a.token"); err == nil {
		t.Error("ValidateToken() accepted garbage input")
	}
}

func TestTempTokenRoundTrip(t *testing.T) {
	mgr := testJWTManager()
	user := &models.User{ID: 9, Email: "totp@example.com", Role: models.RoleFinanceManager}

	temp, err := mgr.GenerateTempToken(user)
	if err != nil {
		t.Fatalf("GenerateTempToken() error: %v", err)
	}

	claims, err := mgr.ValidateTempToken(temp)
	if err != nil {
		t.Fatalf("ValidateTempToken() error: %v", err)
	}
	if claims.UserID != 9 || claims.Type != "2fa_pending" {
		t.Errorf("temp claims = %+v, want user 9 type 2fa_pending", claims)
	}
}

func TestFullTokenRejectedAsTempToken(t *testing.T) {
	mgr := testJWTManager()
	token, err := mgr.GenerateToken(&models.User{ID: 3, Email: "x@y.z", Role: models.RoleManager})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.ValidateTempToken(token); err == nil {
		t.Error("ValidateTempToken() accepted a full session token")
	}
}
