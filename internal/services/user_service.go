package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"crm-backend/internal/auth"
	"crm-backend/internal/cache"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

// UserService handles login (with optional TOTP second factor) and
// employee account management.
type UserService struct {
	UserRepo   *repositories.UserRepository
	AuditRepo  *repositories.AuditLogRepository
	JWTManager *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, auditRepo *repositories.AuditLogRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		AuditRepo:  auditRepo,
		JWTManager: jwtManager,
	}
}

var validRoles = map[string]bool{
	models.RoleSuperAdmin:     true,
	models.RoleAdmin:          true,
	models.RoleFinanceManager: true,
	models.RoleManager:        true,
	models.RoleExecutive:      true,
	models.RoleCoordinator:    true,
	models.RoleTrainer:        true,
}

// Login authenticates credentials. Accounts with TOTP enabled get a
// short-lived temp token instead of a session; VerifyTOTP finishes the
// exchange. A Redis credential cache skips bcrypt on hot logins.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !user.IsActive {
		return nil, errors.New("account is suspended")
	}

	if cachedID, ok := cache.GetCachedAuth(ctx, email, req.Password); !ok || int(cachedID) != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, errors.New("invalid credentials")
		}
		cache.CacheAuth(ctx, email, req.Password, int64(user.ID))
	}

	if user.TOTPEnabled {
		tempToken, err := s.JWTManager.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &models.LoginResponse{TOTPRequired: true, TempToken: tempToken}, nil
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("[UserService] User %d (%s) logged in", user.ID, user.Email)
	return &models.LoginResponse{Token: token, User: user}, nil
}

// Signup registers a self-service account. Public signups always start as
// executives; an admin assigns a different role later.
func (s *UserService) Signup(ctx context.Context, req *models.CreateUserRequest) (*models.LoginResponse, error) {
	req.Role = models.RoleExecutive
	user, err := s.Create(ctx, req, 0)
	if err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// VerifyTOTP exchanges a temp token plus a valid 6-digit code for a session
func (s *UserService) VerifyTOTP(ctx context.Context, tempToken, code string) (*models.LoginResponse, error) {
	claims, err := s.JWTManager.ValidateTempToken(tempToken)
	if err != nil {
		return nil, errors.New("invalid or expired temp token")
	}

	user, err := s.UserRepo.Get(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, errors.New("account not available")
	}

	secret, err := s.UserRepo.GetTOTPSecret(ctx, user.ID)
	if err != nil || secret == "" {
		return nil, errors.New("TOTP not configured for this account")
	}
	if !auth.VerifyTOTPCode(secret, code) {
		return nil, errors.New("invalid TOTP code")
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// SetupTOTP generates a secret and QR code for an account. The factor
// only activates once ConfirmTOTP sees a valid code.
func (s *UserService) SetupTOTP(ctx context.Context, userID int) (*auth.TOTPSetup, error) {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	setup, err := auth.GenerateTOTPSetup(user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.UserRepo.SetTOTPSecret(ctx, userID, setup.Secret); err != nil {
		return nil, err
	}
	return setup, nil
}

// ConfirmTOTP enables the second factor after the user proves they can
// generate codes from the new secret.
func (s *UserService) ConfirmTOTP(ctx context.Context, userID int, code string) error {
	secret, err := s.UserRepo.GetTOTPSecret(ctx, userID)
	if err != nil || secret == "" {
		return errors.New("no pending TOTP setup")
	}
	if !auth.VerifyTOTPCode(secret, code) {
		return errors.New("invalid TOTP code")
	}
	if err := s.UserRepo.EnableTOTP(ctx, userID); err != nil {
		return err
	}
	s.AuditRepo.Log(ctx, userID, "UPDATE", "user", &userID, "enabled two-factor authentication", "")
	return nil
}

// Create adds an employee account.
func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest, creatorID int) (*models.User, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if !validRoles[req.Role] {
		return nil, fmt.Errorf("unknown role '%s'", req.Role)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		Role:         req.Role,
		Zone:         req.Zone,
		Cluster:      req.Cluster,
		ManagerID:    req.ManagerID,
		PasswordHash: hash,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.AuditRepo.Log(ctx, creatorID, "CREATE", "user", &user.ID,
		fmt.Sprintf("created %s account for %s", user.Role, user.Email), "")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.UserRepo.Get(ctx, id)
}

func (s *UserService) List(ctx context.Context, role, zone string) ([]*models.User, error) {
	return s.UserRepo.List(ctx, role, zone)
}

// ListTeam retrieves the executives reporting to a manager
func (s *UserService) ListTeam(ctx context.Context, managerID int) ([]*models.User, error) {
	return s.UserRepo.ListByManager(ctx, managerID)
}

func (s *UserService) Update(ctx context.Context, id int, req *models.UpdateUserRequest, actorID int) (*models.User, error) {
	if req.Role != "" && !validRoles[req.Role] {
		return nil, fmt.Errorf("unknown role '%s'", req.Role)
	}
	current, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		req.Name = current.Name
	}
	if req.Phone == "" {
		req.Phone = current.Phone
	}
	if req.Role == "" {
		req.Role = current.Role
	}
	if req.Zone == "" {
		req.Zone = current.Zone
	}
	if req.Cluster == "" {
		req.Cluster = current.Cluster
	}
	if req.ManagerID == nil {
		req.ManagerID = current.ManagerID
	}

	if err := s.UserRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	s.AuditRepo.Log(ctx, actorID, "UPDATE", "user", &id, fmt.Sprintf("updated account #%d", id), "")
	return s.UserRepo.Get(ctx, id)
}

// SetActive suspends or restores an account. Suspension drops any cached
// credentials so the account locks out immediately.
func (s *UserService) SetActive(ctx context.Context, id int, active bool, actorID int) error {
	user, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.UserRepo.SetActive(ctx, id, active); err != nil {
		return err
	}
	if !active {
		cache.InvalidateAuth(ctx, user.Email)
	}

	verb := "restored"
	if !active {
		verb = "suspended"
	}
	s.AuditRepo.Log(ctx, actorID, "UPDATE", "user", &id, fmt.Sprintf("%s account %s", verb, user.Email), "")
	return nil
}
