package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nalaaircon/nala-backend/internal/domain/auth"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/pkg/jwt"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

type AuthServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		employeeRepo: employeeRepo,
		Service:      jwtService,
	}
}

func sessionOf(e employee.Employee) auth.Session {
	return auth.Session{
		EmployeeID: e.ID,
		Name:       e.Name,
		Role:       e.Role,
		Branch:     e.Branch,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.employeeRepo.GetByPhone(ctx, validator.NormalizePhone(req.Phone))
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by phone: %w", err)
	}
	if emp == nil || emp.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !emp.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	session := sessionOf(*emp)
	token, expiresAt, err := a.Service.GenerateAccessToken(session)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("employee logged in", "employee_id", emp.ID, "role", emp.Role)
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt - time.Now().Unix(),
		Session:              session,
	}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, employeeID string) (auth.Session, error) {
	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return auth.Session{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return auth.Session{}, auth.ErrAccountInactive
	}
	return sessionOf(emp), nil
}
