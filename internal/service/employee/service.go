package employee

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	tx           recordstore.Transactor
	employeeRepo employee.EmployeeRepository
	rules        config.Rules
}

func NewEmployeeService(
	tx recordstore.Transactor,
	employeeRepo employee.EmployeeRepository,
	rules config.Rules,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		rules:        rules,
	}
}

func (s *EmployeeServiceImpl) checkLevel(level string) error {
	if _, ok := s.rules.Level(level); !ok {
		return fmt.Errorf("%w: %s", employee.ErrInvalidLevel, level)
	}
	return nil
}

func (s *EmployeeServiceImpl) checkBranch(branch string) error {
	if _, ok := s.rules.Office(branch); !ok {
		return fmt.Errorf("%w: %s", employee.ErrInvalidBranch, branch)
	}
	return nil
}

// phoneTaken reports whether another employee already uses phone.
func (s *EmployeeServiceImpl) phoneTaken(ctx context.Context, phone, selfID string) error {
	existing, err := s.employeeRepo.GetByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to check phone number: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return employee.ErrPhoneExists
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkLevel(req.Level); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkBranch(req.Branch); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		phone := validator.NormalizePhone(req.Phone)
		if err := s.phoneTaken(ctx, phone, ""); err != nil {
			return err
		}
		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			Name:         req.Name,
			Phone:        phone,
			PasswordHash: hash,
			Role:         user.Role(req.Role),
			Level:        req.Level,
			Branch:       req.Branch,
			IsActive:     true,
			JoinedAt:     req.JoinedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "role", created.Role, "branch", created.Branch)
	return employee.ToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee.ToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employee.ToResponse(e))
	}
	return out, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.Level != nil {
		if err := s.checkLevel(*req.Level); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}
	if req.Branch != nil {
		if err := s.checkBranch(*req.Branch); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	var updated employee.Employee
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		if req.Name != nil {
			emp.Name = *req.Name
		}
		if req.Phone != nil {
			phone := validator.NormalizePhone(*req.Phone)
			if err := s.phoneTaken(ctx, phone, emp.ID); err != nil {
				return err
			}
			emp.Phone = phone
		}
		if req.Password != nil {
			emp.PasswordHash, err = hashPassword(*req.Password)
			if err != nil {
				return err
			}
		}
		if req.Role != nil {
			emp.Role = user.Role(*req.Role)
		}
		if req.Level != nil {
			emp.Level = *req.Level
		}
		if req.Branch != nil {
			emp.Branch = *req.Branch
		}

		updated, err = s.employeeRepo.Update(ctx, emp)
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(updated), nil
}

// DeactivateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string, actorID string) error {
	if id == actorID {
		return employee.ErrCannotDeactivateSelf
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return employee.ErrEmployeeAlreadyInactive
	}

	emp.IsActive = false
	if _, err := s.employeeRepo.Update(ctx, emp); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	slog.Info("employee deactivated", "employee_id", id, "by", actorID)
	return nil
}

// EnsureAdmin creates the first admin account when no employee uses phone.
// It reports whether an account was created.
func EnsureAdmin(ctx context.Context, repo employee.EmployeeRepository, rules config.Rules, name, phone, password string) (bool, error) {
	if phone == "" || password == "" {
		return false, nil
	}
	if name == "" {
		name = "Administrator"
	}
	phone = validator.NormalizePhone(phone)

	existing, err := repo.GetByPhone(ctx, phone)
	if err != nil {
		return false, fmt.Errorf("failed to check admin account: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := hashPassword(password)
	if err != nil {
		return false, err
	}
	_, err = repo.Create(ctx, employee.Employee{
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		Branch:       rules.DefaultBranch,
		IsActive:     true,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create admin account: %w", err)
	}
	return true, nil
}
