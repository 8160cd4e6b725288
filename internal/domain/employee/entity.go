package employee

import (
	"time"

	"github.com/nalaaircon/nala-backend/internal/domain/user"
)

// Employee is both a staff member and a login account. Level selects the
// daily and overtime rate.
type Employee struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"password_hash,omitempty"`
	Role         user.Role  `json:"role"`
	Level        string     `json:"level"`
	Branch       string     `json:"branch"`
	IsActive     bool       `json:"is_active"`
	JoinedAt     string     `json:"joined_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
