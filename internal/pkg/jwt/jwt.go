package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/nalaaircon/nala-backend/internal/domain/auth"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
)

type Service interface {
	GenerateAccessToken(session auth.Session) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(session auth.Session) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, fmt.Errorf("invalid access token lifetime %q: %w", j.accessTokenExpirationTime, err)
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"employee_id": session.EmployeeID,
		"name":        session.Name,
		"role":        string(session.Role),
		"branch":      session.Branch,
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// SessionFromClaims rebuilds the session carried by an access token.
func SessionFromClaims(claims map[string]interface{}) (auth.Session, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return auth.Session{}, auth.ErrInvalidToken
	}
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)
	if employeeID == "" || !user.Role(role).IsValid() {
		return auth.Session{}, auth.ErrInvalidToken
	}

	name, _ := claims["name"].(string)
	branch, _ := claims["branch"].(string)
	return auth.Session{
		EmployeeID: employeeID,
		Name:       name,
		Role:       user.Role(role),
		Branch:     branch,
	}, nil
}
