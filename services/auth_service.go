package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"bookshop/models"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	admins AdminStore
	secret []byte
}

func NewAuthService(admins AdminStore, secret []byte) *AuthService {
	return &AuthService{admins: admins, secret: secret}
}

type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Login checks credentials and hands back a signed bearer token. A
// deactivated account is refused even with the right password, and an
// unknown email gets the same answer as a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.Admin, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !admin.IsActive {
		return "", nil, ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	updated, err := s.admins.Update(ctx, admin.ID, map[string]interface{}{"lastLogin": now})
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(updated, now)
	if err != nil {
		return "", nil, err
	}
	return token, updated, nil
}

func (s *AuthService) issueToken(admin *models.Admin, now time.Time) (string, error) {
	claims := Claims{
		ID:    admin.ID.Hex(),
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a bearer token, returning its claims.
func (s *AuthService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
