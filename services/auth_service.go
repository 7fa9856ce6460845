package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"pilinks/config"
	"pilinks/models"
	"pilinks/repositories"
)

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	verifier  PiVerifier
	adminUIDs map[string]bool
}

func NewAuthService(userRepo repositories.UserRepository, verifier PiVerifier, adminUIDs []string) AuthService {
	admins := make(map[string]bool, len(adminUIDs))
	for _, uid := range adminUIDs {
		admins[uid] = true
	}
	return &authService{userRepo: userRepo, verifier: verifier, adminUIDs: admins}
}

// Login verifies the Pi access token, upserts the identity keyed by pi_uid
// and issues a session token. A verification failure leaves the caller
// anonymous; nothing is persisted on that path.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	identity, err := s.verifier.Verify(ctx, req.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}

	role := models.RoleUser
	if s.adminUIDs[identity.UID] {
		role = models.RoleAdmin
	}

	user, err := s.userRepo.Upsert(&models.User{
		ID:         uuid.NewString(),
		PiUsername: identity.Username,
		PiUID:      identity.UID,
		Role:       role,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":     user.ID,
		"pi_username": user.PiUsername,
		"role":        user.Role,
		"exp":         now.Add(config.JWTExpiration).Unix(),
		"iat":         now.Unix(),
		"nbf":         now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(config.JWTSecret())
	if err != nil {
		return "", err
	}

	return signedToken, nil
}
