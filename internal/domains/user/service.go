package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/careerforge/careerforge/pkg/Logger"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthTokens is the JWT pair handed out at login.
type AuthTokens struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Claims are the JWT claims this service issues and validates.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// UserService is the account business logic surface.
type UserService interface {
	Register(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*UserResponse, *AuthTokens, error)
	GetProfile(ctx context.Context, userID string) (*UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateUserRequest) (*UserResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

type userService struct {
	repository UserRepository
	logger     *Logger.Logger
	jwtSecret  string
	tokenTTL   time.Duration
}

func NewUserService(repository UserRepository, logger *Logger.Logger, jwtSecret string, tokenTTL time.Duration) UserService {
	return &userService{
		repository: repository,
		logger:     logger,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}
}

// Register implements UserService
func (s *userService) Register(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.repository.EmailExists(req.Email)
	if err != nil {
		s.logger.Errorf("error checking email existence: %v", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		ID:          uuid.New().String(),
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    string(hashedPassword),
	}
	if err := s.repository.Create(u); err != nil {
		s.logger.Errorf("error creating user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infof("user registered: %s (%s)", u.ID, u.Email)
	response := u.ToResponse()
	return &response, nil
}

// Login implements UserService
func (s *userService) Login(ctx context.Context, req LoginRequest) (*UserResponse, *AuthTokens, error) {
	u, err := s.repository.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Errorf("error getting user by email: %v", err)
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	response := u.ToResponse()
	return &response, tokens, nil
}

// GetProfile implements UserService
func (s *userService) GetProfile(ctx context.Context, userID string) (*UserResponse, error) {
	u, err := s.repository.GetByID(userID)
	if err != nil {
		return nil, err
	}
	response := u.ToResponse()
	return &response, nil
}

// UpdateProfile implements UserService
func (s *userService) UpdateProfile(ctx context.Context, userID string, req UpdateUserRequest) (*UserResponse, error) {
	u, err := s.repository.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != nil {
		u.DisplayName = *req.DisplayName
	}
	if err := s.repository.Update(u); err != nil {
		s.logger.Errorf("error updating user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	response := u.ToResponse()
	return &response, nil
}

// ValidateToken implements UserService
func (s *userService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *userService) issueTokens(u *User) (*AuthTokens, error) {
	expiresAt := time.Now().Add(s.tokenTTL)
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   u.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &AuthTokens{AccessToken: signed, ExpiresAt: expiresAt}, nil
}
