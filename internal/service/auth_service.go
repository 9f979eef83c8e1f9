package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/internal/dto"
	"github.com/vikask011/react-native/internal/repository"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// AuthServiceConfig holds configuration for AuthService
type AuthServiceConfig struct {
	JWTSecret         string
	Algorithm         string
	AccessTokenExpiry time.Duration
	Issuer            string
	BcryptCost        int
}

// Claims are the access token claims. Subject carries the user id as a string.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a user and returns an access token
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	// Login authenticates a user by email and password
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// VerifyToken validates an access token and returns its user id
	VerifyToken(token string) (int64, error)
	// GetProfile retrieves the user behind a verified token
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	config   *AuthServiceConfig
	method   jwt.SigningMethod
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison
	dummyHash []byte
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, config *AuthServiceConfig) (AuthService, error) {
	if config == nil || config.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.AccessTokenExpiry == 0 {
		config.AccessTokenExpiry = 60 * time.Minute
	}
	if config.Algorithm == "" {
		config.Algorithm = jwt.SigningMethodHS256.Alg()
	}

	method, ok := jwt.GetSigningMethod(strings.ToUpper(config.Algorithm)).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm: %s", config.Algorithm)
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}

	return &authService{
		userRepo:  userRepo,
		config:    config,
		method:    method,
		dummyHash: dummyHash,
	}, nil
}

// Register creates a user with a bcrypt password hash
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.register")
	defer span.End()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        domain.NormalizeEmail(req.Email),
		PasswordHash: string(hashedPassword),
		Phone:        strings.TrimSpace(req.Phone),
	}

	// The unique index decides duplicates so concurrent registrations cannot both succeed
	if err := s.userRepo.Create(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("user_id", user.ID))
	return s.tokenResponse(user)
}

// Login authenticates a user. Unknown email and wrong password are indistinguishable.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			telemetry.RecordError(span, domain.ErrInvalidCredentials)
			return nil, domain.ErrInvalidCredentials
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		telemetry.RecordError(span, domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}

	span.SetAttributes(attribute.Int64("user_id", user.ID))
	return s.tokenResponse(user)
}

// VerifyToken checks the signature, the algorithm and the expiry
func (s *authService) VerifyToken(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrExpiredToken
		}
		return 0, domain.ErrInvalidToken
	}
	if !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	if claims.UserID <= 0 {
		id, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil || id <= 0 {
			return 0, domain.ErrInvalidToken
		}
		claims.UserID = id
	}
	return claims.UserID, nil
}

// GetProfile retrieves a user by ID
func (s *authService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.get_profile")
	defer span.End()

	span.SetAttributes(attribute.Int64("user_id", userID))

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return user, nil
}

func (s *authService) tokenResponse(user *domain.User) (*dto.TokenResponse, error) {
	token, err := s.issueToken(user, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return dto.NewTokenResponse(user, token, s.config.AccessTokenExpiry), nil
}

func (s *authService) issueToken(user *domain.User, now time.Time) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExpiry)),
		},
	}
	return jwt.NewWithClaims(s.method, claims).SignedString([]byte(s.config.JWTSecret))
}
