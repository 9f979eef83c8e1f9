package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/vikask011/react-native/internal/domain"
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}$`)
)

// RegisterRequest represents registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
}

// Validate checks the fields binding tags cannot express
func (r *RegisterRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Name) == "" {
		return false, "Name must not be blank"
	}
	if !emailRegex.MatchString(strings.TrimSpace(r.Email)) {
		return false, "Invalid email format"
	}
	if len(r.Password) > MaxPasswordBytes {
		return false, "Password must be at most 72 bytes"
	}
	if r.Phone != "" && !phoneRegex.MatchString(strings.TrimSpace(r.Phone)) {
		return false, "Invalid phone number"
	}
	return true, ""
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by register and login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

// NewTokenResponse builds a bearer token response for user
func NewTokenResponse(user *domain.User, token string, ttl time.Duration) *TokenResponse {
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
	}
}

// UserProfileResponse is the authenticated user's profile
type UserProfileResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserProfileResponse(u *domain.User) *UserProfileResponse {
	resp := &UserProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	if u.Phone != "" {
		phone := u.Phone
		resp.Phone = &phone
	}
	return resp
}
