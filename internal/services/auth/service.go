package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"resume-forge/internal/config"
	"resume-forge/internal/utils/crypto"
	"resume-forge/internal/utils/sanitize"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles authentication business logic
type Service struct {
	repo   UsersRepo
	mailer Mailer
	config config.Config
	log    *slog.Logger
}

// NewService creates a new auth service
func NewService(repo UsersRepo, mailer Mailer, cfg config.Config, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		config: cfg,
		log:    log,
	}
}

// SignUpRequest represents a user registration request
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200" example:"Jo Doe"`
	Email    string `json:"email" validate:"required,email" example:"jo@example.com"`
	Password string `json:"password" validate:"required,password" example:"Password123"`
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jo@example.com"`
	Password string `json:"password" validate:"required" example:"Password123"`
}

// VerifyEmailRequest carries the email + 6-digit code pair.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// ResendVerificationRequest regenerates the code for an unverified account.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateProfileRequest is a partial profile update. Nil fields are untouched;
// pointer fields can be cleared by sending an empty string.
type UpdateProfileRequest struct {
	Name         string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email        string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty"`
	Bio          *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=200"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// AuthResponse represents the response for successful authentication
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// SignUp registers a new, unverified user and emails a verification code.
// A usable token is issued right away even though login stays blocked until
// verification; kept for parity with existing clients.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrUserExists
	}

	hashed, err := crypto.HashPassword(req.Password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	code, err := crypto.VerificationCode()
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(time.Duration(s.config.VerificationCodeTTL) * time.Minute)

	now := time.Now()
	user := &User{
		ID:               bson.NewObjectID(),
		Name:             sanitize.Clean(req.Name),
		Email:            email,
		PasswordHash:     hashed,
		Verified:         false,
		VerificationCode: code,
		CodeExpiresAt:    &expires,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		s.log.Error(ErrSendMail.Error(), "error", err, "email", email)
		return nil, ErrSendMail
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if err == ErrDuplicate {
			return nil, ErrUserExists
		}
		return nil, err
	}

	token, err := s.generateJWT(user)
	if err != nil {
		s.log.Error(ErrGenToken.Error(), "error", err)
		return nil, ErrGenToken
	}

	return &AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	}, nil
}

// Login authenticates a verified user. Unknown email and wrong password
// produce the same error on purpose.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, ErrNotVerified
	}

	if err := crypto.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		s.log.Error(ErrGenToken.Error(), "error", err)
		return nil, ErrGenToken
	}

	return &AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	}, nil
}

// VerifyEmail consumes a pending code: on success the code is cleared, the
// account is marked verified and a fresh token is issued for auto-login.
func (s *Service) VerifyEmail(ctx context.Context, req VerifyEmailRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.repo.FindByEmailAndCode(ctx, email, req.Code, time.Now())
	if err != nil || user == nil {
		return nil, ErrInvalidCode
	}

	user.Verified = true
	user.VerificationCode = ""
	user.CodeExpiresAt = nil
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateJWT(user)
	if err != nil {
		s.log.Error(ErrGenToken.Error(), "error", err)
		return nil, ErrGenToken
	}

	return &AuthResponse{
		Message: "Email verified successfully",
		Token:   token,
		User:    user,
	}, nil
}

// ResendVerification regenerates the code and emails it again.
func (s *Service) ResendVerification(ctx context.Context, req ResendVerificationRequest) error {
	email := normalizeEmail(req.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return ErrUserNotFound
	}
	if user.Verified {
		return ErrAlreadyVerified
	}

	code, err := crypto.VerificationCode()
	if err != nil {
		return err
	}
	expires := time.Now().Add(time.Duration(s.config.VerificationCodeTTL) * time.Minute)

	user.VerificationCode = code
	user.CodeExpiresAt = &expires
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		s.log.Error(ErrSendMail.Error(), "error", err, "email", email)
		return ErrSendMail
	}
	return nil
}

// Profile returns the user for the authenticated id.
func (s *Service) Profile(ctx context.Context, userID bson.ObjectID) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies a partial update. An oversized profile image is
// rejected before anything is written, leaving the previous image unchanged.
func (s *Service) UpdateProfile(ctx context.Context, userID bson.ObjectID, req UpdateProfileRequest) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	if req.ProfileImage != nil && len(*req.ProfileImage) > s.config.MaxProfileImage {
		return nil, ErrImageTooLarge
	}

	if req.Name != "" {
		user.Name = sanitize.Clean(req.Name)
	}
	if req.Email != "" {
		user.Email = normalizeEmail(req.Email)
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Bio != nil {
		user.Bio = sanitize.Clean(*req.Bio)
	}
	if req.Location != nil {
		user.Location = sanitize.Clean(*req.Location)
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) generateJWT(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"exp":     time.Now().Add(time.Duration(s.config.TokenMinutes) * time.Minute).Unix(),
		"iat":     time.Now().Unix(),
	}

	alg := strings.ToUpper(s.config.JWTAlgorithm)
	var method jwt.SigningMethod
	switch alg {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "RS256":
		method = jwt.SigningMethodRS256
	default:
		return "", ErrUnsupportedJWTAlg
	}

	token := jwt.NewWithClaims(method, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
