package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"resume-forge/cmd/server/testutil"
	"resume-forge/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	signUpEndpoint  = "/api/v1/auth/signup"
	loginEndpoint   = "/api/v1/auth/login"
	verifyEndpoint  = "/api/v1/auth/verify-email"
	resendEndpoint  = "/api/v1/auth/resend-verification"
	profileEndpoint = "/api/v1/auth/profile"
	testJWTSecret   = "test-secret-test-secret-test-secret!"
	testEmail       = "test@example.com"
	testPassword    = "Password123"
)

// MockAuthService mocks the auth service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, req auth.SignUpRequest) (*auth.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.AuthResponse), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) (*auth.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.AuthResponse), args.Error(1)
}

func (m *MockAuthService) ResendVerification(ctx context.Context, req auth.ResendVerificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAuthService) Profile(ctx context.Context, userID bson.ObjectID) (*auth.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID bson.ObjectID, req auth.UpdateProfileRequest) (*auth.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

// AuthTestSetup contains common test setup data
type AuthTestSetup struct {
	MockService *MockAuthService
	App         *fiber.App
	TestUser    *auth.User
}

// SetupAuthTest wires the auth routes into a test app, public routes first,
// then the JWT-guarded profile pair.
func SetupAuthTest(t *testing.T) *AuthTestSetup {
	t.Helper()

	mockService := &MockAuthService{}
	app := testutil.CreateTestApp(t)
	validator := testutil.CreateTestValidator(t)

	h := NewHandlers(mockService, validator)

	v1 := app.Group("/api/v1")
	authGrp := v1.Group("/auth")

	authGrp.Post("/signup", h.SignUp)
	authGrp.Post("/login", h.Login)
	authGrp.Post("/verify-email", h.VerifyEmail)
	authGrp.Post("/resend-verification", h.ResendVerification)

	jwtMW := testutil.SetupJWTMiddleware(testJWTSecret)
	authGrp.Get("/profile", jwtMW, h.Profile)
	authGrp.Put("/profile", jwtMW, h.UpdateProfile)

	now := time.Now().UTC()
	testUser := &auth.User{
		ID:        bson.NewObjectID(),
		Name:      "Test User",
		Email:     testEmail,
		Verified:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return &AuthTestSetup{
		MockService: mockService,
		App:         app,
		TestUser:    testUser,
	}
}

func (s *AuthTestSetup) tokenFor(t *testing.T, user *auth.User) string {
	t.Helper()
	token, err := testutil.CreateTestJWT(user.ID.Hex(), user.Email, []byte(testJWTSecret), time.Hour)
	require.NoError(t, err)
	return token
}

func TestSignUpHandler(t *testing.T) {
	t.Run("success returns 201 with token", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("SignUp", mock.Anything, mock.AnythingOfType("auth.SignUpRequest")).
			Return(&auth.AuthResponse{Token: "jwt", User: s.TestUser}, nil)

		req := testutil.CreateJSONRequest("POST", signUpEndpoint, map[string]string{
			"name":     "Test User",
			"email":    testEmail,
			"password": testPassword,
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var body auth.AuthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "jwt", body.Token)
	})

	t.Run("lowercase letter-and-digit password is accepted", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("SignUp", mock.Anything, mock.MatchedBy(func(req auth.SignUpRequest) bool {
			return req.Password == "secret123"
		})).Return(&auth.AuthResponse{Token: "jwt", User: s.TestUser}, nil)

		req := testutil.CreateJSONRequest("POST", signUpEndpoint, map[string]string{
			"name":     "Jo",
			"email":    "jo@x.com",
			"password": "secret123",
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("weak password rejected before the service is called", func(t *testing.T) {
		s := SetupAuthTest(t)

		req := testutil.CreateJSONRequest("POST", signUpEndpoint, map[string]string{
			"name":     "Test User",
			"email":    testEmail,
			"password": "short",
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		s.MockService.AssertNotCalled(t, "SignUp")
	})

	t.Run("duplicate email maps to 400", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("SignUp", mock.Anything, mock.Anything).Return(nil, auth.ErrUserExists)

		req := testutil.CreateJSONRequest("POST", signUpEndpoint, map[string]string{
			"name":     "Test User",
			"email":    testEmail,
			"password": testPassword,
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "User already exists", body["error"])
	})

	t.Run("unexpected failure maps to generic 500", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("SignUp", mock.Anything, mock.Anything).
			Return(nil, errors.New("write exception: connection reset"))

		req := testutil.CreateJSONRequest("POST", signUpEndpoint, map[string]string{
			"name":     "Test User",
			"email":    testEmail,
			"password": testPassword,
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Internal Server Error", body["error"], "database detail must not leak")
	})

	t.Run("mail delivery failure maps to generic 500", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("SignUp", mock.Anything, mock.Anything).Return(nil, auth.ErrSendMail)

		req := testutil.CreateJSONRequest("POST", signUpEndpoint, map[string]string{
			"name":     "Test User",
			"email":    testEmail,
			"password": testPassword,
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("Login", mock.Anything, mock.AnythingOfType("auth.LoginRequest")).
			Return(&auth.AuthResponse{Token: "jwt", User: s.TestUser}, nil)

		req := testutil.CreateJSONRequest("POST", loginEndpoint, map[string]string{
			"email":    testEmail,
			"password": testPassword,
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("unverified account message surfaces as 400", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("Login", mock.Anything, mock.Anything).Return(nil, auth.ErrNotVerified)

		req := testutil.CreateJSONRequest("POST", loginEndpoint, map[string]string{
			"email":    testEmail,
			"password": testPassword,
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Please verify your email before logging in", body["error"])
	})

	t.Run("bad credentials surface as 400", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("Login", mock.Anything, mock.Anything).Return(nil, auth.ErrInvalidCredentials)

		req := testutil.CreateJSONRequest("POST", loginEndpoint, map[string]string{
			"email":    testEmail,
			"password": "WrongPass1",
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestVerifyEmailHandler(t *testing.T) {
	t.Run("success returns fresh token", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("VerifyEmail", mock.Anything, auth.VerifyEmailRequest{Email: testEmail, Code: "123456"}).
			Return(&auth.AuthResponse{Token: "fresh", User: s.TestUser}, nil)

		req := testutil.CreateJSONRequest("POST", verifyEndpoint, map[string]string{
			"email": testEmail,
			"code":  "123456",
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("non-numeric code rejected by validation", func(t *testing.T) {
		s := SetupAuthTest(t)

		req := testutil.CreateJSONRequest("POST", verifyEndpoint, map[string]string{
			"email": testEmail,
			"code":  "abc123",
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		s.MockService.AssertNotCalled(t, "VerifyEmail")
	})

	t.Run("expired code maps to 400", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("VerifyEmail", mock.Anything, mock.Anything).Return(nil, auth.ErrInvalidCode)

		req := testutil.CreateJSONRequest("POST", verifyEndpoint, map[string]string{
			"email": testEmail,
			"code":  "000000",
		})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestResendVerificationHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("ResendVerification", mock.Anything, auth.ResendVerificationRequest{Email: testEmail}).Return(nil)

		req := testutil.CreateJSONRequest("POST", resendEndpoint, map[string]string{"email": testEmail})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("unknown user maps to 404", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("ResendVerification", mock.Anything, mock.Anything).Return(auth.ErrUserNotFound)

		req := testutil.CreateJSONRequest("POST", resendEndpoint, map[string]string{"email": testEmail})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("already verified maps to 400", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("ResendVerification", mock.Anything, mock.Anything).Return(auth.ErrAlreadyVerified)

		req := testutil.CreateJSONRequest("POST", resendEndpoint, map[string]string{"email": testEmail})
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestProfileHandlers(t *testing.T) {
	t.Run("get requires a token", func(t *testing.T) {
		s := SetupAuthTest(t)

		req := testutil.CreateJSONRequest("GET", profileEndpoint, nil)
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("get returns the user", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("Profile", mock.Anything, s.TestUser.ID).Return(s.TestUser, nil)

		req := testutil.CreateAuthenticatedRequest("GET", profileEndpoint, nil, s.tokenFor(t, s.TestUser))
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body auth.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, testEmail, body.Email)
	})

	t.Run("update applies partial fields", func(t *testing.T) {
		s := SetupAuthTest(t)
		updated := *s.TestUser
		updated.Bio = "New bio"
		s.MockService.On("UpdateProfile", mock.Anything, s.TestUser.ID, mock.AnythingOfType("auth.UpdateProfileRequest")).
			Return(&updated, nil)

		req := testutil.CreateAuthenticatedRequest("PUT", profileEndpoint, map[string]string{"bio": "New bio"}, s.tokenFor(t, s.TestUser))
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("oversized image maps to 400 with the exact message", func(t *testing.T) {
		s := SetupAuthTest(t)
		s.MockService.On("UpdateProfile", mock.Anything, s.TestUser.ID, mock.Anything).
			Return(nil, auth.ErrImageTooLarge)

		req := testutil.CreateAuthenticatedRequest("PUT", profileEndpoint, map[string]string{"profileImage": "data:image/png;base64,xyz"}, s.tokenFor(t, s.TestUser))
		resp, err := s.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Profile image is too large. Please use a smaller image.", body["error"])
	})
}
