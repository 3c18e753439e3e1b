package auth

import "errors"

// ErrUserExists is returned on signup with an email that is already registered.
var ErrUserExists = errors.New("User already exists")

// ErrInvalidCredentials is returned for both unknown-email and wrong-password
// logins; the two cases must stay indistinguishable.
var ErrInvalidCredentials = errors.New("Invalid email or password")

// ErrNotVerified blocks login until the email has been verified.
var ErrNotVerified = errors.New("Please verify your email before logging in")

// ErrInvalidCode is returned when a verification code does not match or has expired.
var ErrInvalidCode = errors.New("Invalid or expired verification code")

// ErrAlreadyVerified is returned when resending a code for a verified account.
var ErrAlreadyVerified = errors.New("Email is already verified")

// ErrUserNotFound - user absent from the DB.
var ErrUserNotFound = errors.New("User not found")

// ErrImageTooLarge is returned when a profile image exceeds the size ceiling.
var ErrImageTooLarge = errors.New("Profile image is too large. Please use a smaller image.")

// ErrGenToken is returned when we cannot create a JWT.
var ErrGenToken = errors.New("failed to generate token")

// ErrSendMail is returned when the verification email could not be delivered.
var ErrSendMail = errors.New("failed to send verification email")

// ErrUnsupportedJWTAlg is returned at boot for unknown signing algorithms.
var ErrUnsupportedJWTAlg = errors.New("unsupported JWT algorithm")
