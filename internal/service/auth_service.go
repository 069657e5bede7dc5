package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"reviewhub/internal/mailer"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validators"
	"reviewhub/pkg/apperror"
)

const confirmationCodeLength = 12

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// AuthService handles signup, confirmation-code exchange and token
// validation, plus the password-based flows used by the browsing pages.
type AuthService interface {
	SignUp(ctx context.Context, email, username string) error
	IssueToken(ctx context.Context, username, confirmationCode string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*models.Principal, error)
	RegisterWithPassword(ctx context.Context, username, email, password string) (*models.User, error)
	LoginWithPassword(ctx context.Context, username, password string) (string, *models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, confirmationCode, newPassword string) error
}

type authService struct {
	users     repository.UserRepository
	mail      mailer.Mailer
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(users repository.UserRepository, mail mailer.Mailer, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:     users,
		mail:      mail,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// tokenClaims embeds everything needed to rebuild a principal without a
// database lookup.
type tokenClaims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	IsStaff  bool        `json:"is_staff"`
	jwt.RegisteredClaims
}

// SignUp registers a user and emails a confirmation code. Re-signup
// with the exact username and email pair of an existing account is
// allowed and reissues the code; any other collision with an existing
// username or email fails per field.
func (s *authService) SignUp(ctx context.Context, email, username string) error {
	if err := validators.ValidateUsername(username); err != nil {
		return apperror.NewFieldError("username", err.Error())
	}

	byUsername, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	byEmail, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var user *models.User
	switch {
	case byUsername != nil && byEmail != nil && byUsername.ID == byEmail.ID:
		user = byUsername
	case byUsername == nil && byEmail == nil:
		user = &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
	default:
		fieldErrs := apperror.FieldErrors{}
		if byUsername != nil && (byEmail == nil || byUsername.ID != byEmail.ID) {
			fieldErrs.Add("username", "a user with that username already exists")
		}
		if byEmail != nil && (byUsername == nil || byUsername.ID != byEmail.ID) {
			fieldErrs.Add("email", "a user with that email already exists")
		}
		return fieldErrs
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return err
	}
	user.ConfirmationCode = &code
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.mail.SendConfirmationCode(ctx, user.Email, user.Username, code)
}

// IssueToken exchanges a confirmation code for a bearer token. An
// unknown username is a 404; a wrong code is a 400. The code stays
// valid until the next signup overwrites it.
func (s *authService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.ErrNotFound
		}
		return "", err
	}

	if user.ConfirmationCode == nil || *user.ConfirmationCode != confirmationCode {
		return "", apperror.NewFieldError("confirmation_code", "invalid confirmation code")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}

	return s.signToken(user)
}

func (s *authService) signToken(user *models.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Username: user.Username,
		Role:     user.Role,
		IsStaff:  user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses a bearer token and rebuilds the principal.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*models.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.New(401, "invalid or expired token", apperror.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	return &models.Principal{
		ID:       claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
		IsStaff:  claims.IsStaff,
	}, nil
}

// RegisterWithPassword creates an account for the browsing surface.
func (s *authService) RegisterWithPassword(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := validators.ValidateUsername(username); err != nil {
		return nil, apperror.NewFieldError("username", err.Error())
	}

	fieldErrs := apperror.FieldErrors{}
	if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing != nil {
		fieldErrs.Add("username", "a user with that username already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		fieldErrs.Add("email", "a user with that email already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: &hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginWithPassword authenticates and returns a token plus the user.
// The bcrypt compare always runs so unknown usernames cost the same as
// bad passwords.
func (s *authService) LoginWithPassword(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, err
	}

	hash := dummyHash
	if user != nil && user.PasswordHash != nil {
		hash = *user.PasswordHash
	}
	if verifyErr := verifyPassword(hash, password); verifyErr != nil || user == nil || user.PasswordHash == nil {
		return "", nil, apperror.New(401, "invalid username or password", apperror.ErrUnauthorized)
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// RequestPasswordReset issues a fresh confirmation code to the account
// holding the given email.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewFieldError("email", "no user registered with that email")
		}
		return err
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return err
	}
	user.ConfirmationCode = &code
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.mail.SendConfirmationCode(ctx, user.Email, user.Username, code)
}

// ConfirmPasswordReset exchanges the mailed code for a new password
// hash. The code is consumed on success so it cannot reset twice.
func (s *authService) ConfirmPasswordReset(ctx context.Context, email, confirmationCode, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewFieldError("email", "no user registered with that email")
		}
		return err
	}

	if user.ConfirmationCode == nil || *user.ConfirmationCode != confirmationCode {
		return apperror.NewFieldError("confirmation_code", "invalid confirmation code")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = &hash
	user.ConfirmationCode = nil
	return s.users.Update(ctx, user)
}

func generateConfirmationCode() (string, error) {
	buf := make([]byte, confirmationCodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
