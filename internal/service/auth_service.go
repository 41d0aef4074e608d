package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hrms-portal/internal/event"
	"hrms-portal/internal/model"
	"hrms-portal/pkg/apierror"
)

const bcryptCost = 12

const (
	msgBothIncorrect     = "Username and password are incorrect"
	msgPasswordIncorrect = "Password is incorrect"
	msgAccountInactive   = "Account is INACTIVE"
)

type AuthService struct {
	users     UserStore
	validate  *validator.Validate
	jwtSecret []byte
	accessTTL time.Duration
	now       func() time.Time
	bus       event.Bus
	log       *slog.Logger
}

func NewAuthService(users UserStore, validate *validator.Validate, jwtSecret string, accessTTL time.Duration, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		users:     users,
		validate:  validate,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log.With("component", "auth"),
	}
}

// SetEventBus makes Register announce new accounts.
func (s *AuthService) SetEventBus(bus event.Bus) {
	s.bus = bus
}

// EnsureDefaultAdmin creates the "admin" account when no administrator
// exists yet.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, password string) error {
	count, err := s.users.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	now := s.now().UTC()
	admin := model.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		Email:        "admin@hrms.com",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Status:       model.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	s.log.Info("default admin created", "username", admin.Username)
	return nil
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return model.LoginResponse{}, apierror.Invalid("Username and Password is required")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.LoginResponse{}, apierror.New("UNAUTHORIZED", msgBothIncorrect, "", http.StatusUnauthorized)
	}
	if err != nil {
		return model.LoginResponse{}, err
	}

	if user.Status == model.StatusInactive {
		return model.LoginResponse{}, apierror.New("FORBIDDEN", msgAccountInactive, "", http.StatusForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.LoginResponse{}, apierror.New("UNAUTHORIZED", msgPasswordIncorrect, "", http.StatusUnauthorized)
	}

	if err := s.users.TouchLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.log.Warn("last login not recorded", "user_id", user.ID, "error", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		Token:      token,
		TokenType:  "Bearer",
		ExpiresIn:  int64(s.accessTTL.Seconds()),
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
	}, nil
}

// Register creates an account with a generated temporary password, which
// is returned once and must be changed on first login.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.RegisteredUser, error) {
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))

	if err := s.validate.Struct(req); err != nil {
		return model.RegisteredUser{}, validationError(err)
	}

	exists, err := s.users.Exists(ctx, req.Username, req.Email)
	if err != nil {
		return model.RegisteredUser{}, err
	}
	if exists {
		return model.RegisteredUser{}, apierror.Conflict("Username or email already exists")
	}

	password, err := temporaryPassword()
	if err != nil {
		return model.RegisteredUser{}, fmt.Errorf("generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.RegisteredUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := model.User{
		ID:                 uuid.NewString(),
		Username:           req.Username,
		Email:              req.Email,
		PasswordHash:       string(hash),
		Role:               req.Role,
		Status:             model.StatusActive,
		MustChangePassword: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return model.RegisteredUser{}, apierror.Conflict("Username or email already exists")
		}
		return model.RegisteredUser{}, err
	}

	if s.bus != nil {
		s.bus.Publish(event.New(event.TypeUserRegistered, "user", user.ID, user, ""))
	}
	return model.RegisteredUser{User: user, TemporaryPassword: password}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, model.ErrUnauthorized
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrUnauthorized
	}
	if typ, _ := claimsMap["typ"].(string); typ != "access" {
		return nil, model.ErrUnauthorized
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	claims.Role, _ = claimsMap["role"].(string)
	claims.EmployeeID, _ = claimsMap["emp"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if claims.UserID == "" {
		return nil, model.ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) issueToken(user model.User) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"typ":      "access",
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	}
	if user.EmployeeID != "" {
		claims["emp"] = user.EmployeeID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

const (
	upperChars   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerChars   = "abcdefghijkmnpqrstuvwxyz"
	digitChars   = "23456789"
	specialChars = "@#$%&*!?"
)

// temporaryPassword returns 12 characters that satisfy the portal password
// policy: upper, lower, digit and special.
func temporaryPassword() (string, error) {
	classes := []string{upperChars, lowerChars, digitChars, specialChars}
	all := upperChars + lowerChars + digitChars + specialChars

	out := make([]byte, 0, 12)
	for _, set := range classes {
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < 12 {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}
	return string(out), nil
}

func pick(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
