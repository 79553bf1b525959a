package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "github.com/Berkayssy/leave-management-system/internal/auth/errors"
	"github.com/Berkayssy/leave-management-system/internal/policy"
	"github.com/Berkayssy/leave-management-system/internal/user"
)

type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	Register(ctx context.Context, req SignupRequest) (SignupResponse, error)
	Me(ctx context.Context, userID uint) (user.UserResponse, error)
	IssueToken(userID uint) (string, error)
	VerifyToken(token string) (uint, error)
	Authenticate(ctx context.Context, token string) (id uint, role string, err error)
}

type service struct {
	repo   user.Repository
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

// NewService builds the authentication service around a single process-wide
// signing secret, injected at startup and constant for the process lifetime.
func NewService(repo user.Repository, secret string, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, secret: []byte(secret), ttl: ttl, logger: l}
}

// Login verifies the credentials and issues a bearer token. Lookup and
// password failures collapse into the same error so a caller cannot tell
// which emails exist.
func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("login lookup failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordDigest), []byte(password)); err != nil {
		s.logger.Debug("login password mismatch", zap.Uint("user_id", u.ID))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		s.logger.Error("login token generation failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("login success", zap.Uint("user_id", u.ID))
	return LoginResponse{Token: token, User: user.MapToResponse(*u)}, nil
}

// Register creates an employee account. Self-service signups always get the
// employee role, whatever the payload says.
func (s *service) Register(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return SignupResponse{}, err
	}

	u := &user.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordDigest: string(hashed),
		Role:           policy.RoleEmployee,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Warn("register persist failed", zap.Error(err))
		return SignupResponse{}, user.MapRepositoryError(err)
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		return SignupResponse{}, err
	}

	s.logger.Info("register success", zap.Uint("user_id", u.ID))
	return SignupResponse{User: user.MapToResponse(*u), Token: token}, nil
}

func (s *service) Me(ctx context.Context, userID uint) (user.UserResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.UserResponse{}, autherrors.ErrUserNotFound
		}
		return user.UserResponse{}, err
	}
	return user.MapToResponse(*u), nil
}

// IssueToken signs a time-bounded credential binding to the user identifier.
func (s *service) IssueToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken checks signature, shape and expiry and returns the bound user
// identifier. It does not consult the identity store; Authenticate does.
func (s *service) VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, autherrors.ErrTokenExpired
		}
		return 0, autherrors.ErrInvalidToken
	}
	if !token.Valid {
		return 0, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, autherrors.ErrInvalidToken
	}
	// JSON numbers decode as float64.
	uid, ok := claims["user_id"].(float64)
	if !ok || uid <= 0 {
		return 0, autherrors.ErrInvalidToken
	}

	return uint(uid), nil
}

// Authenticate resolves a bearer token to a live identity. A syntactically
// valid token whose user has been deleted is rejected.
func (s *service) Authenticate(ctx context.Context, token string) (uint, string, error) {
	userID, err := s.VerifyToken(token)
	if err != nil {
		return 0, "", err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", autherrors.ErrUserNotFound
		}
		return 0, "", err
	}

	return u.ID, u.Role, nil
}
