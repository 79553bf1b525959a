package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Berkayssy/leave-management-system/internal/auth"
	autherrors "github.com/Berkayssy/leave-management-system/internal/auth/errors"
	"github.com/Berkayssy/leave-management-system/internal/policy"
	"github.com/Berkayssy/leave-management-system/internal/shared/apperror"
	"github.com/Berkayssy/leave-management-system/internal/user"
)

type fakeUserRepository struct {
	withTxFn      func(tx *sql.Tx) user.Repository
	createFn      func(ctx context.Context, u *user.User) error
	findByIDFn    func(ctx context.Context, id uint) (*user.User, error)
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	findAllFn     func(ctx context.Context) ([]user.User, error)
	leaveCountsFn func(ctx context.Context, userID uint) (int64, int64, error)
	deleteFn      func(ctx context.Context, id uint) error
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) LeaveCounts(ctx context.Context, userID uint) (int64, int64, error) {
	if f.leaveCountsFn != nil {
		return f.leaveCountsFn(ctx, userID)
	}
	return 0, 0, nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id uint) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

const testSecret = "test-signing-secret"

func newAuthService(repo user.Repository, ttl time.Duration) auth.Service {
	return auth.NewService(repo, testSecret, ttl)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				assert.Equal(t, "aylin@example.com", email)
				return &user.User{
					ID:             5,
					Name:           "Aylin",
					Email:          email,
					PasswordDigest: hashPassword(t, "password123"),
					Role:           policy.RoleEmployee,
				}, nil
			},
		}

		svc := newAuthService(repo, time.Hour)
		resp, err := svc.Login(ctx, "aylin@example.com", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, uint(5), resp.User.ID)
		assert.Equal(t, policy.RoleEmployee, resp.User.Role)

		uid, err := svc.VerifyToken(resp.Token)
		assert.NoError(t, err)
		assert.Equal(t, uint(5), uid)
	})

	t.Run("negative unknown email and wrong password are indistinguishable", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				if email == "known@example.com" {
					return &user.User{
						ID:             5,
						Email:          email,
						PasswordDigest: hashPassword(t, "correct"),
					}, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := newAuthService(repo, time.Hour)

		_, unknownErr := svc.Login(ctx, "nobody@example.com", "whatever")
		_, wrongErr := svc.Login(ctx, "known@example.com", "incorrect")

		assert.ErrorIs(t, unknownErr, autherrors.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, autherrors.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success forces employee role and hashes password", func(t *testing.T) {
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				assert.Equal(t, policy.RoleEmployee, u.Role)
				assert.NotEqual(t, "password123", u.PasswordDigest)
				assert.NoError(t, bcrypt.CompareHashAndPassword(
					[]byte(u.PasswordDigest), []byte("password123")))
				u.ID = 9
				return nil
			},
		}

		svc := newAuthService(repo, time.Hour)
		resp, err := svc.Register(ctx, auth.SignupRequest{
			Name:                 "Berkay",
			Email:                "berkay@example.com",
			Password:             "password123",
			PasswordConfirmation: "password123",
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(9), resp.User.ID)
		assert.Equal(t, policy.RoleEmployee, resp.User.Role)

		uid, err := svc.VerifyToken(resp.Token)
		assert.NoError(t, err)
		assert.Equal(t, uint(9), uid)
	})

	t.Run("negative duplicate email maps to field error", func(t *testing.T) {
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}
			},
		}

		svc := newAuthService(repo, time.Hour)
		_, err := svc.Register(ctx, auth.SignupRequest{
			Name:     "Berkay",
			Email:    "berkay@example.com",
			Password: "password123",
		})

		var verr *apperror.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "has already been taken", verr.Fields["email"])
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	t.Run("negative expired token", func(t *testing.T) {
		svc := newAuthService(&fakeUserRepository{}, -time.Minute)

		token, err := svc.IssueToken(5)
		assert.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		svc := newAuthService(&fakeUserRepository{}, time.Hour)

		_, err := svc.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("negative wrong secret", func(t *testing.T) {
		other := auth.NewService(&fakeUserRepository{}, "other-secret", time.Hour)
		token, err := other.IssueToken(5)
		assert.NoError(t, err)

		svc := newAuthService(&fakeUserRepository{}, time.Hour)
		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id uint) (*user.User, error) {
				return &user.User{ID: id, Name: "Aylin", Role: policy.RoleEmployee}, nil
			},
		}

		svc := newAuthService(repo, time.Hour)
		resp, err := svc.Me(ctx, 5)

		assert.NoError(t, err)
		assert.Equal(t, uint(5), resp.ID)
	})

	t.Run("negative deleted user", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id uint) (*user.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := newAuthService(repo, time.Hour)
		_, err := svc.Me(ctx, 5)

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})

	t.Run("negative repo failure passes through", func(t *testing.T) {
		bad := errors.New("connection reset")
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id uint) (*user.User, error) {
				return nil, bad
			},
		}

		svc := newAuthService(repo, time.Hour)
		_, err := svc.Me(ctx, 5)

		assert.ErrorIs(t, err, bad)
		assert.NotErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("success resolves role", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id uint) (*user.User, error) {
				assert.Equal(t, uint(5), id)
				return &user.User{ID: 5, Role: policy.RoleManager}, nil
			},
		}

		svc := newAuthService(repo, time.Hour)
		token, err := svc.IssueToken(5)
		assert.NoError(t, err)

		id, role, err := svc.Authenticate(ctx, token)

		assert.NoError(t, err)
		assert.Equal(t, uint(5), id)
		assert.Equal(t, policy.RoleManager, role)
	})

	t.Run("negative deleted user rejected", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id uint) (*user.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := newAuthService(repo, time.Hour)
		token, err := svc.IssueToken(5)
		assert.NoError(t, err)

		_, _, err = svc.Authenticate(ctx, token)

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})

	t.Run("negative repo failure passes through", func(t *testing.T) {
		bad := errors.New("connection reset")
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id uint) (*user.User, error) {
				return nil, bad
			},
		}

		svc := newAuthService(repo, time.Hour)
		token, err := svc.IssueToken(5)
		assert.NoError(t, err)

		_, _, err = svc.Authenticate(ctx, token)

		assert.ErrorIs(t, err, bad)
	})
}
