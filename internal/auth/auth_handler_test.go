package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Berkayssy/leave-management-system/internal/auth"
	autherrors "github.com/Berkayssy/leave-management-system/internal/auth/errors"
	"github.com/Berkayssy/leave-management-system/internal/shared/apperror"
	"github.com/Berkayssy/leave-management-system/internal/user"
)

func init() {
	gin.SetMode(gin.TestMode)
	apperror.Init()
}

type fakeAuthService struct {
	loginFn        func(ctx context.Context, email, password string) (auth.LoginResponse, error)
	registerFn     func(ctx context.Context, req auth.SignupRequest) (auth.SignupResponse, error)
	meFn           func(ctx context.Context, userID uint) (user.UserResponse, error)
	issueTokenFn   func(userID uint) (string, error)
	verifyTokenFn  func(token string) (uint, error)
	authenticateFn func(ctx context.Context, token string) (uint, string, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (auth.LoginResponse, error) {
	return f.loginFn(ctx, email, password)
}
func (f *fakeAuthService) Register(ctx context.Context, req auth.SignupRequest) (auth.SignupResponse, error) {
	return f.registerFn(ctx, req)
}
func (f *fakeAuthService) Me(ctx context.Context, userID uint) (user.UserResponse, error) {
	return f.meFn(ctx, userID)
}
func (f *fakeAuthService) IssueToken(userID uint) (string, error) {
	return f.issueTokenFn(userID)
}
func (f *fakeAuthService) VerifyToken(token string) (uint, error) {
	return f.verifyTokenFn(token)
}
func (f *fakeAuthService) Authenticate(ctx context.Context, token string) (uint, string, error) {
	return f.authenticateFn(ctx, token)
}

func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (auth.LoginResponse, error) {
				assert.Equal(t, "aylin@example.com", email)
				assert.Equal(t, "password123", password)
				return auth.LoginResponse{
					Token: "signed-token",
					User:  user.UserResponse{ID: 5, Name: "Aylin", Email: email, Role: "employee"},
				}, nil
			},
		}

		h := auth.NewHandler(svc)
		c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/login",
			`{"email":"aylin@example.com","password":"password123"}`)

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp auth.LoginResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, uint(5), resp.User.ID)
	})

	t.Run("negative bad credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (auth.LoginResponse, error) {
				return auth.LoginResponse{}, autherrors.ErrInvalidCredentials
			},
		}

		h := auth.NewHandler(svc)
		c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/login",
			`{"email":"aylin@example.com","password":"wrong"}`)

		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
	})

	t.Run("negative malformed body reads as bad credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (auth.LoginResponse, error) {
				t.Fatal("service must not be reached on a binding failure")
				return auth.LoginResponse{}, nil
			},
		}

		h := auth.NewHandler(svc)
		c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/login",
			`{"email":"not-an-email"}`)

		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
	})
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.SignupRequest) (auth.SignupResponse, error) {
				assert.Equal(t, "Berkay", req.Name)
				return auth.SignupResponse{
					User:  user.UserResponse{ID: 9, Name: req.Name, Email: req.Email, Role: "employee"},
					Token: "signed-token",
				}, nil
			},
		}

		h := auth.NewHandler(svc)
		c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/signup",
			`{"user":{"name":"Berkay","email":"berkay@example.com","password":"password123","password_confirmation":"password123"}}`)

		h.Signup(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp auth.SignupResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint(9), resp.User.ID)
		assert.Equal(t, "employee", resp.User.Role)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("negative mismatched confirmation", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/signup",
			`{"user":{"name":"Berkay","email":"berkay@example.com","password":"password123","password_confirmation":"different"}}`)

		h.Signup(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var body struct {
			Errors map[string]string `json:"errors"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "doesn't match Password", body.Errors["password_confirmation"])
	})

	t.Run("negative short password", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/signup",
			`{"user":{"name":"Berkay","email":"berkay@example.com","password":"abc","password_confirmation":"abc"}}`)

		h.Signup(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var body struct {
			Errors map[string]string `json:"errors"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "is too short (minimum is 6 characters)", body.Errors["password"])
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			meFn: func(ctx context.Context, userID uint) (user.UserResponse, error) {
				assert.Equal(t, uint(5), userID)
				return user.UserResponse{ID: 5, Name: "Aylin", Role: "employee"}, nil
			},
		}

		h := auth.NewHandler(svc)
		c, w := newTestContext(t, http.MethodGet, "/api/v1/auth/me", "")
		c.Set("user_id", uint(5))

		h.Me(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			User user.UserResponse `json:"user"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, uint(5), body.User.ID)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	h := auth.NewHandler(&fakeAuthService{})
	c, w := newTestContext(t, http.MethodPost, "/api/v1/auth/logout", "")

	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())
}
