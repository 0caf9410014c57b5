package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/karanprajapat824/hr-system/internal/attendance"
	"github.com/karanprajapat824/hr-system/internal/auth"
	autherrors "github.com/karanprajapat824/hr-system/internal/auth/errors"
	"github.com/karanprajapat824/hr-system/internal/employee"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeAuthService struct {
	signUpFn       func(ctx context.Context, req auth.SignUpRequest) (string, string, auth.AuthResponse, error)
	signInFn       func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error)
	refreshTokenFn func(ctx context.Context, refreshToken string) (string, auth.AuthResponse, error)
	getMeFn        func(ctx context.Context, employeeID string) (*auth.AuthResponse, error)
	userInfoFn     func(ctx context.Context, employeeID string) (auth.UserInfoResponse, error)
}

func (f *fakeAuthService) SignUp(ctx context.Context, req auth.SignUpRequest) (string, string, auth.AuthResponse, error) {
	return f.signUpFn(ctx, req)
}
func (f *fakeAuthService) SignIn(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
	return f.signInFn(ctx, email, password)
}
func (f *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, auth.AuthResponse, error) {
	return f.refreshTokenFn(ctx, refreshToken)
}
func (f *fakeAuthService) GetMe(ctx context.Context, employeeID string) (*auth.AuthResponse, error) {
	return f.getMeFn(ctx, employeeID)
}
func (f *fakeAuthService) UserInfo(ctx context.Context, employeeID string) (auth.UserInfoResponse, error) {
	return f.userInfoFn(ctx, employeeID)
}

func cookieNames(res *http.Response) []string {
	names := make([]string, 0, 2)
	for _, ck := range res.Cookies() {
		names = append(names, ck.Name)
	}
	return names
}

func TestAuthHandler_SignUp(t *testing.T) {
	t.Run("success sets auth cookies", func(t *testing.T) {
		svc := &fakeAuthService{
			signUpFn: func(ctx context.Context, req auth.SignUpRequest) (string, string, auth.AuthResponse, error) {
				assert.Equal(t, "asha@example.com", req.Email)
				return "access-token", "refresh-token", auth.AuthResponse{
					ID:    uuid.New().String(),
					Email: req.Email,
					Name:  req.Name,
					Role:  employee.RoleEmployee,
				}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Asha Rao","email":"asha@example.com","password":"password123","department":"Engineering","phone":"9876543210"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.SignUp(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		names := cookieNames(w.Result())
		assert.Contains(t, names, "access_token")
		assert.Contains(t, names, "refresh_token")
		for _, ck := range w.Result().Cookies() {
			assert.True(t, ck.HttpOnly)
		}
	})

	t.Run("negative short password", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Asha Rao","email":"asha@example.com","password":"123","department":"Engineering","phone":"9876543210"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.SignUp(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		svc := &fakeAuthService{
			signUpFn: func(ctx context.Context, req auth.SignUpRequest) (string, string, auth.AuthResponse, error) {
				return "", "", auth.AuthResponse{}, errors.New("boom")
			},
		}
		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Asha Rao","email":"asha@example.com","password":"password123","department":"Engineering","phone":"9876543210"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.SignUp(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthHandler_SignIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			signInFn: func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
				assert.Equal(t, "asha@example.com", email)
				assert.Equal(t, "password123", password)
				return "access-token", "refresh-token", auth.AuthResponse{
					ID:    uuid.New().String(),
					Email: email,
					Role:  employee.RoleEmployee,
				}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"asha@example.com","password":"password123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.SignIn(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got struct {
			AccessToken  string            `json:"access_token"`
			RefreshToken string            `json:"refresh_token"`
			User         auth.AuthResponse `json:"user"`
		}
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, "access-token", got.AccessToken)
		assert.Equal(t, "refresh-token", got.RefreshToken)
		assert.Equal(t, "asha@example.com", got.User.Email)
	})

	t.Run("negative invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			signInFn: func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
				return "", "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"asha@example.com","password":"wrongpass"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.SignIn(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
		assert.Equal(t, "invalid email or password", env.Error.Message)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("success re-issues access cookie", func(t *testing.T) {
		svc := &fakeAuthService{
			refreshTokenFn: func(ctx context.Context, refreshToken string) (string, auth.AuthResponse, error) {
				assert.Equal(t, "refresh-token", refreshToken)
				return "new-access-token", auth.AuthResponse{ID: uuid.New().String()}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		c.Request.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh-token"})

		h.RefreshToken(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		names := cookieNames(w.Result())
		assert.Contains(t, names, "access_token")
		assert.NotContains(t, names, "refresh_token")
	})

	t.Run("negative missing cookie", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)

		h.RefreshToken(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("negative invalid refresh token", func(t *testing.T) {
		svc := &fakeAuthService{
			refreshTokenFn: func(ctx context.Context, refreshToken string) (string, auth.AuthResponse, error) {
				return "", auth.AuthResponse{}, autherrors.ErrInvalidRefreshToken
			},
		}
		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		c.Request.AddCookie(&http.Cookie{Name: "refresh_token", Value: "stale"})

		h.RefreshToken(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()
		svc := &fakeAuthService{
			getMeFn: func(ctx context.Context, eid string) (*auth.AuthResponse, error) {
				assert.Equal(t, employeeID, eid)
				return &auth.AuthResponse{ID: eid, Email: "asha@example.com", Role: employee.RoleEmployee}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		c.Set("employee_id", employeeID)

		h.Me(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got auth.AuthResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, employeeID, got.ID)
	})

	t.Run("negative no identity in context", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

		h.Me(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_UserInfo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()
		svc := &fakeAuthService{
			userInfoFn: func(ctx context.Context, eid string) (auth.UserInfoResponse, error) {
				assert.Equal(t, employeeID, eid)
				return auth.UserInfoResponse{
					LeaveBalance: employee.LeaveBalanceResponse{Casual: 8, Sick: 10, Paid: 2},
					Attendance: &attendance.AttendanceResponse{
						AttendanceDate: "2026-07-15",
						Status:         "PRESENT",
					},
				}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/user-info", nil)
		c.Set("employee_id", employeeID)

		h.UserInfo(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got auth.UserInfoResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, 8, got.LeaveBalance.Casual)
		assert.NotNil(t, got.Attendance)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	h := auth.NewHandler(&fakeAuthService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)

	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	for _, ck := range w.Result().Cookies() {
		assert.Empty(t, ck.Value)
		assert.Equal(t, -1, ck.MaxAge)
	}
}
