package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *testMocks)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"username": "testuser", "email": "test@test.com", "password": "password"},
			mockSetup: func(m *testMocks) {
				m.users.On("GetByEmail", mock.Anything, "test@test.com").Return(nil, nil)
				m.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*models.User).ID = 1
					}).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing username",
			body:           map[string]string{"email": "test@test.com", "password": "password"},
			mockSetup:      func(m *testMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing email",
			body:           map[string]string{"username": "testuser", "password": "password"},
			mockSetup:      func(m *testMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing password",
			body:           map[string]string{"username": "testuser", "email": "test@test.com"},
			mockSetup:      func(m *testMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate username",
			body: map[string]string{"username": "testuser", "email": "other@test.com", "password": "password"},
			mockSetup: func(m *testMocks) {
				m.users.On("GetByEmail", mock.Anything, "other@test.com").Return(nil, nil)
				m.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
					Return(models.NewConstraintViolationError("Username or email already taken", nil))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Duplicate email",
			body: map[string]string{"username": "someoneelse", "email": "taken@test.com", "password": "password"},
			mockSetup: func(m *testMocks) {
				m.users.On("GetByEmail", mock.Anything, "taken@test.com").
					Return(&models.User{ID: 2, Email: "taken@test.com"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mocks := newTestServer()
			tt.mockSetup(mocks)

			app := fiber.New()
			app.Post("/auth/signup", s.Signup)

			resp, _ := app.Test(jsonRequest(http.MethodPost, "/auth/signup", tt.body))
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var out struct {
					Token string      `json:"token"`
					User  models.User `json:"user"`
				}
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				assert.NotEmpty(t, out.Token)
				assert.Equal(t, "testuser", out.User.Username)
			}
		})
	}
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)

	s, mocks := newTestServer()
	mocks.users.On("GetByUsername", mock.Anything, "testuser").
		Return(&models.User{ID: 1, Username: "testuser", Password: string(hash)}, nil)
	mocks.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	app := fiber.New()
	app.Post("/auth/login", s.Login)

	readBody := func(body map[string]string) (int, string) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/auth/login", body))
		defer func() { _ = resp.Body.Close() }()
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(raw)
	}

	okStatus, _ := readBody(map[string]string{"username": "testuser", "password": "password"})
	assert.Equal(t, http.StatusOK, okStatus)

	wrongPassStatus, wrongPassBody := readBody(map[string]string{"username": "testuser", "password": "nope"})
	noUserStatus, noUserBody := readBody(map[string]string{"username": "ghost", "password": "password"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassStatus)
	assert.Equal(t, http.StatusUnauthorized, noUserStatus)
	// A caller must not be able to tell which part of the credentials failed.
	assert.Equal(t, wrongPassBody, noUserBody)
}

func TestLogoutIdempotent(t *testing.T) {
	s, _ := newTestServer()

	app := fiber.New()
	app.Post("/auth/logout", s.Logout)

	// Anonymous logout succeeds.
	resp, _ := app.Test(jsonRequest(http.MethodPost, "/auth/logout", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Repeated logout with the same (now meaningless) token also succeeds.
	token, err := s.generateToken(1, "testuser")
	assert.NoError(t, err)
	for i := 0; i < 2; i++ {
		req := jsonRequest(http.MethodPost, "/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
