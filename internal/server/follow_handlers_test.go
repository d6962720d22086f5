package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFollowUser(t *testing.T) {
	tests := []struct {
		name           string
		sessionUser    uint
		targetParam    string
		mockSetup      func(m *testMocks)
		expectedStatus int
	}{
		{
			name:        "Success",
			sessionUser: 1,
			targetParam: "2",
			mockSetup: func(m *testMocks) {
				m.users.On("GetByID", mock.Anything, uint(2)).
					Return(&models.User{ID: 2, Username: "testuser2"}, nil)
				m.follows.On("Follow", mock.Anything, uint(1), uint(2)).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "Self follow",
			sessionUser: 1,
			targetParam: "1",
			mockSetup: func(m *testMocks) {
				m.users.On("GetByID", mock.Anything, uint(1)).
					Return(&models.User{ID: 1, Username: "testuser"}, nil)
				m.follows.On("Follow", mock.Anything, uint(1), uint(1)).
					Return(models.NewValidationError("Cannot follow yourself"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Duplicate edge",
			sessionUser: 1,
			targetParam: "2",
			mockSetup: func(m *testMocks) {
				m.users.On("GetByID", mock.Anything, uint(2)).
					Return(&models.User{ID: 2, Username: "testuser2"}, nil)
				m.follows.On("Follow", mock.Anything, uint(1), uint(2)).
					Return(models.NewConstraintViolationError("Already following this user", nil))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "Missing target",
			sessionUser: 1,
			targetParam: "99",
			mockSetup: func(m *testMocks) {
				m.users.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("User", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mocks := newTestServer()
			tt.mockSetup(mocks)

			app := fiber.New()
			withSessionUser(app, tt.sessionUser)
			app.Post("/users/:id/follow", s.FollowUser)

			req := httptest.NewRequest(http.MethodPost, "/users/"+tt.targetParam+"/follow", nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUnfollowUser(t *testing.T) {
	s, mocks := newTestServer()
	mocks.follows.On("Unfollow", mock.Anything, uint(1), uint(2)).Return(nil).Once()
	mocks.follows.On("Unfollow", mock.Anything, uint(1), uint(2)).
		Return(models.NewNotFoundError("Follow", "edge"))

	app := fiber.New()
	withSessionUser(app, 1)
	app.Delete("/users/:id/follow", s.UnfollowUser)

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/users/2/follow", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Second unfollow hits an absent edge.
	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, "/users/2/follow", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
