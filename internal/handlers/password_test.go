package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
	"github.com/sbilibin2017/gw-movie-streaming/internal/services"
)

func TestChangePasswordHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockPasswordChanger)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			body: `{"currentPassword":"secret1","newPassword":"secret2"}`,
			mockSetup: func(m *MockPasswordChanger) {
				m.EXPECT().ChangePassword(gomock.Any(), userID, "secret1", "secret2").Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Password changed successfully"}`,
		},
		{
			name: "wrong current password",
			body: `{"currentPassword":"nope","newPassword":"secret2"}`,
			mockSetup: func(m *MockPasswordChanger) {
				m.EXPECT().ChangePassword(gomock.Any(), userID, "nope", "secret2").Return(services.ErrIncorrectPassword)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Current password is incorrect"}`,
		},
		{
			name:         "new password too short",
			body:         `{"currentPassword":"secret1","newPassword":"123"}`,
			mockSetup:    func(m *MockPasswordChanger) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Validation failed","fields":{"newPassword":"must be between 6 and 72 bytes long"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewMockPasswordChanger(ctrl)
			tt.mockSetup(svc)

			rr := httptest.NewRecorder()
			NewChangePasswordHandler(svc, response.NewErrorWriter(false)).
				ServeHTTP(rr, authed(http.MethodPut, "/api/users/change-password", tt.body, userID))

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestForgotPasswordHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockResetRequester)
		expectedCode int
	}{
		{
			name: "known or unknown email answers the same",
			body: `{"email":"Someone@Example.com"}`,
			mockSetup: func(m *MockResetRequester) {
				m.EXPECT().ForgotPassword(gomock.Any(), "someone@example.com").Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "invalid email",
			body:         `{"email":"nope"}`,
			mockSetup:    func(m *MockResetRequester) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "store failure",
			body: `{"email":"someone@example.com"}`,
			mockSetup: func(m *MockResetRequester) {
				m.EXPECT().ForgotPassword(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewMockResetRequester(ctrl)
			tt.mockSetup(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/users/forgot-password", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewForgotPasswordHandler(svc, response.NewErrorWriter(false)).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				assert.JSONEq(t, `{"message":"`+forgotPasswordMessage+`"}`, rr.Body.String())
			}
		})
	}
}

func TestResetPasswordHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockPasswordResetter)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			body: `{"email":"a@x.com","resetToken":"tok","newPassword":"secret2"}`,
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().ResetPassword(gomock.Any(), "a@x.com", "tok", "secret2").Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Password reset successfully"}`,
		},
		{
			name: "expired token",
			body: `{"email":"a@x.com","resetToken":"tok","newPassword":"secret2"}`,
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().ResetPassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(services.ErrInvalidResetToken)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid or expired reset token"}`,
		},
		{
			name:         "missing token",
			body:         `{"email":"a@x.com","newPassword":"secret2"}`,
			mockSetup:    func(m *MockPasswordResetter) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Validation failed","fields":{"resetToken":"is required"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewMockPasswordResetter(ctrl)
			tt.mockSetup(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/users/reset-password", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewResetPasswordHandler(svc, response.NewErrorWriter(false)).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}
