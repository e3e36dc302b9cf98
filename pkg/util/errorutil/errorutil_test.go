package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "domain error passes through",
			err:         NewDuplicateEmail(),
			wantCode:    CodeDuplicateEmail,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Email already exists!",
		},
		{
			name:        "wrapped domain error is found",
			err:         fmt.Errorf("register: %w", NewInvalidCredentials()),
			wantCode:    CodeInvalidCredentials,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid email or password",
		},
		{
			name:        "fiber error keeps status",
			err:         fiber.NewError(http.StatusNotFound, "Cannot GET /nope"),
			wantCode:    CodeNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Cannot GET /nope",
		},
		{
			name:        "unknown error becomes internal with its message",
			err:         errors.New("connection refused"),
			wantCode:    CodeInternal,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "connection refused",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ToDomainError(tc.err)
			assert.Equal(t, tc.wantCode, got.Code)
			assert.Equal(t, tc.wantStatus, got.HTTPStatus)
			assert.Equal(t, tc.wantMessage, got.Message)
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(NewNotFound("Product"), CodeNotFound))
	assert.False(t, HasCode(NewNotFound("Product"), CodeValidation))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
}
