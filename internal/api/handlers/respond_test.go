package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"froot-boot-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriteError_Taxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", store.ErrNotFound), http.StatusNotFound},
		{"duplicate key", store.ErrDuplicate, http.StatusConflict},
		{"wrapped duplicate", fmt.Errorf("%w: email", store.ErrDuplicate), http.StatusConflict},
		{"validation", &store.ValidationError{Field: "role", Msg: "property is not allowed"}, http.StatusBadRequest},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			writeError(c, tc.err)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestQueryInt(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		query string
		want  int64
	}{
		{"absent falls back", "", 5},
		{"valid", "page=3", 3},
		{"zero falls back", "page=0", 5},
		{"negative falls back", "page=-2", 5},
		{"garbage falls back", "page=abc", 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/members?"+tc.query, nil)

			assert.Equal(t, tc.want, queryInt(c, "page", 5))
		})
	}
}
