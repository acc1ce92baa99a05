package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w
}

func TestRespondError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrProjectNotFound, http.StatusNotFound},
		{domain.ErrApplicationNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrAlreadyApplied, http.StatusConflict},
		{domain.ErrAlreadyMember, http.StatusConflict},
		{domain.ErrInvalidState, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", domain.ErrPositionFull), http.StatusConflict},
		{fmt.Errorf("%w: bad positions", domain.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := respond(t, tc.err)
		assert.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}

func TestRespondError_IneligibleCarriesReasons(t *testing.T) {
	w := respond(t, &domain.IneligibleError{Reasons: []string{
		"recruitment period ended",
		"BACKEND is full",
	}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		OK       bool     `json:"ok"`
		Eligible bool     `json:"eligible"`
		Reasons  []string `json:"reasons"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.OK)
	assert.False(t, body.Eligible)
	assert.Equal(t, []string{"recruitment period ended", "BACKEND is full"}, body.Reasons)
}
