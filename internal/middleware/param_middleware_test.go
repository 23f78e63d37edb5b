package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestExtractUintParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/competitions/42", nil)
	c.Params = gin.Params{{Key: "competition_id", Value: "42"}}

	ExtractUintParam("competition_id", "competitionID")(c)

	require.False(t, c.IsAborted())
	value, exists := c.Get("competitionID")
	require.True(t, exists)
	assert.Equal(t, uint(42), value)
}

func TestExtractUintParam_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "abc"},
		{"negative", "-5"},
		{"empty", ""},
		{"overflow uint32", "4294967296"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/competitions/x", nil)
			c.Params = gin.Params{{Key: "competition_id", Value: tt.value}}

			ExtractUintParam("competition_id", "competitionID")(c)

			assert.True(t, c.IsAborted())
			assert.Equal(t, http.StatusBadRequest, w.Code)
			_, exists := c.Get("competitionID")
			assert.False(t, exists)
		})
	}
}
