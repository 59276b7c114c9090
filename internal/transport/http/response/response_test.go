package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-inventory/internal/domain"
)

func classify(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Err(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestErrClassification(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		ve := &domain.ValidationError{}
		ve.Add("name", "name is required")
		code, body := classify(t, ve)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, LabelValidation, body["error"])
		fields, ok := body["fields"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "name is required", fields["name"])
	})

	t.Run("not found", func(t *testing.T) {
		code, body := classify(t, &domain.NotFoundError{Resource: "supplier", ID: "s1"})
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, LabelNotFound, body["error"])
	})

	t.Run("conflict carries blocking count", func(t *testing.T) {
		code, body := classify(t, &domain.ConflictError{
			Field: "supplier", Message: "cannot delete supplier with associated products", Blocking: 3,
		})
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "supplier", body["field"])
		assert.EqualValues(t, 3, body["blockingCount"])
	})

	t.Run("conflict without blocking omits count", func(t *testing.T) {
		code, body := classify(t, &domain.ConflictError{Field: "username", Message: "username already exists"})
		assert.Equal(t, http.StatusConflict, code)
		assert.NotContains(t, body, "blockingCount")
	})

	t.Run("invalid credentials", func(t *testing.T) {
		code, body := classify(t, domain.ErrInvalidCredentials)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, LabelAuthFailure, body["error"])
	})

	t.Run("unexpected errors are not echoed", func(t *testing.T) {
		code, body := classify(t, errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.NotContains(t, body["message"], "connection refused")
	})
}

func TestEnvelope(t *testing.T) {
	ok := OK(gin.H{"count": 1})
	assert.Equal(t, true, ok["success"])
	assert.Equal(t, 1, ok["count"])

	fail := Fail(LabelForbidden, "access denied")
	assert.Equal(t, false, fail["success"])
	assert.Equal(t, LabelForbidden, fail["error"])
}
