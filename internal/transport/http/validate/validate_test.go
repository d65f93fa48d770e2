package validate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/dto"
)

func newReq(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.True(t, domain.Is(err, "validation_failed"), "expected validation error, got %v", err)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	return de.Meta
}

func TestBody(t *testing.T) {
	t.Run("valid_body_is_normalized", func(t *testing.T) {
		var req dto.CreateUserRequest
		err := Body(newReq(`{"name":"  Alice ","email":"alice@example.com"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, "Alice", req.Name)
		assert.Equal(t, "alice@example.com", req.Email)
	})

	t.Run("missing_email", func(t *testing.T) {
		var req dto.CreateUserRequest
		fields := fieldsOf(t, Body(newReq(`{"name":"Bob"}`), &req))
		assert.Equal(t, map[string]string{"email": "email is a required field"}, fields)
	})

	t.Run("invalid_email", func(t *testing.T) {
		var req dto.CreateUserRequest
		fields := fieldsOf(t, Body(newReq(`{"name":"Bob","email":"not-an-email"}`), &req))
		assert.Equal(t, "email must be a valid email address", fields["email"])
	})

	t.Run("blank_name_fails_required", func(t *testing.T) {
		var req dto.CreateUserRequest
		fields := fieldsOf(t, Body(newReq(`{"name":"   ","email":"bob@example.com"}`), &req))
		assert.Equal(t, "name is a required field", fields["name"])
	})

	t.Run("non_string_name", func(t *testing.T) {
		var req dto.CreateUserRequest
		fields := fieldsOf(t, Body(newReq(`{"name":5,"email":"bob@example.com"}`), &req))
		assert.Equal(t, map[string]string{"name": "name must be a string"}, fields)
	})

	t.Run("empty_body_reports_every_field", func(t *testing.T) {
		var req dto.CreateUserRequest
		fields := fieldsOf(t, Body(newReq(``), &req))
		assert.Len(t, fields, 2)
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "email")
	})

	t.Run("malformed_json", func(t *testing.T) {
		var req dto.CreateUserRequest
		err := Body(newReq(`{"name":`), &req)
		assert.True(t, domain.Is(err, "invalid_json"), "got %v", err)
	})

	t.Run("trailing_data_is_invalid_json", func(t *testing.T) {
		for _, body := range []string{
			`{"name":"A","email":"a@b.co"} not json at all`,
			`{}{}`,
			`{"name":"A","email":"a@b.co"}{"name":"B"}`,
			`{"name":5,"email":"a@b.co"} 1`,
		} {
			var req dto.CreateUserRequest
			err := Body(newReq(body), &req)
			assert.True(t, domain.Is(err, "invalid_json"), "body %q: got %v", body, err)
		}
	})

	t.Run("trailing_whitespace_is_fine", func(t *testing.T) {
		var req dto.CreateUserRequest
		require.NoError(t, Body(newReq("{\"name\":\"A\",\"email\":\"a@b.co\"}\n  \n"), &req))
		assert.Equal(t, "A", req.Name)
	})

	t.Run("top_level_array_is_invalid_json", func(t *testing.T) {
		var req dto.CreateUserRequest
		err := Body(newReq(`[1,2]`), &req)
		assert.True(t, domain.Is(err, "invalid_json"), "got %v", err)
	})
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(&dto.CreateUserRequest{Name: "A", Email: "a@example.com"}))

	fields := fieldsOf(t, Struct(&dto.CreateUserRequest{}))
	assert.Equal(t, "name is a required field", fields["name"])
	assert.Equal(t, "email is a required field", fields["email"])
}
