package apiclient

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractErrorStringBody(t *testing.T) {
	res := ExtractError(400, []byte(`"Invalid credentials"`))
	assert.Equal(t, "Invalid credentials", res.Message)
	assert.Nil(t, res.Errors)
}

func TestExtractErrorFieldPrecedence(t *testing.T) {
	// "error" wins over "message" and "detail"
	res := ExtractError(400, []byte(`{"error":"bad","message":"worse","detail":"worst"}`))
	assert.Equal(t, "bad", res.Message)

	res = ExtractError(400, []byte(`{"message":"worse","detail":"worst"}`))
	assert.Equal(t, "worse", res.Message)

	res = ExtractError(400, []byte(`{"detail":"worst"}`))
	assert.Equal(t, "worst", res.Message)
}

func TestExtractErrorErrorsMap(t *testing.T) {
	res := ExtractError(400, []byte(`{"message":"Validation failed","errors":{"email":["required"]}}`))
	assert.Equal(t, "Validation failed", res.Message)
	require.Contains(t, res.Errors, "email")
}

func TestExtractErrorObjectFallback(t *testing.T) {
	// No known message field: the whole body becomes the error map
	res := ExtractError(400, []byte(`{"email":["Enter a valid email address."]}`))
	assert.Equal(t, FallbackMessage, res.Message)
	assert.Contains(t, res.Errors, "email")
}

func TestExtractErrorEmptyAndMalformed(t *testing.T) {
	assert.Equal(t, FallbackMessage, ExtractError(500, nil).Message)
	assert.Equal(t, FallbackMessage, ExtractError(500, []byte("<html>")).Message)
	assert.Equal(t, FallbackMessage, ExtractError(400, []byte(`""`)).Message)
}

func TestNetworkFailure(t *testing.T) {
	res := networkFailure(assert.AnError)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, assert.AnError.Error(), res.Message)
	assert.True(t, res.IsNetworkError())
	// A real 5xx from upstream is not a network error
	assert.False(t, ExtractError(502, nil).IsNetworkError())
	assert.True(t, ExtractError(502, nil).IsServerError())
	assert.True(t, ExtractError(404, nil).IsClientError())
}

func TestResultDecode(t *testing.T) {
	res := successResult(200, []byte(`{"id":"7"}`))
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, res.Decode(&out))
	assert.Equal(t, "7", out.ID)
	assert.True(t, res.Success)
	assert.Equal(t, json.RawMessage(`{"id":"7"}`), res.Data)
}
