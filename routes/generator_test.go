package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestEvent(t *testing.T, body string) (*core.RequestEvent, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	e.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return e, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

const invalidBudgetRequest = `{
	"destinations": [{"city": "Paris", "country": "France", "duration_days": 2}],
	"start_date": "2025-07-01",
	"end_date": "2025-07-03",
	"budget": 0,
	"mood": "culture",
	"group_size": 2
}`

func TestGenerateProgramRejectsInvalidRequest(t *testing.T) {
	api := &API{}

	e, rec := newRequestEvent(t, invalidBudgetRequest)
	require.NoError(t, api.GenerateProgram(e))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "budget")
}

func TestGenerateStructuredTextRejectsInvalidRequest(t *testing.T) {
	api := &API{}

	e, rec := newRequestEvent(t, invalidBudgetRequest)
	require.NoError(t, api.GenerateStructuredText(e))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "budget")
}

func TestGenerateStructuredTextRejectsMalformedBody(t *testing.T) {
	api := &API{}

	e, rec := newRequestEvent(t, "{not json")
	require.NoError(t, api.GenerateStructuredText(e))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeError(t, rec))
}

func TestGenerateProgramV2RejectsUnknownType(t *testing.T) {
	api := &API{}

	e, rec := newRequestEvent(t, `{
		"type": "round",
		"destinations": [{"city": "Paris", "country": "France", "duration_days": 2}],
		"start_date": "2025-07-01",
		"end_date": "2025-07-03",
		"budget": 500,
		"mood": "culture",
		"group_size": 2
	}`)
	require.NoError(t, api.GenerateProgramV2(e))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "type")
}
