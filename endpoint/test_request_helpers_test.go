package endpoint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ariebrainware/medical-forum/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestSpec struct {
	method      string
	path        string
	body        interface{}
	contentType string
}

// performRequest serves spec on h. Non-string bodies are marshalled to JSON
// and sent as application/json unless spec.contentType says otherwise.
func performRequest(t *testing.T, h http.Handler, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var payload string
	contentType := spec.contentType
	switch v := spec.body.(type) {
	case nil:
	case string:
		payload = v
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		payload = string(b)
		if contentType == "" {
			contentType = util.JSON
		}
	}

	req := httptest.NewRequest(spec.method, spec.path, strings.NewReader(payload))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 && strings.Contains(w.Header().Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	}
	return w, response
}

// controlHref returns @controls[name].href of a decoded Mason document.
func controlHref(t *testing.T, doc map[string]interface{}, name string) string {
	t.Helper()
	controls, ok := doc["@controls"].(map[string]interface{})
	require.True(t, ok, "document has no @controls")
	ctrl, ok := controls[name].(map[string]interface{})
	require.Truef(t, ok, "document has no %q control", name)
	href, _ := ctrl["href"].(string)
	return href
}

// assertMasonError checks the status and shape of an error response.
func assertMasonError(t *testing.T, w *httptest.ResponseRecorder, response map[string]interface{}, status int) {
	t.Helper()
	assert.Equal(t, status, w.Code)
	assert.Equal(t, util.MasonJSON, w.Header().Get("Content-Type"))
	require.NotNil(t, response)
	assert.Contains(t, response, "@error")
	assert.Equal(t, util.ErrorProfile, controlHref(t, response, "profile"))
}
