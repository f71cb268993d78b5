package endpoint

import (
	"net/http"
	"testing"

	"github.com/ariebrainware/medical-forum/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDiagnosis() map[string]interface{} {
	return map[string]interface{}{
		"disease":               "Tonsillitis",
		"diagnosis_description": "Swollen tonsils with white spots, start antibiotics.",
		"user_id":               "4",
		"message_id":            "msg-1",
	}
}

func TestCreateDiagnosis_Success(t *testing.T) {
	r, engine := setupForumTest(t)

	w, _ := performRequest(t, r, requestSpec{method: http.MethodPost, path: DiagnosesURL, body: validDiagnosis()})

	require.Equal(t, http.StatusCreated, w.Code)
	location := w.Header().Get("Location")
	assert.Equal(t, "/medical_forum/api/diagnoses/dgs-11/", location)
	assert.Zero(t, w.Body.Len())
	assertRowCount(t, engine, model.DiagnosisTable, model.FixtureDiagnosisCount+1)

	w, doc := performRequest(t, r, requestSpec{method: http.MethodGet, path: location})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tonsillitis", doc["disease"])
	assert.Equal(t, "Swollen tonsils with white spots, start antibiotics.", doc["diagnosis_description"])
	assert.Equal(t, "4", doc["user_id"])
	assert.Equal(t, "1", doc["message_id"])
	assert.Equal(t, location, controlHref(t, doc, "self"))
}

func TestCreateDiagnosis_NumericReferences(t *testing.T) {
	r, engine := setupForumTest(t)

	body := validDiagnosis()
	body["user_id"] = 4
	body["message_id"] = 2
	w, _ := performRequest(t, r, requestSpec{method: http.MethodPost, path: DiagnosesURL, body: body})

	require.Equal(t, http.StatusCreated, w.Code)
	assertRowCount(t, engine, model.DiagnosisTable, model.FixtureDiagnosisCount+1)
}

func TestCreateDiagnosis_ContentTypeWithCharset(t *testing.T) {
	r, _ := setupForumTest(t)

	w, _ := performRequest(t, r, requestSpec{
		method:      http.MethodPost,
		path:        DiagnosesURL,
		body:        validDiagnosis(),
		contentType: "application/json; charset=utf-8",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateDiagnosis_Rejected(t *testing.T) {
	with := func(key string, value interface{}) map[string]interface{} {
		body := validDiagnosis()
		if value == nil {
			delete(body, key)
		} else {
			body[key] = value
		}
		return body
	}

	tests := []struct {
		name string
		body interface{}
	}{
		{"patient author", with("user_id", "1")},
		{"unknown user", with("user_id", "154")},
		{"malformed user id", with("user_id", "doctor")},
		{"missing disease", with("disease", nil)},
		{"missing description", with("diagnosis_description", nil)},
		{"blank disease", with("disease", "   ")},
		{"missing user id", with("user_id", nil)},
		{"missing message id", with("message_id", nil)},
		{"unknown message", with("message_id", "msg-999")},
		{"boolean user id", with("user_id", true)},
		{"not json", "disease=flu"},
		{"json array", "[]"},
		{"empty body", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, engine := setupForumTest(t)

			w, resp := performRequest(t, r, requestSpec{
				method:      http.MethodPost,
				path:        DiagnosesURL,
				body:        tt.body,
				contentType: "application/json",
			})

			assertMasonError(t, w, resp, http.StatusBadRequest)
			assert.Empty(t, w.Header().Get("Location"))
			assert.Equal(t, DiagnosesURL, resp["resource_url"])
			assertRowCount(t, engine, model.DiagnosisTable, model.FixtureDiagnosisCount)
		})
	}
}

func TestCreateDiagnosis_UnsupportedMediaType(t *testing.T) {
	tests := []struct {
		name        string
		body        interface{}
		contentType string
	}{
		{"valid payload as text", validDiagnosis(), "text/plain"},
		{"invalid payload as text", "not even json", "text/plain"},
		{"form encoded", validDiagnosis(), "application/x-www-form-urlencoded"},
		{"mason", validDiagnosis(), "application/vnd.mason+json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, engine := setupForumTest(t)

			w, resp := performRequest(t, r, requestSpec{
				method:      http.MethodPost,
				path:        DiagnosesURL,
				body:        tt.body,
				contentType: tt.contentType,
			})

			assertMasonError(t, w, resp, http.StatusUnsupportedMediaType)
			assertRowCount(t, engine, model.DiagnosisTable, model.FixtureDiagnosisCount)
		})
	}
}

func TestCreateDiagnosis_MissingContentType(t *testing.T) {
	r, _ := setupForumTest(t)

	w, resp := performRequest(t, r, requestSpec{method: http.MethodPost, path: DiagnosesURL, body: `{"disease":"Flu"}`})
	assertMasonError(t, w, resp, http.StatusUnsupportedMediaType)
}

func TestGetDiagnosis(t *testing.T) {
	r, _ := setupForumTest(t)
	url := "/medical_forum/api/diagnoses/dgs-1/"

	w, doc := performRequest(t, r, requestSpec{method: http.MethodGet, path: url})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.mason+json;/profiles/diagnosis-profile/", w.Header().Get("Content-Type"))
	assert.Equal(t, url, controlHref(t, doc, "self"))
	assert.Equal(t, "/profiles/diagnosis-profile/", controlHref(t, doc, "profile"))
	assert.Equal(t, DiagnosesURL, controlHref(t, doc, "collection"))
	assert.Equal(t, "/medical_forum/api/users/4/", controlHref(t, doc, "user_id"))
	assert.Equal(t, "/medical_forum/api/messages/msg-1/", controlHref(t, doc, "message_id"))

	assert.Equal(t, "Streptococcal pharyngitis", doc["disease"])
	assert.Equal(t, "4", doc["user_id"])
	assert.Equal(t, "1", doc["message_id"])
	assert.NotEmpty(t, doc["diagnosis_description"])

	namespaces, ok := doc["@namespaces"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, namespaces, "medical_forum")
}

func TestGetDiagnosis_NotFound(t *testing.T) {
	r, _ := setupForumTest(t)

	for _, id := range []string{"dgs-290", "dgs-0", "290", "msg-1", "dgs-abc"} {
		t.Run(id, func(t *testing.T) {
			w, resp := performRequest(t, r, requestSpec{method: http.MethodGet, path: DiagnosesURL + id + "/"})
			assertMasonError(t, w, resp, http.StatusNotFound)
		})
	}
}

func TestGetDiagnosis_RedirectsToCanonicalURL(t *testing.T) {
	r, _ := setupForumTest(t)

	w, _ := performRequest(t, r, requestSpec{method: http.MethodGet, path: "/medical_forum/api/diagnoses/dgs-1"})
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/medical_forum/api/diagnoses/dgs-1/", w.Header().Get("Location"))
}

func TestListDiagnoses(t *testing.T) {
	r, _ := setupForumTest(t)

	w, doc := performRequest(t, r, requestSpec{method: http.MethodGet, path: DiagnosesURL})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.mason+json;/profiles/diagnosis-profile/", w.Header().Get("Content-Type"))
	assert.Equal(t, DiagnosesURL, controlHref(t, doc, "self"))

	controls := doc["@controls"].(map[string]interface{})
	add, ok := controls["medical_forum:add-diagnosis"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, add["method"])
	assert.Equal(t, "json", add["encoding"])
	schema := add["schema"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{"disease", "diagnosis_description", "user_id", "message_id"}, schema["required"])

	items, ok := doc["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, model.FixtureDiagnosisCount)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "dgs-1", first["id"])
	assert.Equal(t, "/medical_forum/api/diagnoses/dgs-1/", controlHref(t, first, "self"))
}

func TestListDiagnoses_Window(t *testing.T) {
	r, _ := setupForumTest(t)

	_, doc := performRequest(t, r, requestSpec{method: http.MethodGet, path: DiagnosesURL + "?limit=3&offset=2"})

	items := doc["items"].([]interface{})
	require.Len(t, items, 3)
	assert.Equal(t, "dgs-3", items[0].(map[string]interface{})["id"])
}

func TestListDiagnoses_Empty(t *testing.T) {
	r, engine := setupForumTest(t)
	require.NoError(t, engine.Clear())

	w, doc := performRequest(t, r, requestSpec{method: http.MethodGet, path: DiagnosesURL})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, doc["items"])
}
