package endpoint

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/medical-forum/model"
	"github.com/ariebrainware/medical-forum/util"
	"gorm.io/gorm"
)

type createDiagnosisRequest struct {
	Disease              string     `json:"disease" binding:"required" example:"Tonsillitis"`
	DiagnosisDescription string     `json:"diagnosis_description" binding:"required" example:"Bacterial infection of the tonsils"`
	UserID               flexibleID `json:"user_id" binding:"required" swaggertype:"string" example:"4"`
	MessageID            flexibleID `json:"message_id" binding:"required" swaggertype:"string" example:"msg-1"`
}

// prepareDiagnosis validates a diagnosis submission and returns the row to
// insert. Checks run in a fixed order and the first failure wins:
//
//  1. the content type must be application/json (415)
//  2. the body must be a JSON object (400)
//  3. disease, diagnosis_description, user_id and message_id are required (400)
//  4. user_id must name an existing user (400)
//  5. that user must be a doctor (400)
//  6. message_id must name an existing message (400)
//
// Nothing is written to db.
func prepareDiagnosis(db *gorm.DB, contentType string, body []byte) (model.Diagnosis, error) {
	if err := checkJSONContentType(contentType); err != nil {
		return model.Diagnosis{}, err
	}

	var req createDiagnosisRequest
	if err := decodeRequest(body, &req); err != nil {
		return model.Diagnosis{}, err
	}
	req.Disease = strings.TrimSpace(req.Disease)
	req.DiagnosisDescription = strings.TrimSpace(req.DiagnosisDescription)
	if req.Disease == "" {
		return model.Diagnosis{}, missingField("disease")
	}
	if req.DiagnosisDescription == "" {
		return model.Diagnosis{}, missingField("diagnosis_description")
	}

	user, err := findUser(db, req.UserID.String())
	if err != nil {
		return model.Diagnosis{}, err
	}
	if !user.IsDoctor() {
		return model.Diagnosis{}, util.NewAPIError(util.KindAuthorization, "Only doctors can create diagnoses",
			fmt.Errorf("user %s has role %q", model.FormatUserID(user.ID), user.Role))
	}

	msg, err := findMessage(db, req.MessageID.String())
	if err != nil {
		return model.Diagnosis{}, err
	}

	return model.Diagnosis{
		UserID:               user.ID,
		MessageID:            msg.ID,
		Disease:              req.Disease,
		DiagnosisDescription: req.DiagnosisDescription,
	}, nil
}

// diagnosisSchema is the JSON schema advertised by the add-diagnosis control.
func diagnosisSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"disease": map[string]string{
				"title":       "Disease",
				"description": "Name of the diagnosed disease",
				"type":        "string",
			},
			"diagnosis_description": map[string]string{
				"title":       "Description",
				"description": "Explanation of the diagnosis",
				"type":        "string",
			},
			"user_id": map[string]string{
				"title":       "Doctor",
				"description": "Id of the doctor giving the diagnosis",
				"type":        "string",
			},
			"message_id": map[string]string{
				"title":       "Message",
				"description": "Id of the message being diagnosed, e.g. msg-1",
				"type":        "string",
			},
		},
		"required": []string{"disease", "diagnosis_description", "user_id", "message_id"},
	}
}
