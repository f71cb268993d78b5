package endpoint

import (
	"net/http"
	"strconv"

	"github.com/ariebrainware/medical-forum/model"
	"github.com/ariebrainware/medical-forum/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// ListDiagnoses godoc
// @Summary      List diagnoses
// @Description  Get the diagnoses collection with a control for adding a diagnosis
// @Tags         Diagnosis
// @Produce      json
// @Param        limit query int false "Limit number of results" default(100)
// @Param        offset query int false "Offset for pagination" default(0)
// @Success      200 {object} map[string]interface{} "Diagnoses collection"
// @Failure      500 {object} map[string]interface{} "Server error"
// @Router       /medical_forum/api/diagnoses/ [get]
func ListDiagnoses(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	limit, offset := listWindow(c)

	var diagnoses []model.Diagnosis
	if err := db.Order("diagnosis_id").Limit(limit).Offset(offset).Find(&diagnoses).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve diagnoses",
			Err: err,
		})
		return
	}

	items := make([]util.MasonBuilder, 0, len(diagnoses))
	for _, d := range diagnoses {
		item := util.MasonBuilder{
			"id":         model.FormatDiagnosisID(d.ID),
			"disease":    d.Disease,
			"user_id":    model.FormatUserID(d.UserID),
			"message_id": strconv.FormatUint(uint64(d.MessageID), 10),
		}
		item.AddControl("self", util.MasonControl{Href: diagnosisURL(d.ID)})
		item.AddControl("profile", util.MasonControl{Href: DiagnosisProfile})
		items = append(items, item)
	}

	body := util.NewMasonBuilder()
	body.AddNamespace(util.Namespace, util.LinkRelations)
	body.AddControl("self", util.MasonControl{Href: DiagnosesURL})
	body.AddControl(util.Namespace+":add-diagnosis", util.MasonControl{
		Href:     DiagnosesURL,
		Title:    "Create a new diagnosis",
		Method:   http.MethodPost,
		Encoding: "json",
		Schema:   diagnosisSchema(),
	})
	body["items"] = items

	util.CallMasonOK(c, DiagnosisProfile, body)
}

// CreateDiagnosis godoc
// @Summary      Create a diagnosis
// @Description  A doctor attaches a diagnosis to a forum message
// @Tags         Diagnosis
// @Accept       json
// @Param        request body createDiagnosisRequest true "Diagnosis"
// @Success      201 "Created, Location holds the new diagnosis"
// @Failure      400 {object} map[string]interface{} "Invalid request"
// @Failure      415 {object} map[string]interface{} "Unsupported media type"
// @Failure      500 {object} map[string]interface{} "Server error"
// @Router       /medical_forum/api/diagnoses/ [post]
func CreateDiagnosis(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	body, err := readBody(c)
	if err != nil {
		util.CallMasonError(c, err)
		return
	}

	diagnosis, err := prepareDiagnosis(db, c.GetHeader("Content-Type"), body)
	if err != nil {
		util.CallMasonError(c, err)
		return
	}

	if err := db.Omit(clause.Associations).Create(&diagnosis).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create diagnosis",
			Err: err,
		})
		return
	}

	util.CallCreated(c, diagnosisURL(diagnosis.ID))
}

// GetDiagnosis godoc
// @Summary      Get a diagnosis
// @Tags         Diagnosis
// @Produce      json
// @Param        id path string true "Diagnosis id, e.g. dgs-1"
// @Success      200 {object} map[string]interface{} "Diagnosis"
// @Failure      404 {object} map[string]interface{} "Not found"
// @Router       /medical_forum/api/diagnoses/{id}/ [get]
func GetDiagnosis(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	id := c.Param("id")
	dbID, err := model.ParseDiagnosisID(id)
	if err != nil {
		util.CallMasonError(c, notFound("Diagnosis", id))
		return
	}

	var d model.Diagnosis
	if err := db.First(&d, dbID).Error; err != nil {
		util.CallMasonError(c, lookupError(err, "Diagnosis", id))
		return
	}

	util.CallMasonOK(c, DiagnosisProfile, diagnosisRepresentation(d))
}

func diagnosisRepresentation(d model.Diagnosis) util.MasonBuilder {
	body := util.MasonBuilder{
		"disease":               d.Disease,
		"user_id":               model.FormatUserID(d.UserID),
		"diagnosis_description": d.DiagnosisDescription,
		"message_id":            strconv.FormatUint(uint64(d.MessageID), 10),
	}
	body.AddNamespace(util.Namespace, util.LinkRelations)
	body.AddControl("self", util.MasonControl{Href: diagnosisURL(d.ID)})
	body.AddControl("profile", util.MasonControl{Href: DiagnosisProfile})
	body.AddControl("collection", util.MasonControl{Href: DiagnosesURL})
	body.AddControl("user_id", util.MasonControl{Href: userURL(d.UserID)})
	body.AddControl("message_id", util.MasonControl{Href: messageURL(d.MessageID)})
	return body
}
