package endpoint

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/ariebrainware/medical-forum/middleware"
	"github.com/ariebrainware/medical-forum/model"
	"github.com/ariebrainware/medical-forum/util"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Canonical URLs and profiles of the forum resources.
const (
	APIPrefix      = "/medical_forum/api"
	DiagnosesURL   = APIPrefix + "/diagnoses/"
	MessagesURL    = APIPrefix + "/messages/"
	UsersURL       = APIPrefix + "/users/"
	MessageProfile = "/profiles/message-profile/"
	UserProfile    = "/profiles/user-profile/"

	DiagnosisProfile = "/profiles/diagnosis-profile/"
)

const (
	defaultListLimit = 100
	maxBodyBytes     = 1 << 20
)

func init() {
	// Validation errors name fields by their JSON key.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func diagnosisURL(id uint) string {
	return DiagnosesURL + model.FormatDiagnosisID(id) + "/"
}

func messageURL(id uint) string {
	return MessagesURL + model.FormatMessageID(id) + "/"
}

func userURL(id uint) string {
	return UsersURL + model.FormatUserID(id) + "/"
}

// helper: ensure DB is available in context or respond with server error
func ensureDB(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return nil, false
	}
	return db, true
}

// readBody reads the request body, capped at maxBodyBytes.
func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, util.NewAPIError(util.KindMalformedRequest, "Could not read request body", err)
	}
	return body, nil
}

// listWindow returns the limit and offset query parameters. Invalid values
// fall back to the defaults.
func listWindow(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if err != nil || limit <= 0 {
		limit = defaultListLimit
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// checkJSONContentType fails with a media type error unless contentType is
// application/json. Parameters such as charset are ignored.
func checkJSONContentType(contentType string) error {
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if !strings.EqualFold(mediaType, binding.MIMEJSON) {
		return util.NewAPIError(util.KindMediaType, "Unsupported media type",
			fmt.Errorf("use %s, got %q", binding.MIMEJSON, contentType))
	}
	return nil
}

// decodeRequest parses body into req and runs its binding tags. Any failure
// is a malformed request.
func decodeRequest(body []byte, req interface{}) error {
	err := binding.JSON.BindBody(body, req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return util.NewAPIError(util.KindMalformedRequest, "Missing required fields",
			fmt.Errorf("missing or empty: %s", strings.Join(fields, ", ")))
	}
	return util.NewAPIError(util.KindMalformedRequest, "Request body is not valid JSON", err)
}

// missingField reports a required text field that is empty once trimmed.
func missingField(name string) error {
	return util.NewAPIError(util.KindMalformedRequest, "Missing required fields",
		fmt.Errorf("missing or empty: %s", name))
}

// findUser loads the user referenced by ref. A malformed or unknown id is a
// reference error.
func findUser(db *gorm.DB, ref string) (model.User, error) {
	id, err := model.ParseUserID(ref)
	if err != nil {
		return model.User{}, util.NewAPIError(util.KindReferenceNotFound, "User does not exist", err)
	}
	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, util.NewAPIError(util.KindReferenceNotFound, "User does not exist",
				fmt.Errorf("no user with id %s", model.FormatUserID(id)))
		}
		return model.User{}, util.NewAPIError(util.KindInternal, "Failed to look up user", err)
	}
	return user, nil
}

// findMessage loads the message referenced by ref, "msg-<n>" or "<n>".
func findMessage(db *gorm.DB, ref string) (model.Message, error) {
	id, err := model.ParseMessageRef(ref)
	if err != nil {
		return model.Message{}, util.NewAPIError(util.KindReferenceNotFound, "Message does not exist", err)
	}
	var msg model.Message
	if err := db.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Message{}, util.NewAPIError(util.KindReferenceNotFound, "Message does not exist",
				fmt.Errorf("no message %s", model.FormatMessageID(id)))
		}
		return model.Message{}, util.NewAPIError(util.KindInternal, "Failed to look up message", err)
	}
	return msg, nil
}

// notFound builds the error for an unknown resource id.
func notFound(what, id string) error {
	return util.NewAPIError(util.KindResourceNotFound, what+" not found",
		fmt.Errorf("there is no %s with id %s", strings.ToLower(what), id))
}

// lookupError maps a failed primary key lookup to a 404 or a 500.
func lookupError(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what, id)
	}
	return util.NewAPIError(util.KindInternal, "Failed to retrieve "+strings.ToLower(what), err)
}
