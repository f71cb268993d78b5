package util

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIErrorParams struct {
	Msg string
	Err error
}

// CallMasonError aborts the request with a Mason error document. The status
// code comes from the error kind; errors that are not an *APIError are
// reported as internal server errors.
func CallMasonError(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = NewAPIError(KindInternal, "Internal server error", err)
	}

	status := apiErr.Kind.Status()
	if status >= http.StatusInternalServerError {
		Logger().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("kind", apiErr.Kind.String()),
			zap.Error(apiErr.Err),
		)
	}

	_ = c.Error(apiErr)

	body := NewMasonBuilder()
	body["resource_url"] = c.Request.URL.Path
	body.AddError(apiErr.Title, apiErr.Detail())
	body.AddControl("profile", MasonControl{Href: ErrorProfile})

	c.Header("Content-Type", MasonJSON)
	c.AbortWithStatusJSON(status, body)
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	CallMasonError(c, NewAPIError(KindMalformedRequest, params.Msg, params.Err))
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	CallMasonError(c, NewAPIError(KindResourceNotFound, params.Msg, params.Err))
}

// CallServerError is for return API response server error
func CallServerError(c *gin.Context, params APIErrorParams) {
	CallMasonError(c, NewAPIError(KindInternal, params.Msg, params.Err))
}

// CallCreated answers 201 with the Location of the new resource and no body.
func CallCreated(c *gin.Context, location string) {
	c.Header("Location", location)
	c.Status(http.StatusCreated)
}

// CallMasonOK answers 200 with a Mason document bound to profile.
func CallMasonOK(c *gin.Context, profile string, body MasonBuilder) {
	RenderMason(c, http.StatusOK, profile, body)
}

// NormalizeName normalizes a name by trimming leading/trailing whitespace
// and collapsing multiple internal spaces into single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
