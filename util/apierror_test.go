package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind_Status(t *testing.T) {
	cases := map[ErrorKind]int{
		KindMediaType:         http.StatusUnsupportedMediaType,
		KindMalformedRequest:  http.StatusBadRequest,
		KindReferenceNotFound: http.StatusBadRequest,
		KindAuthorization:     http.StatusBadRequest,
		KindResourceNotFound:  http.StatusNotFound,
		KindRateLimited:       http.StatusTooManyRequests,
		KindInternal:          http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equalf(t, status, kind.Status(), "kind %s", kind)
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "authorization", KindAuthorization.String())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}

func TestAPIError_Wrapping(t *testing.T) {
	cause := errors.New("user 154 does not exist")
	err := NewAPIError(KindReferenceNotFound, "Unknown user", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Unknown user: user 154 does not exist", err.Error())
	assert.Equal(t, "user 154 does not exist", err.Detail())

	wrapped := fmt.Errorf("create diagnosis: %w", err)
	assert.Equal(t, KindReferenceNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(cause))
}

func TestAPIError_InternalDetailIsHidden(t *testing.T) {
	err := NewAPIError(KindInternal, "Failed to save diagnosis", errors.New("disk I/O error"))
	assert.Equal(t, "Failed to save diagnosis", err.Detail())

	noCause := NewAPIError(KindMediaType, "Unsupported media type", nil)
	assert.Equal(t, "Unsupported media type", noCause.Error())
	assert.Equal(t, "Unsupported media type", noCause.Detail())
}
