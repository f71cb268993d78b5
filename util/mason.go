package util

import (
	"github.com/gin-gonic/gin"
)

// Media types and profiles shared by every resource.
const (
	MasonJSON = "application/vnd.mason+json"
	JSON      = "application/json"

	ErrorProfile  = "/profiles/error-profile/"
	LinkRelations = "/medical_forum/link-relations/"
	Namespace     = "medical_forum"
)

// MasonControl is a hypermedia control: a link, optionally with the method
// and JSON schema of the request it accepts.
type MasonControl struct {
	Href     string                 `json:"href"`
	Title    string                 `json:"title,omitempty"`
	Method   string                 `json:"method,omitempty"`
	Encoding string                 `json:"encoding,omitempty"`
	Schema   map[string]interface{} `json:"schema,omitempty"`
}

// MasonBuilder assembles a Mason document. Plain attributes are set with
// ordinary map assignment.
type MasonBuilder map[string]interface{}

// NewMasonBuilder returns an empty document.
func NewMasonBuilder() MasonBuilder {
	return MasonBuilder{}
}

// AddNamespace declares a link relation namespace.
func (b MasonBuilder) AddNamespace(ns, uri string) {
	namespaces, _ := b["@namespaces"].(map[string]interface{})
	if namespaces == nil {
		namespaces = map[string]interface{}{}
		b["@namespaces"] = namespaces
	}
	namespaces[ns] = map[string]string{"name": uri}
}

// AddControl adds or replaces the control called name.
func (b MasonBuilder) AddControl(name string, ctrl MasonControl) {
	b.Controls()[name] = ctrl
}

// Controls returns the document's controls, creating the map when needed.
func (b MasonBuilder) Controls() map[string]MasonControl {
	controls, _ := b["@controls"].(map[string]MasonControl)
	if controls == nil {
		controls = map[string]MasonControl{}
		b["@controls"] = controls
	}
	return controls
}

// AddError sets the @error element.
func (b MasonBuilder) AddError(title string, details ...string) {
	if details == nil {
		details = []string{}
	}
	b["@error"] = map[string]interface{}{
		"@message":  title,
		"@messages": details,
	}
}

// MasonMediaType returns the Content-Type of a representation bound to profile.
func MasonMediaType(profile string) string {
	if profile == "" {
		return MasonJSON
	}
	return MasonJSON + ";" + profile
}

// RenderMason writes body as Mason+JSON with the profile-qualified media type.
func RenderMason(c *gin.Context, status int, profile string, body interface{}) {
	c.Header("Content-Type", MasonMediaType(profile))
	c.JSON(status, body)
}
