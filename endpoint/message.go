package endpoint

import (
	"net/http"
	"strings"
	"time"

	"github.com/ariebrainware/medical-forum/model"
	"github.com/ariebrainware/medical-forum/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type createMessageRequest struct {
	Headline    string     `json:"headline" binding:"required" example:"Soreness in the throat"`
	ArticleBody string     `json:"articleBody" binding:"required" example:"It started yesterday."`
	Author      flexibleID `json:"author" binding:"required" swaggertype:"string" example:"1"`
	ReplyTo     flexibleID `json:"reply_to" swaggertype:"string" example:"msg-1"`
}

// prepareMessage validates a new forum post the same way prepareDiagnosis
// does: content type, body, required fields, then references.
func prepareMessage(db *gorm.DB, contentType string, body []byte, now time.Time) (model.Message, error) {
	if err := checkJSONContentType(contentType); err != nil {
		return model.Message{}, err
	}

	var req createMessageRequest
	if err := decodeRequest(body, &req); err != nil {
		return model.Message{}, err
	}
	req.Headline = util.NormalizeName(req.Headline)
	req.ArticleBody = strings.TrimSpace(req.ArticleBody)
	if req.Headline == "" {
		return model.Message{}, missingField("headline")
	}
	if req.ArticleBody == "" {
		return model.Message{}, missingField("articleBody")
	}

	author, err := findUser(db, req.Author.String())
	if err != nil {
		return model.Message{}, err
	}

	msg := model.Message{
		Title:     req.Headline,
		Body:      req.ArticleBody,
		Timestamp: now.Unix(),
		UserID:    author.ID,
	}
	if req.ReplyTo != "" {
		parent, err := findMessage(db, req.ReplyTo.String())
		if err != nil {
			return model.Message{}, err
		}
		msg.ReplyTo = &parent.ID
	}
	return msg, nil
}

func messageSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"headline":    map[string]string{"title": "Headline", "type": "string"},
			"articleBody": map[string]string{"title": "Body", "type": "string"},
			"author":      map[string]string{"title": "Author", "description": "Id of the posting user", "type": "string"},
			"reply_to":    map[string]string{"title": "In reply to", "description": "Id of the parent message, e.g. msg-1", "type": "string"},
		},
		"required": []string{"headline", "articleBody", "author"},
	}
}

// ListMessages godoc
// @Summary      List messages
// @Tags         Message
// @Produce      json
// @Param        limit query int false "Limit number of results" default(100)
// @Param        offset query int false "Offset for pagination" default(0)
// @Success      200 {object} map[string]interface{} "Messages collection"
// @Router       /medical_forum/api/messages/ [get]
func ListMessages(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	limit, offset := listWindow(c)

	var messages []model.Message
	if err := db.Order("message_id").Limit(limit).Offset(offset).Find(&messages).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve messages",
			Err: err,
		})
		return
	}

	items := make([]util.MasonBuilder, 0, len(messages))
	for _, m := range messages {
		item := util.MasonBuilder{
			"id":       model.FormatMessageID(m.ID),
			"headline": m.Title,
			"author":   model.FormatUserID(m.UserID),
		}
		item.AddControl("self", util.MasonControl{Href: messageURL(m.ID)})
		item.AddControl("profile", util.MasonControl{Href: MessageProfile})
		items = append(items, item)
	}

	body := util.NewMasonBuilder()
	body.AddNamespace(util.Namespace, util.LinkRelations)
	body.AddControl("self", util.MasonControl{Href: MessagesURL})
	body.AddControl(util.Namespace+":add-message", util.MasonControl{
		Href:     MessagesURL,
		Title:    "Create a new message",
		Method:   http.MethodPost,
		Encoding: "json",
		Schema:   messageSchema(),
	})
	body.AddControl(util.Namespace+":diagnoses-all", util.MasonControl{Href: DiagnosesURL})
	body["items"] = items

	util.CallMasonOK(c, MessageProfile, body)
}

// CreateMessage godoc
// @Summary      Post a message
// @Tags         Message
// @Accept       json
// @Param        request body createMessageRequest true "Message"
// @Success      201 "Created, Location holds the new message"
// @Failure      400 {object} map[string]interface{} "Invalid request"
// @Failure      415 {object} map[string]interface{} "Unsupported media type"
// @Router       /medical_forum/api/messages/ [post]
func CreateMessage(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	body, err := readBody(c)
	if err != nil {
		util.CallMasonError(c, err)
		return
	}

	msg, err := prepareMessage(db, c.GetHeader("Content-Type"), body, time.Now())
	if err != nil {
		util.CallMasonError(c, err)
		return
	}

	if err := db.Omit(clause.Associations).Create(&msg).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create message",
			Err: err,
		})
		return
	}

	util.CallCreated(c, messageURL(msg.ID))
}

// GetMessage godoc
// @Summary      Get a message
// @Tags         Message
// @Produce      json
// @Param        id path string true "Message id, e.g. msg-1"
// @Success      200 {object} map[string]interface{} "Message"
// @Failure      404 {object} map[string]interface{} "Not found"
// @Router       /medical_forum/api/messages/{id}/ [get]
func GetMessage(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	id := c.Param("id")
	dbID, err := model.ParseMessageID(id)
	if err != nil {
		util.CallMasonError(c, notFound("Message", id))
		return
	}

	var m model.Message
	if err := db.First(&m, dbID).Error; err != nil {
		util.CallMasonError(c, lookupError(err, "Message", id))
		return
	}

	body := util.MasonBuilder{
		"headline":    m.Title,
		"articleBody": m.Body,
		"author":      model.FormatUserID(m.UserID),
		"timestamp":   m.Timestamp,
	}
	body.AddNamespace(util.Namespace, util.LinkRelations)
	body.AddControl("self", util.MasonControl{Href: messageURL(m.ID)})
	body.AddControl("profile", util.MasonControl{Href: MessageProfile})
	body.AddControl("collection", util.MasonControl{Href: MessagesURL})
	body.AddControl("author", util.MasonControl{Href: userURL(m.UserID)})
	if m.ReplyTo != nil {
		body["reply_to"] = model.FormatMessageID(*m.ReplyTo)
		body.AddControl("atom-thread:in-reply-to", util.MasonControl{Href: messageURL(*m.ReplyTo)})
	}

	util.CallMasonOK(c, MessageProfile, body)
}
