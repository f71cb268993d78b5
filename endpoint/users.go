package endpoint

import (
	"errors"

	"github.com/ariebrainware/medical-forum/model"
	"github.com/ariebrainware/medical-forum/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListUsers godoc
// @Summary      List users
// @Tags         User
// @Produce      json
// @Param        limit query int false "Limit number of results" default(100)
// @Param        offset query int false "Offset for pagination" default(0)
// @Success      200 {object} map[string]interface{} "Users collection"
// @Router       /medical_forum/api/users/ [get]
func ListUsers(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	limit, offset := listWindow(c)

	var users []model.User
	if err := db.Order("user_id").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve users",
			Err: err,
		})
		return
	}

	items := make([]util.MasonBuilder, 0, len(users))
	for _, u := range users {
		item := util.MasonBuilder{
			"user_id":  model.FormatUserID(u.ID),
			"nickname": u.Nickname,
			"role":     u.Role,
		}
		item.AddControl("self", util.MasonControl{Href: userURL(u.ID)})
		item.AddControl("profile", util.MasonControl{Href: UserProfile})
		items = append(items, item)
	}

	body := util.NewMasonBuilder()
	body.AddNamespace(util.Namespace, util.LinkRelations)
	body.AddControl("self", util.MasonControl{Href: UsersURL})
	body.AddControl(util.Namespace+":messages-all", util.MasonControl{Href: MessagesURL})
	body["items"] = items

	util.CallMasonOK(c, UserProfile, body)
}

// GetUser godoc
// @Summary      Get a user with their profile
// @Tags         User
// @Produce      json
// @Param        id path string true "User id"
// @Success      200 {object} map[string]interface{} "User"
// @Failure      404 {object} map[string]interface{} "Not found"
// @Router       /medical_forum/api/users/{id}/ [get]
func GetUser(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}

	id := c.Param("id")
	dbID, err := model.ParseUserID(id)
	if err != nil {
		util.CallMasonError(c, notFound("User", id))
		return
	}

	var u model.User
	if err := db.First(&u, dbID).Error; err != nil {
		util.CallMasonError(c, lookupError(err, "User", id))
		return
	}

	body := util.MasonBuilder{
		"user_id":           model.FormatUserID(u.ID),
		"nickname":          u.Nickname,
		"role":              u.Role,
		"registration_date": u.RegistrationDate,
		"last_login":        u.LastLogin,
	}

	// Users created without a profile are still served.
	var p model.UserProfile
	err = db.Where("user_id = ?", u.ID).First(&p).Error
	switch {
	case err == nil:
		body["firstname"] = p.Firstname
		body["lastname"] = p.Lastname
		body["email"] = p.Email
		body["gender"] = p.Gender
		body["age"] = p.Age
		body["phone"] = p.Phone
		if p.Speciality != "" {
			body["speciality"] = p.Speciality
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve user profile",
			Err: err,
		})
		return
	}

	body.AddNamespace(util.Namespace, util.LinkRelations)
	body.AddControl("self", util.MasonControl{Href: userURL(u.ID)})
	body.AddControl("profile", util.MasonControl{Href: UserProfile})
	body.AddControl("collection", util.MasonControl{Href: UsersURL})

	util.CallMasonOK(c, UserProfile, body)
}
