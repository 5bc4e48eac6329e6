package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MeHandler returns the caller's identity as carried by the verified token.
// It never touches storage: the claims are the source of truth.
type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

type meResponse struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// Get handles GET /me.
//
// @Summary      Return information about the currently logged user
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *MeHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	username, _ := c.Get("username").(string)
	email, _ := c.Get("email").(string)
	firstName, _ := c.Get("first_name").(string)
	lastName, _ := c.Get("last_name").(string)
	roles, _ := c.Get("roles").([]string)

	return c.JSON(http.StatusOK, meResponse{
		ID:        userID,
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Roles:     roles,
	})
}
