package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"listening-room/internal/api/http/converter"
	"listening-room/internal/service"
)

const headerSessionCreated = "X-Session-Created"

type SessionController struct {
	sessions service.SessionInteractor
}

func NewSessionController(sessions service.SessionInteractor) *SessionController {
	return &SessionController{sessions: sessions}
}

// GetSession echoes a well-formed supplied session back to the client, or
// mints a fresh one.
func (c *SessionController) GetSession(ctx *gin.Context) {
	suppliedID := ctx.Query("id")
	if suppliedID == "" {
		suppliedID = ctx.GetHeader(headerSessionID)
	}

	suppliedCreated := ctx.Query("createdAt")
	if suppliedCreated == "" {
		suppliedCreated = ctx.GetHeader(headerSessionCreated)
	}

	session := c.sessions.IssueSession(suppliedID, suppliedCreated)
	ctx.JSON(http.StatusOK, converter.SessionToApi(session))
}
