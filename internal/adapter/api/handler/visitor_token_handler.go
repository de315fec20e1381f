package handler

import (
	"civicserve/internal/infrastructure/firebase"
	"civicserve/pkg/response"

	"github.com/labstack/echo/v4"
)

type VisitorTokenHandler struct {
	issuer *firebase.VisitorTokenIssuer
}

var visitorTokenHandler *VisitorTokenHandler

func SetupVisitorTokenHandler(issuer *firebase.VisitorTokenIssuer) {
	visitorTokenHandler = &VisitorTokenHandler{issuer: issuer}
}

func GetVisitorTokenHandler() *VisitorTokenHandler {
	return visitorTokenHandler
}

type visitorTokenRequest struct {
	VisitorID string `json:"visitor_id"`
}

// IssueToken mints a signed token for the caller's visitor identity.
// Passing an existing visitor_id refreshes it; omitting it allocates
// a new identity.
func (h *VisitorTokenHandler) IssueToken(c echo.Context) error {
	var req visitorTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	token, visitorID, err := h.issuer.Issue(req.VisitorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"token":      token,
		"visitor_id": visitorID,
	})
}
