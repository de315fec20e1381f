package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicserve/internal/infrastructure/firebase"
)

func TestHealthCheck(t *testing.T) {
	SetupHealthHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if assert.NoError(t, GetHealthHandler().CheckHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Server is running")
	}
}

func TestListServices(t *testing.T) {
	h := NewCatalogHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListServices(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			PriceCents int64  `json:"price_cents"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Success)
	require.NotEmpty(t, body.Data)

	found := false
	for _, item := range body.Data {
		if item.ID == "res-roll-off" {
			found = true
			assert.Equal(t, "10 Yard Container", item.Name)
			assert.Equal(t, int64(22600), item.PriceCents)
		}
	}
	assert.True(t, found)
}

func TestIssueVisitorToken(t *testing.T) {
	issuer := firebase.NewVisitorTokenIssuer("test-secret", 3600)
	SetupVisitorTokenHandler(issuer)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/visitor-token", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, GetVisitorTokenHandler().IssueToken(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.NotEmpty(t, body.Data["token"])
	require.NotEmpty(t, body.Data["visitor_id"])

	// The minted token round-trips to the same identity.
	visitorID, err := issuer.Verify(body.Data["token"])
	require.NoError(t, err)
	assert.Equal(t, body.Data["visitor_id"], visitorID)
}

func TestWebSocketIdentityFromQuery(t *testing.T) {
	issuer := firebase.NewVisitorTokenIssuer("test-secret", 3600)
	h := NewWebSocketHandler(nil, nil, nil, issuer)

	token, visitorID, err := issuer.Issue("")
	require.NoError(t, err)

	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/chat/ws?visitor_token="+token, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	resolved, err := h.resolveIdentity(c)
	require.NoError(t, err)
	assert.Equal(t, visitorID, resolved)

	// A bare visitor_id is the lowest-trust fallback.
	req = httptest.NewRequest(http.MethodGet, "/api/chat/ws?visitor_id=visitor-7", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	resolved, err = h.resolveIdentity(c)
	require.NoError(t, err)
	assert.Equal(t, "visitor-7", resolved)

	// No identity at all cannot subscribe.
	req = httptest.NewRequest(http.MethodGet, "/api/chat/ws", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	_, err = h.resolveIdentity(c)
	require.Error(t, err)

	// A forged token is rejected rather than falling through.
	req = httptest.NewRequest(http.MethodGet, "/api/chat/ws?visitor_token=not-a-jwt", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	_, err = h.resolveIdentity(c)
	require.Error(t, err)
}
