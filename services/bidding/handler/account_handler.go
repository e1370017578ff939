package handler

import (
	"context"
	"net/http"
	"time"

	account "auction-site/internal/accountService"
	"auction-site/services/bidding/helpers"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=account_handler.go -destination=mock_account_service.go -package=handler

// SessionCookie carries the session token for browser clients
const SessionCookie = "auction_session"

type AccountServiceInterface interface {
	Register(ctx context.Context, in account.Registration) (account.Session, error)
	Login(ctx context.Context, username, password string) (account.Session, error)
}

// CookieConfig controls the session cookie
type CookieConfig struct {
	TTL    time.Duration
	Secure bool
}

type AccountHandler struct {
	service AccountServiceInterface
	cookie  CookieConfig
	now     func() time.Time
}

func NewAccountHandler(service AccountServiceInterface, cookie CookieConfig) *AccountHandler {
	return &AccountHandler{service: service, cookie: cookie, now: time.Now}
}

// RegisterHandler handles POST /register
func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	session, err := h.service.Register(c.Request.Context(), account.Registration{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		helpers.RespondError(c, "RegisterHandler", err, map[string]any{"username": req.Username})
		return
	}

	h.startSession(c, http.StatusCreated, session, "registered successfully")
	helpers.LogSuccess("RegisterHandler", "registered successfully", map[string]any{"user_id": session.User.ID})
}

// LoginHandler handles POST /login
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		helpers.RespondError(c, "LoginHandler", err, map[string]any{"username": req.Username})
		return
	}

	h.startSession(c, http.StatusOK, session, "logged in successfully")
	helpers.LogSuccess("LoginHandler", "logged in successfully", map[string]any{"user_id": session.User.ID})
}

// LogoutHandler handles POST /logout. Sessions are stateless: clearing the
// cookie ends a browser session, while a copied Bearer token stays valid
// until it expires after JWT_TTL.
func (h *AccountHandler) LogoutHandler(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", h.cookie.Secure, true)
	utils.JSONResponse(c, http.StatusOK, nil, "logged out successfully")
	helpers.LogSuccess("LogoutHandler", "logged out successfully", map[string]any{"user_id": helpers.CurrentUserID(c)})
}

func (h *AccountHandler) startSession(c *gin.Context, status int, session account.Session, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, session.Token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)

	resp := helpers.SessionResponse{
		User:      helpers.NewUserResponse(session.User),
		Token:     session.Token,
		ExpiresAt: h.now().Add(h.cookie.TTL).UTC().Format(time.RFC3339),
	}
	utils.JSONResponse(c, status, resp, message)
}
