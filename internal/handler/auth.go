package handler

import (
	"net/http"

	"home-budget/internal/auth"
	"home-budget/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginReq struct {
	Username string `json:"username" binding:"required"` // the account email
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token. The failure message is
// deliberately generic so usernames cannot be enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	user, ok := h.svc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if !ok {
		util.Unauthorized(c, "Incorrect email or password")
		return
	}

	token, err := h.svc.Tokens().Issue(user.Email)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to issue token")
		return
	}

	util.Success(c, util.Response{
		"access_token": token,
		"token_type":   "bearer",
	})
}
