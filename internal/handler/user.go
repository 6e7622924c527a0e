package handler

import (
	"errors"
	"net/http"
	"strings"

	"home-budget/internal/auth"
	"home-budget/internal/models"
	"home-budget/internal/repository"
	"home-budget/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler serves identity CRUD. List and detail reads are open to any
// authenticated caller, with no ownership filter.
type UserHandler struct {
	users      *repository.UserRepository
	bcryptCost int
}

func NewUserHandler(users *repository.UserRepository, bcryptCost int) *UserHandler {
	return &UserHandler{users: users, bcryptCost: bcryptCost}
}

type registerReq struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email,max=64"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

func userResp(u *models.User) gin.H {
	return gin.H{
		"id":               u.ID,
		"username":         u.Username,
		"email":            u.Email,
		"is_active":        u.IsActive,
		"starting_balance": util.FormatCent(u.StartingBalanceCent),
		"created_at":       u.CreatedAt,
	}
}

// Register creates a new account with the default starting balance.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = auth.NormalizeEmail(req.Email)

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	user := models.User{
		Username:            req.Username,
		Email:               req.Email,
		PasswordHash:        hash,
		IsActive:            true,
		StartingBalanceCent: models.DefaultStartingBalanceCent,
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			util.Error(c, http.StatusConflict, util.CodeConflict, "username or email already registered")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create user")
		return
	}

	util.Created(c, util.Response{"user": userResp(&user)})
}

// List returns all users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list users")
		return
	}

	items := make([]gin.H, 0, len(users))
	for i := range users {
		items = append(items, userResp(&users[i]))
	}
	util.Success(c, util.Response{"users": items})
}

// Me returns the authenticated caller.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{"user": userResp(user)})
}

// Detail returns a user by id.
func (h *UserHandler) Detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := h.users.ByID(c.Request.Context(), id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
		return
	}
	if user == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "User not found")
		return
	}
	util.Success(c, util.Response{"user": userResp(user)})
}

// Delete removes a user; their categories and expenses cascade with them.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	deleted, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete user")
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "User not found")
		return
	}
	util.NoContent(c)
}
