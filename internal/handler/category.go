package handler

import (
	"net/http"

	"home-budget/internal/models"
	"home-budget/internal/repository"
	"home-budget/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves owner-scoped category CRUD. A category owned by
// someone else looks exactly like a missing one.
type CategoryHandler struct {
	categories *repository.CategoryRepository
}

func NewCategoryHandler(categories *repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type createCategoryReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

type updateCategoryReq struct {
	Name *string `json:"name" binding:"omitempty,max=64"`
}

func categoryResp(cat *models.Category) gin.H {
	return gin.H{
		"id":         cat.ID,
		"name":       cat.Name,
		"created_at": cat.CreatedAt,
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	cat := models.Category{Name: req.Name}
	if err := h.categories.Create(c.Request.Context(), &cat, user.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create category")
		return
	}

	util.Created(c, util.Response{"category": categoryResp(&cat)})
}

func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	cats, err := h.categories.List(c.Request.Context(), user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list categories")
		return
	}

	items := make([]gin.H, 0, len(cats))
	for i := range cats {
		items = append(items, categoryResp(&cats[i]))
	}
	util.Success(c, util.Response{"categories": items})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	cat, err := h.categories.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load category")
		return
	}
	if cat == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Category not found")
		return
	}
	util.Success(c, util.Response{"category": categoryResp(cat)})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req updateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}

	cat, err := h.categories.Update(c.Request.Context(), id, user.ID, patch)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update category")
		return
	}
	if cat == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Category not found")
		return
	}
	util.Success(c, util.Response{"category": categoryResp(cat)})
}

// Delete removes a category; its expenses cascade with it.
func (h *CategoryHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	deleted, err := h.categories.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete category")
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Category not found")
		return
	}
	util.NoContent(c)
}
