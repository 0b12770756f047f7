package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/regoline/nina-controle/internal/application/service"
	"github.com/regoline/nina-controle/internal/presentation/http/dto/response"
)

// RecipeHandler handles recipe catalog HTTP requests
type RecipeHandler struct {
	recipeService *service.RecipeService
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// List handles GET /recipes
func (h *RecipeHandler) List(c *gin.Context) {
	result, err := h.recipeService.List(c.Request.Context(), paginationParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Recipes retrieved successfully", result)
}

// Get handles GET /recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	recipe, err := h.recipeService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recipe retrieved successfully", recipe)
}

// Create handles POST /recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), &input, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Recipe created successfully", recipe)
}

// Update handles PUT /recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recipe updated successfully", recipe)
}

// Delete handles DELETE /recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recipe deleted successfully", nil)
}
