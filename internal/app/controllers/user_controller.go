package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/academia/internal/app/models/dto"
	"github.com/yigit/academia/internal/app/services"
	"github.com/yigit/academia/internal/middleware"
	"github.com/yigit/academia/internal/pkg/apperrors"
	"github.com/yigit/academia/internal/pkg/validation"
)

// UserController handles user-related operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// ListActive lists the active users with their course titles
// @Summary List active users
// @Tags usuarios
// @Produce json
// @Success 200 {array} dto.UserSummary
// @Success 204 "No active users"
// @Failure 500 {object} dto.ErrorResponse
// @Router /usuarios [get]
func (c *UserController) ListActive(ctx *gin.Context) {
	users, err := c.userService.ListActive(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if len(users) == 0 {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// Create registers a user
// @Summary Create a user
// @Tags usuarios
// @Accept json
// @Produce json
// @Param request body dto.UserRequest true "User"
// @Success 201 {object} dto.UserEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /usuarios [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.UserRequest
	if err := middleware.BindAndValidate(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.UserEnvelope{User: user})
}

// Update merges the body into the user addressed by email
// @Summary Update a user
// @Tags usuarios
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param request body dto.UserRequest true "User"
// @Success 200 {object} dto.UserEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /usuarios/{email} [put]
func (c *UserController) Update(ctx *gin.Context) {
	var req dto.UserRequest
	if err := middleware.BindAndValidate(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.Update(ctx, ctx.Param("email"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UserEnvelope{User: user})
}

// Deactivate marks a user inactive
// @Summary Deactivate a user
// @Tags usuarios
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} dto.UserEnvelope
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /usuarios/{email} [delete]
func (c *UserController) Deactivate(ctx *gin.Context) {
	user, err := c.userService.Deactivate(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UserEnvelope{User: user})
}

// AddCourses appends course references to a user
// @Summary Add courses to a user
// @Tags usuarios
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param request body dto.AddCoursesRequest true "Course IDs"
// @Success 200 {object} dto.UserEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /usuarios/{email}/cursos [post]
func (c *UserController) AddCourses(ctx *gin.Context) {
	var req dto.AddCoursesRequest
	if err := middleware.BindAndValidate(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ids, err := dto.ParseObjectIDs(req.Courses)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("cursos", dto.CourseIDsMessage))
		return
	}

	user, err := c.userService.AddCourses(ctx, ctx.Param("email"), ids)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UserEnvelope{User: user})
}

// ReplaceCourses overwrites the course references of a user
// @Summary Replace the courses of a user
// @Tags usuarios
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param request body dto.ReplaceCoursesRequest true "Course IDs, possibly empty"
// @Success 200 {object} dto.UserEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /usuarios/{email}/cursos [put]
func (c *UserController) ReplaceCourses(ctx *gin.Context) {
	var req dto.ReplaceCoursesRequest
	if err := middleware.BindAndValidate(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ids, err := dto.ParseObjectIDs(req.Courses)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("cursos", dto.CourseIDsMessage))
		return
	}

	user, err := c.userService.ReplaceCourses(ctx, ctx.Param("email"), ids)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UserEnvelope{User: user})
}

// ListCourses lists the full courses referenced by a user
// @Summary List the courses of a user
// @Tags usuarios
// @Produce json
// @Param usuarioId path string true "User ID"
// @Success 200 {array} models.Course
// @Success 204 "User has no courses"
// @Failure 400 {object} dto.ErrorResponse "Malformed ID"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /usuarios/{usuarioId}/cursos [get]
func (c *UserController) ListCourses(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "usuarioId", "ID de usuario inválido")
	if !ok {
		return
	}

	courses, err := c.userService.ListCoursesOf(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if len(courses) == 0 {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// BulkImport creates the users of the body, first occurrence of an email
// wins and registered emails are skipped. One invalid record rejects the
// whole batch.
// @Summary Import a collection of users
// @Tags usuarios
// @Accept json
// @Produce json
// @Param request body []dto.UserRequest true "Users"
// @Success 201 {array} models.User
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /usuarios/coleccion [post]
func (c *UserController) BulkImport(ctx *gin.Context) {
	var reqs []dto.UserRequest
	if err := middleware.BindJSON(ctx, &reqs); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	fields := middleware.ItemFields(ctx)
	for i := range reqs {
		var present validation.Fields
		if i < len(fields) {
			present = fields[i]
		}
		if err := validation.StructWithFields(&reqs[i], present); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	created, err := c.userService.BulkImport(ctx, reqs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}
