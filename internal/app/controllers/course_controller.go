package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/academia/internal/app/models"
	"github.com/yigit/academia/internal/app/models/dto"
	"github.com/yigit/academia/internal/app/services"
	"github.com/yigit/academia/internal/middleware"
	"github.com/yigit/academia/internal/pkg/apperrors"
	"github.com/yigit/academia/internal/pkg/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// ListActive lists the active courses
// @Summary List active courses
// @Tags cursos
// @Produce json
// @Success 200 {array} models.Course
// @Success 204 "No active courses"
// @Failure 500 {object} dto.ErrorResponse
// @Router /cursos [get]
func (c *CourseController) ListActive(ctx *gin.Context) {
	courses, err := c.courseService.ListActive(ctx)
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

// Create creates a course
// @Summary Create a course
// @Tags cursos
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Title already exists"
// @Failure 500 {object} dto.ErrorResponse
// @Router /cursos [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := middleware.BindAndValidate(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// BulkImport creates every course of the body whose title is not taken.
// One invalid record rejects the whole batch.
// @Summary Import a collection of courses
// @Tags cursos
// @Accept json
// @Produce json
// @Param request body []dto.CourseRequest true "Courses"
// @Success 201 {object} dto.CourseBatchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cursos/coleccion [post]
func (c *CourseController) BulkImport(ctx *gin.Context) {
	var reqs []dto.CourseRequest
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
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("coleccion",
				fmt.Sprintf("Error en curso \"%s\": %s", reqs[i].Title, err.Error())))
			return
		}
	}

	created, err := c.courseService.BulkImport(ctx, reqs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.CourseBatchResponse{
		Message: dto.CourseBatchSavedMessage,
		Courses: created,
	})
}

// FindByID retrieves a course, active or not
// @Summary Get course by ID
// @Tags cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 400 {object} dto.ErrorResponse "Malformed ID"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cursos/{id} [get]
func (c *CourseController) FindByID(ctx *gin.Context) {
	id, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.FindByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// FindUsers lists the users referencing a course
// @Summary List users of a course
// @Tags cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {array} dto.CourseMember
// @Failure 400 {object} dto.ErrorResponse "Malformed ID"
// @Failure 404 {object} dto.ErrorResponse "No users for this course"
// @Failure 500 {object} dto.ErrorResponse
// @Router /cursos/{id}/usuarios [get]
func (c *CourseController) FindUsers(ctx *gin.Context) {
	id, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	users, err := c.courseService.FindUsersByCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// Update overwrites every field of a course
// @Summary Update a course
// @Tags cursos
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} models.Course
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cursos/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CourseRequest
	if err := middleware.BindAndValidate(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// Deactivate marks a course inactive
// @Summary Deactivate a course
// @Tags cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 400 {object} dto.ErrorResponse "Malformed ID"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cursos/{id} [delete]
func (c *CourseController) Deactivate(ctx *gin.Context) {
	id, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.Deactivate(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

func courseIDParam(ctx *gin.Context) (primitive.ObjectID, bool) {
	return objectIDParam(ctx, "id", "ID de curso inválido")
}

// objectIDParam parses a 24-hex path parameter, answering 400 when malformed
func objectIDParam(ctx *gin.Context, name, message string) (primitive.ObjectID, bool) {
	id, ok := models.ParseID(ctx.Param(name))
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(message))
		return primitive.NilObjectID, false
	}
	return id, true
}
