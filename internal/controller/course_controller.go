package controller

import (
	"encoding/json"
	"errors"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/service"
	"guruschool_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService     *service.CourseService
	EnrollmentService *service.EnrollmentService
}

func NewCourseController(courseService *service.CourseService, enrollmentService *service.EnrollmentService) *CourseController {
	return &CourseController{
		CourseService:     courseService,
		EnrollmentService: enrollmentService,
	}
}

// CreateCourse godoc
// @Summary Create a course (multipart, optional thumbnail)
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "course title"
// @Param description formData string false "description"
// @Param category formData string false "category"
// @Param price formData number false "default price"
// @Param duration_months formData int false "duration in months"
// @Param thumbnail formData file false "thumbnail image"
// @Success 201 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	course := &model.Course{
		Title:       title,
		Description: ctx.PostForm("description"),
		Category:    ctx.PostForm("category"),
		CreatedBy:   claims.UserID,
	}
	if v := ctx.PostForm("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			util.BadRequest(ctx, "invalid price")
			return
		}
		course.Price = price
	}
	if v := ctx.PostForm("currency_symbol"); v != "" {
		course.CurrencySymbol = v
	}
	if v := ctx.PostForm("duration_months"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil || months < 1 {
			util.BadRequest(ctx, "invalid duration_months")
			return
		}
		course.DurationMonths = months
	}

	thumbnail, err := ctx.FormFile("thumbnail")
	if err != nil {
		thumbnail = nil
	}

	if err := c.CourseService.CreateCourse(ctx.Request.Context(), course, thumbnail); err != nil {
		c.writeCourseError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// ListCourses godoc
// @Summary List courses with optional filters
// @Tags courses
// @Produce json
// @Param category query string false "filter by category"
// @Param teacher query string false "filter by teacher id"
// @Param search query string false "case-insensitive title search"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListCourses(
		ctx.Query("category"),
		ctx.Query("teacher"),
		ctx.Query("search"),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Course detail with ordered modules and lessons
// @Tags courses
// @Produce json
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	detail, err := c.CourseService.GetCourseDetail(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// UpdateCourseRequest carries the updatable course columns.
type UpdateCourseRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category"`
	Price          *float64 `json:"price"`
	CurrencySymbol *string  `json:"currencySymbol"`
	DurationMonths *int     `json:"durationMonths"`
}

func (r *UpdateCourseRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.CurrencySymbol != nil {
		fields["currency_symbol"] = *r.CurrencySymbol
	}
	if r.DurationMonths != nil {
		fields["duration_months"] = *r.DurationMonths
	}
	return fields
}

// UpdateCourse godoc
// @Summary Update a course (owning teacher only)
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Param body body UpdateCourseRequest true "fields to update"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.fields())
	if err != nil {
		c.writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course (owning teacher only)
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.CourseService.DeleteCourse(ctx.Request.Context(), claims.UserID, ctx.Param("id")); err != nil {
		c.writeCourseError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "course deleted", nil)
}

func (c *CourseController) writeCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrNotCourseOwner):
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrEmptyUpdate), errors.Is(err, util.ErrInvalidUpload):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// ModuleInput is one module in a batch insert.
type ModuleInput struct {
	CourseID    string `json:"course_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	OrderNo     int    `json:"order_no"`
}

// CreateModules godoc
// @Summary Batch-create modules for a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []ModuleInput true "modules"
// @Success 201 {object} util.Response
// @Router /api/courses/modules [post]
func (c *CourseController) CreateModules(ctx *gin.Context) {
	var req []ModuleInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(req) == 0 {
		util.BadRequest(ctx, "no modules provided")
		return
	}

	modules := make([]model.CourseModule, 0, len(req))
	for i, in := range req {
		orderNo := in.OrderNo
		if orderNo == 0 {
			orderNo = i + 1
		}
		modules = append(modules, model.CourseModule{
			CourseID:    in.CourseID,
			Title:       in.Title,
			Description: in.Description,
			OrderNo:     orderNo,
		})
	}

	if err := c.CourseService.CreateModules(ctx.Request.Context(), modules); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, modules)
}

// GetModules godoc
// @Summary List a course's modules ordered by order_no
// @Tags courses
// @Produce json
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/modules [get]
func (c *CourseController) GetModules(ctx *gin.Context) {
	modules, err := c.CourseService.GetModules(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// LessonInput is one lesson in a batch insert.
type LessonInput struct {
	ModuleID    string          `json:"module_id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	VideoURL    string          `json:"videoUrl"`
	Duration    int             `json:"duration"`
	Resources   json.RawMessage `json:"resources"`
	OrderNo     int             `json:"order_no"`
}

// CreateLessons godoc
// @Summary Batch-create lessons
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []LessonInput true "lessons"
// @Success 201 {object} util.Response
// @Router /api/courses/lessons [post]
func (c *CourseController) CreateLessons(ctx *gin.Context) {
	var req []LessonInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(req) == 0 {
		util.BadRequest(ctx, "no lessons provided")
		return
	}

	lessons := make([]model.Lesson, 0, len(req))
	for i, in := range req {
		orderNo := in.OrderNo
		if orderNo == 0 {
			orderNo = i + 1
		}
		lessons = append(lessons, model.Lesson{
			ModuleID:    in.ModuleID,
			Title:       in.Title,
			Description: in.Description,
			VideoURL:    in.VideoURL,
			Duration:    in.Duration,
			Resources:   in.Resources,
			OrderNo:     orderNo,
		})
	}

	if err := c.CourseService.CreateLessons(ctx.Request.Context(), lessons); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, lessons)
}

// GetLessons godoc
// @Summary List a module's lessons ordered by order_no
// @Tags courses
// @Produce json
// @Param moduleId path string true "module id"
// @Success 200 {object} util.Response
// @Router /api/courses/modules/{moduleId}/lessons [get]
func (c *CourseController) GetLessons(ctx *gin.Context) {
	lessons, err := c.CourseService.GetLessons(ctx.Param("moduleId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// GetPrice godoc
// @Summary Resolve the course price for a country
// @Tags courses
// @Produce json
// @Param id path string true "course id"
// @Param country query string false "ISO country code"
// @Param discount_code query string false "discount code"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "pricing unavailable"
// @Router /api/courses/{id}/price [get]
func (c *CourseController) GetPrice(ctx *gin.Context) {
	quote, err := c.EnrollmentService.GetQuote(ctx.Param("id"), ctx.Query("country"), ctx.Query("discount_code"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrPricingNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quote)
}

// UploadLessonVideo godoc
// @Summary Upload a lesson video (multipart); duration is probed from the file
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param module_id formData string true "module id"
// @Param title formData string true "lesson title"
// @Param video formData file true "video file"
// @Success 201 {object} util.Response
// @Router /api/courses/upload-lesson-video [post]
func (c *CourseController) UploadLessonVideo(ctx *gin.Context) {
	moduleID := ctx.PostForm("module_id")
	title := ctx.PostForm("title")
	if moduleID == "" || title == "" {
		util.BadRequest(ctx, "module_id and title are required")
		return
	}

	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	lesson, err := c.CourseService.UploadLessonVideo(ctx.Request.Context(), moduleID, title, file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrModuleNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidUpload):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, lesson)
}
