package controller

import (
	"errors"
	"guruschool_backend/internal/service"
	"guruschool_backend/internal/util"
	"guruschool_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// EnrollRequest carries the optional pricing inputs.
type EnrollRequest struct {
	Country      string `json:"country"`
	DiscountCode string `json:"discount_code"`
}

// Enroll godoc
// @Summary Enroll the authenticated student in a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "course id"
// @Param body body EnrollRequest false "pricing inputs"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response "course or pricing not found"
// @Failure 409 {object} util.Response "already enrolled"
// @Router /api/enrollments/{courseId} [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req EnrollRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	enrollment, err := c.EnrollmentService.Enroll(claims.UserID, ctx.Param("courseId"), req.Country, req.DiscountCode)
	if err != nil {
		monitoring.EnrollmentCounter.WithLabelValues("enroll", "error").Inc()
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrPricingNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.EnrollmentCounter.WithLabelValues("enroll", "ok").Inc()
	util.Created(ctx, enrollment)
}

// MyEnrollments godoc
// @Summary List the authenticated student's enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/enrollments/me [get]
func (c *EnrollmentController) MyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	enrollments, err := c.EnrollmentService.ListMine(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// Status godoc
// @Summary Enrollment status for a course, flipping expired lazily
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{courseId}/status [get]
func (c *EnrollmentController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	enrollment, err := c.EnrollmentService.Status(claims.UserID, ctx.Param("courseId"))
	if err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, enrollment)
}

// Renew godoc
// @Summary Renew an enrollment for another course duration
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/renew/{courseId} [post]
func (c *EnrollmentController) Renew(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	enrollment, err := c.EnrollmentService.Renew(claims.UserID, ctx.Param("courseId"))
	if err != nil {
		monitoring.EnrollmentCounter.WithLabelValues("renew", "error").Inc()
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound), errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.EnrollmentCounter.WithLabelValues("renew", "ok").Inc()
	util.Success(ctx, enrollment)
}
