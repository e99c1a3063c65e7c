package controller

import (
	"errors"
	"guruschool_backend/internal/service"
	"guruschool_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeacherController struct {
	TeacherService *service.TeacherService
}

func NewTeacherController(teacherService *service.TeacherService) *TeacherController {
	return &TeacherController{TeacherService: teacherService}
}

// MyCourses godoc
// @Summary List the authenticated teacher's courses
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/my-courses [get]
func (c *TeacherController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	courses, err := c.TeacherService.MyCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CourseEnrollments godoc
// @Summary Roster for a course, owning teacher or super admin only
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "not your course"
// @Router /api/teacher/course/{id}/enrollments [get]
func (c *TeacherController) CourseEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	total, enrollments, err := c.TeacherService.CourseEnrollments(claims.UserID, claims.Role, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrNotCourseOwner):
			util.Forbidden(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"total":       total,
		"enrollments": enrollments,
	})
}
