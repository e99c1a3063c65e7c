package controller

import (
	"errors"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/service"
	"guruschool_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// ApproveTeacherRequest names the application to approve.
type ApproveTeacherRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ApproveTeacher godoc
// @Summary Approve a teacher application
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ApproveTeacherRequest true "application email"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "application not found"
// @Router /api/admin/approve-teacher [post]
func (c *AdminController) ApproveTeacher(ctx *gin.Context) {
	var req ApproveTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.AdminService.ApproveTeacher(req.Email)
	if err != nil {
		if errors.Is(err, util.ErrApplicationNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.SuccessMessage(ctx, "teacher approved", profile)
}

// ListApplications godoc
// @Summary List teacher applications by status (default pending)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending or approved"
// @Success 200 {object} util.Response
// @Router /api/admin/teacher-applications [get]
func (c *AdminController) ListApplications(ctx *gin.Context) {
	apps, err := c.AdminService.ListApplications(model.ApplicationStatus(ctx.Query("status")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, apps)
}

// SetPricingRequest is a per-country price row.
type SetPricingRequest struct {
	CourseID       string  `json:"course_id" binding:"required"`
	Country        string  `json:"country" binding:"required"`
	Price          float64 `json:"price" binding:"required,gte=0"`
	CurrencySymbol string  `json:"currency_symbol"`
	DurationMonths int     `json:"duration_months"`
}

// SetPricing godoc
// @Summary Upsert the (course, country) price row
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SetPricingRequest true "pricing row"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "course not found"
// @Router /api/admin/set-pricing [post]
func (c *AdminController) SetPricing(ctx *gin.Context) {
	var req SetPricingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pricing := &model.CoursePricing{
		CourseID:       req.CourseID,
		Country:        req.Country,
		Price:          req.Price,
		CurrencySymbol: req.CurrencySymbol,
		DurationMonths: req.DurationMonths,
	}
	if err := c.AdminService.SetPricing(pricing); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.SuccessMessage(ctx, "pricing saved", pricing)
}

// ListPricing godoc
// @Summary List a course's per-country price rows
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/admin/pricing/{courseId} [get]
func (c *AdminController) ListPricing(ctx *gin.Context) {
	rows, err := c.AdminService.ListPricing(ctx.Param("courseId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// SetCoursePriceRequest overrides a course's defaults.
type SetCoursePriceRequest struct {
	Price          float64 `json:"price" binding:"gte=0"`
	CurrencySymbol string  `json:"currency_symbol"`
	DurationMonths int     `json:"duration_months" binding:"gte=0"`
	Category       string  `json:"category"`
}

// SetCoursePrice godoc
// @Summary Set a course's default price
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "course id"
// @Param body body SetCoursePriceRequest true "price"
// @Success 200 {object} util.Response
// @Router /api/admin/set-price/{courseId} [post]
func (c *AdminController) SetCoursePrice(ctx *gin.Context) {
	var req SetCoursePriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AdminService.SetCoursePrice(ctx.Param("courseId"), req.Price, req.CurrencySymbol, req.DurationMonths, req.Category); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.SuccessMessage(ctx, "price updated", nil)
}

// CreateDiscountRequest defines a discount code.
type CreateDiscountRequest struct {
	Code         string     `json:"code" binding:"required"`
	DiscountType string     `json:"discount_type" binding:"required,oneof=percentage flat"`
	Value        float64    `json:"value" binding:"required,gt=0"`
	AppliesTo    string     `json:"applies_to" binding:"omitempty,oneof=course global category"`
	CourseID     string     `json:"course_id"`
	Category     string     `json:"category"`
	ValidFrom    *time.Time `json:"valid_from"`
	ValidUntil   *time.Time `json:"valid_until"`
	UsageLimit   int        `json:"usage_limit"`
}

// CreateDiscount godoc
// @Summary Create a discount code
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateDiscountRequest true "discount"
// @Success 201 {object} util.Response
// @Router /api/admin/discounts [post]
func (c *AdminController) CreateDiscount(ctx *gin.Context) {
	var req CreateDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	discount := &model.Discount{
		Code:         req.Code,
		DiscountType: model.DiscountType(req.DiscountType),
		Value:        req.Value,
		AppliesTo:    model.DiscountScope(req.AppliesTo),
		CourseID:     req.CourseID,
		Category:     req.Category,
		ValidUntil:   req.ValidUntil,
		UsageLimit:   req.UsageLimit,
	}
	if req.AppliesTo == "" {
		discount.AppliesTo = model.ScopeGlobal
	}
	if req.ValidFrom != nil {
		discount.ValidFrom = *req.ValidFrom
	} else {
		discount.ValidFrom = time.Now()
	}

	if err := c.AdminService.CreateDiscount(discount); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, discount)
}

// ListDiscounts godoc
// @Summary List all discount codes
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/discounts [get]
func (c *AdminController) ListDiscounts(ctx *gin.Context) {
	discounts, err := c.AdminService.ListDiscounts()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, discounts)
}

// ListUsers godoc
// @Summary List users, optionally filtered by role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "role filter"
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.AdminService.ListUsers(ctx.Query("role"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// ChangeRoleRequest names the new role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "user id"
// @Param body body ChangeRoleRequest true "new role"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "invalid role"
// @Failure 404 {object} util.Response "user not found"
// @Router /api/admin/change-role/{userId} [put]
func (c *AdminController) ChangeRole(ctx *gin.Context) {
	var req ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AdminService.ChangeRole(ctx.Param("userId"), model.UserRole(req.Role)); err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidRole):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrProfileNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.SuccessMessage(ctx, "role updated", nil)
}

// CreateInviteRequest names the invitee.
type CreateInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// CreateInvite godoc
// @Summary Create a registration invite
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateInviteRequest true "invite"
// @Success 201 {object} util.Response
// @Router /api/admin/invites [post]
func (c *AdminController) CreateInvite(ctx *gin.Context) {
	var req CreateInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	invite, err := c.AdminService.CreateInvite(req.Email, model.UserRole(req.Role))
	if err != nil {
		if errors.Is(err, util.ErrInvalidRole) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, invite)
}
