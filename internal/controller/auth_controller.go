package controller

import (
	"encoding/json"
	"errors"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/service"
	"guruschool_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService    *service.AuthService
	ProfileService *service.ProfileService
}

func NewAuthController(authService *service.AuthService, profileService *service.ProfileService) *AuthController {
	return &AuthController{
		AuthService:    authService,
		ProfileService: profileService,
	}
}

// RegisterRequest defines the registration payload
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email               string   `json:"email" binding:"required,email"`
	Password            string   `json:"password" binding:"required,min=8"`
	FirstName           string   `json:"firstName" binding:"required"`
	LastName            string   `json:"lastName"`
	MobileNo            string   `json:"mobileNo"`
	Country             string   `json:"country"`
	Timezone            string   `json:"timezone"`
	LanguagesInterested []string `json:"languagesInterested"`
	LanguagesMastered   []string `json:"languagesMastered"`
	LearningGoals       []string `json:"learningGoals"`
	TeachingExperience  int      `json:"teachingExperience"`
}

func (r *RegisterRequest) toProfile() *model.Profile {
	profile := &model.Profile{
		Email:              r.Email,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		MobileNo:           r.MobileNo,
		Country:            r.Country,
		Timezone:           r.Timezone,
		TeachingExperience: r.TeachingExperience,
	}
	if len(r.LanguagesInterested) > 0 {
		profile.LanguagesInterested, _ = json.Marshal(r.LanguagesInterested)
	}
	if len(r.LanguagesMastered) > 0 {
		profile.LanguagesMastered, _ = json.Marshal(r.LanguagesMastered)
	}
	if len(r.LearningGoals) > 0 {
		profile.LearningGoals, _ = json.Marshal(r.LearningGoals)
	}
	return profile
}

// RegisterStudent godoc
// @Summary Register a student account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "registration payload"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "email already registered"
// @Router /api/auth/register/student [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile := req.toProfile()
	if err := c.AuthService.RegisterStudent(profile, req.Password); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": profile.ID})
}

// RegisterTeacher godoc
// @Summary Register a teacher account (invite only)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "registration payload"
// @Success 201 {object} util.Response
// @Failure 403 {object} util.Response "no valid invite"
// @Router /api/auth/register/teacher [post]
func (c *AuthController) RegisterTeacher(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile := req.toProfile()
	if err := c.AuthService.RegisterTeacher(profile, req.Password); err != nil {
		switch {
		case errors.Is(err, util.ErrNoInvite):
			util.Forbidden(ctx, err.Error())
		case errors.Is(err, util.ErrEmailRegistered):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": profile.ID})
}

// RegisterSuperAdmin godoc
// @Summary Register a super admin (whitelisted emails only)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "registration payload"
// @Success 201 {object} util.Response
// @Failure 403 {object} util.Response "email not whitelisted"
// @Router /api/auth/register/super-admin [post]
func (c *AuthController) RegisterSuperAdmin(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile := req.toProfile()
	if err := c.AuthService.RegisterSuperAdmin(profile, req.Password); err != nil {
		switch {
		case errors.Is(err, util.ErrNotWhitelisted):
			util.Forbidden(ctx, err.Error())
		case errors.Is(err, util.ErrEmailRegistered):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": profile.ID})
}

// ApplyTeacherRequest is the teacher application payload
type ApplyTeacherRequest struct {
	Email              string   `json:"email" binding:"required,email"`
	FirstName          string   `json:"firstName" binding:"required"`
	LastName           string   `json:"lastName"`
	MobileNo           string   `json:"mobileNo"`
	LanguagesMastered  []string `json:"languagesMastered"`
	TeachingExperience int      `json:"teachingExperience"`
	Timezone           string   `json:"timezone"`
}

// ApplyTeacher godoc
// @Summary Submit a teacher application
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ApplyTeacherRequest true "application payload"
// @Success 201 {object} util.Response
// @Router /api/auth/apply-teacher [post]
func (c *AuthController) ApplyTeacher(ctx *gin.Context) {
	var req ApplyTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	app := &model.TeacherApplication{
		Email:              req.Email,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		MobileNo:           req.MobileNo,
		TeachingExperience: req.TeachingExperience,
		Timezone:           req.Timezone,
	}
	if len(req.LanguagesMastered) > 0 {
		app.LanguagesMastered, _ = json.Marshal(req.LanguagesMastered)
	}

	if err := c.AuthService.ApplyTeacher(app); err != nil {
		if errors.Is(err, util.ErrAlreadyApplied) {
			// A repeat application is reported as submitted, not as
			// an error, so the form can be resubmitted safely.
			util.SuccessMessage(ctx, "application already submitted", nil)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"status": app.Status})
}

// LoginRequest is the credential payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "invalid credentials"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, profile, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  profile,
	})
}

// Me godoc
// @Summary Resolve the authenticated identity
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "")
		return
	}

	profile, err := c.ProfileService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, profile)
}
