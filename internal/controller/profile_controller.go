package controller

import (
	"encoding/json"
	"errors"
	"guruschool_backend/internal/service"
	"guruschool_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// GetMyProfile godoc
// @Summary Fetch the authenticated user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/profile/me [get]
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

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

// UpdateProfileRequest carries the self-editable profile columns. Role,
// email and password are deliberately absent.
type UpdateProfileRequest struct {
	FirstName           *string  `json:"firstName"`
	LastName            *string  `json:"lastName"`
	MobileNo            *string  `json:"mobileNo"`
	Country             *string  `json:"country"`
	Timezone            *string  `json:"timezone"`
	LanguagesInterested []string `json:"languagesInterested"`
	LanguagesMastered   []string `json:"languagesMastered"`
	LearningGoals       []string `json:"learningGoals"`
	TeachingExperience  *int     `json:"teachingExperience"`
}

func (r *UpdateProfileRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.FirstName != nil {
		fields["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		fields["last_name"] = *r.LastName
	}
	if r.MobileNo != nil {
		fields["mobile_no"] = *r.MobileNo
	}
	if r.Country != nil {
		fields["country"] = *r.Country
	}
	if r.Timezone != nil {
		fields["timezone"] = *r.Timezone
	}
	if r.LanguagesInterested != nil {
		data, _ := json.Marshal(r.LanguagesInterested)
		fields["languages_interested"] = data
	}
	if r.LanguagesMastered != nil {
		data, _ := json.Marshal(r.LanguagesMastered)
		fields["languages_mastered"] = data
	}
	if r.LearningGoals != nil {
		data, _ := json.Marshal(r.LearningGoals)
		fields["learning_goals"] = data
	}
	if r.TeachingExperience != nil {
		fields["teaching_experience"] = *r.TeachingExperience
	}
	return fields
}

// UpdateProfile godoc
// @Summary Partially update the authenticated user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "fields to update"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "no fields to update"
// @Router /api/profile/update [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.ProfileService.UpdateProfile(claims.UserID, req.fields())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyUpdate):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrProfileNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, profile)
}
