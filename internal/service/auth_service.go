package service

import (
	"errors"
	"guruschool_backend/internal/config"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/util"
	"guruschool_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ProfileStore is the slice of the profile repository the auth flows
// need. Constructor-injected so tests can substitute fakes.
type ProfileStore interface {
	Create(profile *model.Profile) error
	FindByID(id string) (*model.Profile, error)
	FindByEmail(email string) (*model.Profile, error)
	UpdateLastLogin(id string) error
}

type InviteStore interface {
	FindUnused(email string, role model.UserRole) (*model.Invite, error)
	MarkUsed(id string) error
}

type ApplicationStore interface {
	Create(app *model.TeacherApplication) error
	FindByEmail(email string) (*model.TeacherApplication, error)
	UpdateStatus(email string, status model.ApplicationStatus) error
}

type AuthService struct {
	Profiles     ProfileStore
	Invites      InviteStore
	Applications ApplicationStore
	Cfg          *config.Config
}

func NewAuthService(profiles ProfileStore, invites InviteStore, applications ApplicationStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Profiles:     profiles,
		Invites:      invites,
		Applications: applications,
		Cfg:          cfg,
	}
}

func (s *AuthService) register(profile *model.Profile, password string) error {
	_, err := s.Profiles.FindByEmail(profile.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	profile.Password = string(hashedPassword)
	return s.Profiles.Create(profile)
}

func (s *AuthService) RegisterStudent(profile *model.Profile, password string) error {
	profile.Role = model.Student
	return s.register(profile, password)
}

// RegisterTeacher is invite-only: an unredeemed teacher invite for the
// email must exist, and registration consumes it.
func (s *AuthService) RegisterTeacher(profile *model.Profile, password string) error {
	invite, err := s.Invites.FindUnused(profile.Email, model.Teacher)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNoInvite
		}
		return err
	}

	profile.Role = model.Teacher
	if err := s.register(profile, password); err != nil {
		return err
	}

	if err := s.Invites.MarkUsed(invite.ID); err != nil {
		logger.Log.Error("failed to mark invite used", zap.String("invite", invite.ID), zap.Error(err))
	}
	return nil
}

func (s *AuthService) RegisterSuperAdmin(profile *model.Profile, password string) error {
	if !s.Cfg.Admin.SuperAdminWhitelisted(profile.Email) {
		return util.ErrNotWhitelisted
	}
	profile.Role = model.SuperAdmin
	return s.register(profile, password)
}

// ApplyTeacher records a teacher application. A second application for
// the same email reports ErrAlreadyApplied; the handler turns that into a
// friendly non-error response.
func (s *AuthService) ApplyTeacher(app *model.TeacherApplication) error {
	_, err := s.Applications.FindByEmail(app.Email)
	if err == nil {
		return util.ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	app.Status = model.ApplicationPending
	return s.Applications.Create(app)
}

func (s *AuthService) Login(email, password string) (string, *model.Profile, error) {
	profile, err := s.Profiles.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if profile.Disabled {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(profile, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.Profiles.UpdateLastLogin(profile.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.String("profile", profile.ID), zap.Error(err))
	}

	return token, profile, nil
}
