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

type AdminProfileStore interface {
	Create(profile *model.Profile) error
	FindByID(id string) (*model.Profile, error)
	FindByEmail(email string) (*model.Profile, error)
	UpdateRole(id string, role model.UserRole) error
	List(role string) ([]model.Profile, error)
}

type AdminApplicationStore interface {
	FindByEmail(email string) (*model.TeacherApplication, error)
	ListByStatus(status model.ApplicationStatus) ([]model.TeacherApplication, error)
	UpdateStatus(email string, status model.ApplicationStatus) error
}

type PricingWriter interface {
	Upsert(pricing *model.CoursePricing) error
	FindByCourse(courseID string) ([]model.CoursePricing, error)
}

type DiscountWriter interface {
	Create(discount *model.Discount) error
	List() ([]model.Discount, error)
}

type InviteWriter interface {
	Create(invite *model.Invite) error
}

type AdminCourseStore interface {
	FindByID(id string) (*model.Course, error)
	UpdateFields(id string, fields map[string]interface{}) error
}

type AdminService struct {
	Profiles     AdminProfileStore
	Applications AdminApplicationStore
	Pricing      PricingWriter
	Discounts    DiscountWriter
	Invites      InviteWriter
	Courses      AdminCourseStore
	Cfg          *config.Config
}

func NewAdminService(profiles AdminProfileStore, applications AdminApplicationStore, pricing PricingWriter, discounts DiscountWriter, invites InviteWriter, courses AdminCourseStore, cfg *config.Config) *AdminService {
	return &AdminService{
		Profiles:     profiles,
		Applications: applications,
		Pricing:      pricing,
		Discounts:    discounts,
		Invites:      invites,
		Courses:      courses,
		Cfg:          cfg,
	}
}

// ApproveTeacher turns a pending application into a teacher account. The
// account is created with the configured temporary password; if a profile
// already exists for the email it is promoted instead.
func (s *AdminService) ApproveTeacher(email string) (*model.Profile, error) {
	app, err := s.Applications.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrApplicationNotFound
		}
		return nil, err
	}

	profile, err := s.Profiles.FindByEmail(email)
	switch {
	case err == nil:
		if profile.Role != model.Teacher {
			if err := s.Profiles.UpdateRole(profile.ID, model.Teacher); err != nil {
				return nil, err
			}
			profile.Role = model.Teacher
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, err := bcrypt.GenerateFromPassword([]byte(s.Cfg.Admin.TeacherTempPass), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		profile = &model.Profile{
			Email:              app.Email,
			Password:           string(hashed),
			Role:               model.Teacher,
			FirstName:          app.FirstName,
			LastName:           app.LastName,
			MobileNo:           app.MobileNo,
			Timezone:           app.Timezone,
			LanguagesMastered:  app.LanguagesMastered,
			TeachingExperience: app.TeachingExperience,
		}
		if err := s.Profiles.Create(profile); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.Applications.UpdateStatus(email, model.ApplicationApproved); err != nil {
		logger.Log.Warn("approved teacher but application status not updated",
			zap.String("email", email), zap.Error(err))
	}
	return profile, nil
}

func (s *AdminService) ListApplications(status model.ApplicationStatus) ([]model.TeacherApplication, error) {
	if status == "" {
		status = model.ApplicationPending
	}
	return s.Applications.ListByStatus(status)
}

// SetPricing upserts the per-country price row for a course.
func (s *AdminService) SetPricing(pricing *model.CoursePricing) error {
	if _, err := s.Courses.FindByID(pricing.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.Pricing.Upsert(pricing)
}

func (s *AdminService) ListPricing(courseID string) ([]model.CoursePricing, error) {
	return s.Pricing.FindByCourse(courseID)
}

// SetCoursePrice overrides the course defaults used when no per-country
// row matches: price, currency, duration and category.
func (s *AdminService) SetCoursePrice(courseID string, price float64, currencySymbol string, durationMonths int, category string) error {
	if _, err := s.Courses.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	fields := map[string]interface{}{"price": price}
	if currencySymbol != "" {
		fields["currency_symbol"] = currencySymbol
	}
	if durationMonths > 0 {
		fields["duration_months"] = durationMonths
	}
	if category != "" {
		fields["category"] = category
	}
	return s.Courses.UpdateFields(courseID, fields)
}

func (s *AdminService) CreateDiscount(discount *model.Discount) error {
	return s.Discounts.Create(discount)
}

func (s *AdminService) ListDiscounts() ([]model.Discount, error) {
	return s.Discounts.List()
}

func (s *AdminService) ListUsers(role string) ([]model.Profile, error) {
	return s.Profiles.List(role)
}

func (s *AdminService) ChangeRole(userID string, role model.UserRole) error {
	if !model.ValidRole(string(role)) {
		return util.ErrInvalidRole
	}
	if err := s.Profiles.UpdateRole(userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProfileNotFound
		}
		return err
	}
	return nil
}

func (s *AdminService) CreateInvite(email string, role model.UserRole) (*model.Invite, error) {
	if role == "" {
		role = model.Teacher
	}
	if !model.ValidRole(string(role)) {
		return nil, util.ErrInvalidRole
	}
	invite := &model.Invite{Email: email, Role: role}
	if err := s.Invites.Create(invite); err != nil {
		return nil, err
	}
	return invite, nil
}
