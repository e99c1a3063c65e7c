package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"guruschool_backend/internal/config"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/util"
	"guruschool_backend/pkg/logger"
)

type fakeAdminProfileStore struct {
	fakeProfileStore
	roles map[string]model.UserRole
}

func (f *fakeAdminProfileStore) UpdateRole(id string, role model.UserRole) error {
	for _, p := range f.byEmail {
		if p.ID == id {
			p.Role = role
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAdminProfileStore) List(role string) ([]model.Profile, error) {
	var out []model.Profile
	for _, p := range f.byEmail {
		if role == "" || string(p.Role) == role {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakePricingWriter struct {
	rows []model.CoursePricing
}

func (f *fakePricingWriter) Upsert(p *model.CoursePricing) error {
	for i := range f.rows {
		if f.rows[i].CourseID == p.CourseID && f.rows[i].Country == p.Country {
			f.rows[i] = *p
			return nil
		}
	}
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakePricingWriter) FindByCourse(courseID string) ([]model.CoursePricing, error) {
	var out []model.CoursePricing
	for _, r := range f.rows {
		if r.CourseID == courseID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeDiscountWriter struct {
	discounts []*model.Discount
}

func (f *fakeDiscountWriter) Create(d *model.Discount) error {
	f.discounts = append(f.discounts, d)
	return nil
}

func (f *fakeDiscountWriter) List() ([]model.Discount, error) {
	out := make([]model.Discount, 0, len(f.discounts))
	for _, d := range f.discounts {
		out = append(out, *d)
	}
	return out, nil
}

type fakeInviteWriter struct {
	invites []*model.Invite
}

func (f *fakeInviteWriter) Create(inv *model.Invite) error {
	f.invites = append(f.invites, inv)
	return nil
}

type fakeAdminCourseStore struct {
	courses map[string]*model.Course
	updated map[string]map[string]interface{}
}

func (f *fakeAdminCourseStore) FindByID(id string) (*model.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdminCourseStore) UpdateFields(id string, fields map[string]interface{}) error {
	if _, ok := f.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.updated[id] = fields
	return nil
}

func newAdminFixture() (*AdminService, *fakeAdminProfileStore, *fakeApplicationStore, *fakePricingWriter, *fakeAdminCourseStore) {
	logger.InitTestLogger()

	profiles := &fakeAdminProfileStore{
		fakeProfileStore: fakeProfileStore{byEmail: map[string]*model.Profile{}},
	}
	applications := &fakeApplicationStore{byEmail: map[string]*model.TeacherApplication{}}
	pricing := &fakePricingWriter{}
	discounts := &fakeDiscountWriter{}
	invites := &fakeInviteWriter{}

	course := &model.Course{Title: "Tamil Basics"}
	course.ID = "course-1"
	courses := &fakeAdminCourseStore{
		courses: map[string]*model.Course{"course-1": course},
		updated: map[string]map[string]interface{}{},
	}

	cfg := &config.Config{}
	cfg.Admin.TeacherTempPass = "Temp@12345"

	return NewAdminService(profiles, applications, pricing, discounts, invites, courses, cfg), profiles, applications, pricing, courses
}

func TestApproveTeacherCreatesAccount(t *testing.T) {
	svc, profiles, applications, _, _ := newAdminFixture()
	applications.byEmail["t@example.com"] = &model.TeacherApplication{
		Email:     "t@example.com",
		FirstName: "Ravi",
		Status:    model.ApplicationPending,
	}

	profile, err := svc.ApproveTeacher("t@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.Teacher, profile.Role)
	assert.Equal(t, "Ravi", profile.FirstName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte("Temp@12345")))
	assert.Equal(t, model.ApplicationApproved, applications.byEmail["t@example.com"].Status)
	assert.Len(t, profiles.created, 1)
}

func TestApproveTeacherPromotesExistingProfile(t *testing.T) {
	svc, profiles, applications, _, _ := newAdminFixture()
	applications.byEmail["t@example.com"] = &model.TeacherApplication{
		Email:  "t@example.com",
		Status: model.ApplicationPending,
	}
	existing := &model.Profile{Email: "t@example.com", Role: model.Student}
	existing.ID = "existing-1"
	profiles.byEmail["t@example.com"] = existing

	profile, err := svc.ApproveTeacher("t@example.com")
	require.NoError(t, err)
	assert.Equal(t, "existing-1", profile.ID)
	assert.Equal(t, model.Teacher, profile.Role)
	assert.Empty(t, profiles.created)
}

func TestApproveTeacherWithoutApplication(t *testing.T) {
	svc, _, _, _, _ := newAdminFixture()

	_, err := svc.ApproveTeacher("ghost@example.com")
	assert.ErrorIs(t, err, util.ErrApplicationNotFound)
}

func TestSetPricingUpserts(t *testing.T) {
	svc, _, _, _, _ := newAdminFixture()

	require.NoError(t, svc.SetPricing(&model.CoursePricing{CourseID: "course-1", Country: "IN", Price: 100}))
	require.NoError(t, svc.SetPricing(&model.CoursePricing{CourseID: "course-1", Country: "IN", Price: 120}))

	rows, err := svc.ListPricing("course-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 120.0, rows[0].Price)
}

func TestSetPricingUnknownCourse(t *testing.T) {
	svc, _, _, _, _ := newAdminFixture()

	err := svc.SetPricing(&model.CoursePricing{CourseID: "nope", Country: "IN", Price: 100})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestSetCoursePrice(t *testing.T) {
	svc, _, _, _, courses := newAdminFixture()

	require.NoError(t, svc.SetCoursePrice("course-1", 199, "USD", 12, "language"))
	assert.Equal(t, 199.0, courses.updated["course-1"]["price"])
	assert.Equal(t, "USD", courses.updated["course-1"]["currency_symbol"])
	assert.Equal(t, 12, courses.updated["course-1"]["duration_months"])
	assert.Equal(t, "language", courses.updated["course-1"]["category"])

	err := svc.SetCoursePrice("nope", 10, "", 0, "")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestChangeRole(t *testing.T) {
	svc, profiles, _, _, _ := newAdminFixture()
	p := &model.Profile{Email: "u@example.com", Role: model.Student}
	p.ID = "user-1"
	profiles.byEmail["u@example.com"] = p

	require.NoError(t, svc.ChangeRole("user-1", model.Teacher))
	assert.Equal(t, model.Teacher, p.Role)

	assert.ErrorIs(t, svc.ChangeRole("user-1", "wizard"), util.ErrInvalidRole)
	assert.ErrorIs(t, svc.ChangeRole("ghost", model.Teacher), util.ErrProfileNotFound)
}

func TestCreateInviteDefaultsToTeacher(t *testing.T) {
	svc, _, _, _, _ := newAdminFixture()

	invite, err := svc.CreateInvite("t@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, model.Teacher, invite.Role)

	_, err = svc.CreateInvite("t@example.com", "wizard")
	assert.ErrorIs(t, err, util.ErrInvalidRole)
}
