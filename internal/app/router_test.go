package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"guruschool_backend/internal/config"
	"guruschool_backend/internal/controller"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/service"
	"guruschool_backend/internal/util"
	"guruschool_backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitTestLogger()
}

type routerProfiles struct{}

func (routerProfiles) FindByID(id string) (*model.Profile, error) {
	var role model.UserRole
	switch id {
	case "student-1":
		role = model.Student
	case "teacher-1":
		role = model.Teacher
	default:
		return nil, gorm.ErrRecordNotFound
	}
	p := &model.Profile{Role: role, Email: id + "@example.com"}
	p.ID = id
	return p, nil
}

type emptyCourseStore struct{}

func (emptyCourseStore) FindByID(id string) (*model.Course, error) {
	return nil, gorm.ErrRecordNotFound
}

type emptyPricingStore struct{}

func (emptyPricingStore) FindByCourseAndCountry(courseID, country string) (*model.CoursePricing, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyPricingStore) FindFirstByCourse(courseID string) (*model.CoursePricing, error) {
	return nil, gorm.ErrRecordNotFound
}

type emptyDiscountStore struct{}

func (emptyDiscountStore) FindByCode(code string) (*model.Discount, error) {
	return nil, gorm.ErrRecordNotFound
}

type emptyEnrollmentStore struct{}

func (emptyEnrollmentStore) Create(enrollment *model.Enrollment) error { return nil }
func (emptyEnrollmentStore) FindByStudentAndCourse(studentID, courseID string) (*model.Enrollment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyEnrollmentStore) FindByStudent(studentID string) ([]model.Enrollment, error) {
	return nil, nil
}
func (emptyEnrollmentStore) Update(enrollment *model.Enrollment) error { return nil }

func newEnrollmentRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "router-test-secret"

	enrollSvc := service.NewEnrollmentService(emptyCourseStore{}, emptyPricingStore{}, emptyDiscountStore{}, emptyEnrollmentStore{})
	c := &controllers{
		enrollment: controller.NewEnrollmentController(enrollSvc),
	}

	router := gin.New()
	a := &App{}
	a.registerRoutes(router, c, routerProfiles{}, cfg)
	return router, cfg
}

func bearerToken(t *testing.T, cfg *config.Config, id string, role model.UserRole) string {
	t.Helper()
	p := &model.Profile{Role: role, Email: id + "@example.com"}
	p.ID = id
	token, err := util.GenerateJWT(p, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(router *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEnrollmentStatusOpenToAnyAuthenticatedRole(t *testing.T) {
	router, cfg := newEnrollmentRouter(t)

	for _, tc := range []struct {
		id   string
		role model.UserRole
	}{
		{"student-1", model.Student},
		{"teacher-1", model.Teacher},
	} {
		rec := doRequest(router, http.MethodGet, "/api/enrollments/course-1/status", bearerToken(t, cfg, tc.id, tc.role))
		assert.Equal(t, http.StatusNotFound, rec.Code, "role %s should reach the handler", tc.role)
	}
}

func TestEnrollmentWritesStayStudentOnly(t *testing.T) {
	router, cfg := newEnrollmentRouter(t)
	teacher := bearerToken(t, cfg, "teacher-1", model.Teacher)

	assert.Equal(t, http.StatusForbidden, doRequest(router, http.MethodPost, "/api/enrollments/course-1", teacher).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(router, http.MethodGet, "/api/enrollments/me", teacher).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(router, http.MethodPost, "/api/enrollments/renew/course-1", teacher).Code)
}

func TestEnrollmentRoutesRejectAnonymous(t *testing.T) {
	router, _ := newEnrollmentRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/enrollments/course-1/status", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
