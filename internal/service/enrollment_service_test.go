package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"guruschool_backend/internal/model"
	"guruschool_backend/internal/util"
)

type fakeCourseStore struct {
	courses map[string]*model.Course
}

func (f *fakeCourseStore) FindByID(id string) (*model.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakePricingStore struct {
	rows []model.CoursePricing
}

func (f *fakePricingStore) FindByCourseAndCountry(courseID, country string) (*model.CoursePricing, error) {
	for i := range f.rows {
		if f.rows[i].CourseID == courseID && f.rows[i].Country == country {
			return &f.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePricingStore) FindFirstByCourse(courseID string) (*model.CoursePricing, error) {
	for i := range f.rows {
		if f.rows[i].CourseID == courseID {
			return &f.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeDiscountStore struct {
	discounts map[string]*model.Discount
}

func (f *fakeDiscountStore) FindByCode(code string) (*model.Discount, error) {
	if d, ok := f.discounts[code]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEnrollmentStore struct {
	enrollments []*model.Enrollment
	createErr   error
}

func (f *fakeEnrollmentStore) Create(e *model.Enrollment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.enrollments = append(f.enrollments, e)
	return nil
}

func (f *fakeEnrollmentStore) FindByStudentAndCourse(studentID, courseID string) (*model.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEnrollmentStore) FindByStudent(studentID string) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) Update(e *model.Enrollment) error {
	for i, cur := range f.enrollments {
		if cur.StudentID == e.StudentID && cur.CourseID == e.CourseID {
			f.enrollments[i] = e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newEnrollmentFixture() (*EnrollmentService, *fakeEnrollmentStore) {
	course := &model.Course{
		Title:          "Hindi for Beginners",
		Price:          120,
		CurrencySymbol: "USD",
		DurationMonths: 6,
	}
	course.ID = "course-1"

	courses := &fakeCourseStore{courses: map[string]*model.Course{"course-1": course}}
	pricing := &fakePricingStore{rows: []model.CoursePricing{
		{CourseID: "course-1", Country: "IN", Price: 100, CurrencySymbol: "INR"},
		{CourseID: "course-1", Country: "US", Price: 150, CurrencySymbol: "USD", DurationMonths: 12},
	}}

	until := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	discounts := &fakeDiscountStore{discounts: map[string]*model.Discount{
		"SAVE20": {
			Code:         "SAVE20",
			DiscountType: model.Percentage,
			Value:        20,
			ValidFrom:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		"FLAT500": {
			Code:         "FLAT500",
			DiscountType: model.Flat,
			Value:        500,
			ValidFrom:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		"EXPIRED": {
			Code:         "EXPIRED",
			DiscountType: model.Percentage,
			Value:        50,
			ValidFrom:    time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
			ValidUntil:   &until,
		},
	}}

	store := &fakeEnrollmentStore{}
	svc := NewEnrollmentService(courses, pricing, discounts, store)
	svc.now = func() time.Time {
		return time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, store
}

func TestGetQuoteCountryMatch(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	quote, err := svc.GetQuote("course-1", "IN", "")
	require.NoError(t, err)
	assert.Equal(t, 100.0, quote.Price)
	assert.Equal(t, "INR", quote.CurrencySymbol)
	assert.Equal(t, 6, quote.DurationMonths) // row omits duration, course default applies
	assert.False(t, quote.FallbackUsed)
}

func TestGetQuoteFallbackCountry(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	quote, err := svc.GetQuote("course-1", "DE", "")
	require.NoError(t, err)
	assert.Equal(t, 100.0, quote.Price)
	assert.True(t, quote.FallbackUsed)
}

func TestGetQuotePricingRowDuration(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	quote, err := svc.GetQuote("course-1", "US", "")
	require.NoError(t, err)
	assert.Equal(t, 12, quote.DurationMonths)
}

func TestGetQuoteNoPricingRows(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	svc.Pricing = &fakePricingStore{}

	_, err := svc.GetQuote("course-1", "IN", "")
	assert.ErrorIs(t, err, util.ErrPricingNotFound)
}

func TestGetQuoteUnknownCourse(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.GetQuote("missing", "IN", "")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestGetQuotePercentageDiscount(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	quote, err := svc.GetQuote("course-1", "IN", "SAVE20")
	require.NoError(t, err)
	assert.Equal(t, 80.0, quote.Price)
	assert.Equal(t, 20.0, quote.DiscountApplied)
}

func TestGetQuoteFlatDiscountFloorsAtZero(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	quote, err := svc.GetQuote("course-1", "IN", "FLAT500")
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.Price)
	assert.Equal(t, 500.0, quote.DiscountApplied)
}

func TestGetQuoteIgnoresUnknownAndExpiredCodes(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	quote, err := svc.GetQuote("course-1", "IN", "NOPE")
	require.NoError(t, err)
	assert.Equal(t, 100.0, quote.Price)
	assert.Equal(t, 0.0, quote.DiscountApplied)

	quote, err = svc.GetQuote("course-1", "IN", "EXPIRED")
	require.NoError(t, err)
	assert.Equal(t, 100.0, quote.Price)
	assert.Equal(t, 0.0, quote.DiscountApplied)
}

func TestEnrollComputesExpiry(t *testing.T) {
	svc, store := newEnrollmentFixture()
	svc.now = func() time.Time {
		return time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	}

	enrollment, err := svc.Enroll("student-1", "course-1", "IN", "SAVE20")
	require.NoError(t, err)
	assert.Equal(t, 80.0, enrollment.Amount)
	assert.Equal(t, model.EnrollmentActive, enrollment.Status)
	assert.Equal(t, time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC), enrollment.ExpiresAt)
	assert.Len(t, store.enrollments, 1)
}

func TestEnrollExpiryClampsMonthEnd(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	svc.now = func() time.Time {
		return time.Date(2023, time.August, 31, 0, 0, 0, 0, time.UTC)
	}

	enrollment, err := svc.Enroll("student-1", "course-1", "US", "")
	require.NoError(t, err)
	// 12 months from Aug 31 2023 lands on Aug 31 2024, no clamp; the
	// interesting case is the 6-month IN row from a 31st.
	assert.Equal(t, time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC), enrollment.ExpiresAt)

	enrollment2, err := svc.Enroll("student-2", "course-1", "DE", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), enrollment2.ExpiresAt)
}

func TestEnrollDuplicate(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Enroll("student-1", "course-1", "IN", "")
	require.NoError(t, err)

	_, err = svc.Enroll("student-1", "course-1", "IN", "")
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestEnrollDuplicateKeyAtInsert(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.createErr = gorm.ErrDuplicatedKey

	_, err := svc.Enroll("student-1", "course-1", "IN", "")
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestStatusLazyExpiry(t *testing.T) {
	svc, store := newEnrollmentFixture()

	enrolled := &model.Enrollment{
		StudentID: "student-1",
		CourseID:  "course-1",
		Status:    model.EnrollmentActive,
		ExpiresAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	store.enrollments = append(store.enrollments, enrolled)

	got, err := svc.Status("student-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentExpired, got.Status)
	// the flip is persisted
	assert.Equal(t, model.EnrollmentExpired, store.enrollments[0].Status)
}

func TestStatusActiveUntouched(t *testing.T) {
	svc, store := newEnrollmentFixture()

	store.enrollments = append(store.enrollments, &model.Enrollment{
		StudentID: "student-1",
		CourseID:  "course-1",
		Status:    model.EnrollmentActive,
		ExpiresAt: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
	})

	got, err := svc.Status("student-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentActive, got.Status)
}

func TestStatusNotEnrolled(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Status("student-1", "course-1")
	assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)
}

func TestRenewActiveExtendsFromExpiry(t *testing.T) {
	svc, store := newEnrollmentFixture()

	store.enrollments = append(store.enrollments, &model.Enrollment{
		StudentID: "student-1",
		CourseID:  "course-1",
		Status:    model.EnrollmentActive,
		Amount:    100,
		ExpiresAt: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	})

	got, err := svc.Renew("student-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC), got.ExpiresAt)
	assert.Equal(t, 220.0, got.Amount) // course price added flat
	assert.Equal(t, model.EnrollmentActive, got.Status)
}

func TestRenewExpiredRestartsFromNow(t *testing.T) {
	svc, store := newEnrollmentFixture()

	store.enrollments = append(store.enrollments, &model.Enrollment{
		StudentID: "student-1",
		CourseID:  "course-1",
		Status:    model.EnrollmentExpired,
		Amount:    100,
		ExpiresAt: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
	})

	got, err := svc.Renew("student-1", "course-1")
	require.NoError(t, err)
	// now is 2025-01-15; expiry is in the past, so renewal runs from now
	assert.Equal(t, time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC), got.ExpiresAt)
	assert.Equal(t, model.EnrollmentActive, got.Status)
}

func TestRenewWithoutEnrollment(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Renew("student-1", "course-1")
	assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)
}
