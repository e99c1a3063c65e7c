package service

import (
	"errors"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type CourseStore interface {
	FindByID(id string) (*model.Course, error)
}

type PricingStore interface {
	FindByCourseAndCountry(courseID, country string) (*model.CoursePricing, error)
	FindFirstByCourse(courseID string) (*model.CoursePricing, error)
}

type DiscountStore interface {
	FindByCode(code string) (*model.Discount, error)
}

type EnrollmentStore interface {
	Create(enrollment *model.Enrollment) error
	FindByStudentAndCourse(studentID, courseID string) (*model.Enrollment, error)
	FindByStudent(studentID string) ([]model.Enrollment, error)
	Update(enrollment *model.Enrollment) error
}

// Quote is the resolved charge for one enrollment: country-specific (or
// fallback) pricing with an optional discount already applied.
type Quote struct {
	Price           float64 `json:"price"`
	CurrencySymbol  string  `json:"currency_symbol"`
	DurationMonths  int     `json:"duration_months"`
	DiscountApplied float64 `json:"discount_applied"`
	Country         string  `json:"country"`
	FallbackUsed    bool    `json:"fallback_used"`
}

type EnrollmentService struct {
	Courses     CourseStore
	Pricing     PricingStore
	Discounts   DiscountStore
	Enrollments EnrollmentStore

	now func() time.Time
}

func NewEnrollmentService(courses CourseStore, pricing PricingStore, discounts DiscountStore, enrollments EnrollmentStore) *EnrollmentService {
	return &EnrollmentService{
		Courses:     courses,
		Pricing:     pricing,
		Discounts:   discounts,
		Enrollments: enrollments,
		now:         time.Now,
	}
}

// ResolvePricing finds the pricing row for (course, country), falling
// back to any row the course has. A course without a single pricing row
// yields ErrPricingNotFound.
func (s *EnrollmentService) ResolvePricing(course *model.Course, country string) (*model.CoursePricing, bool, error) {
	if country != "" {
		pricing, err := s.Pricing.FindByCourseAndCountry(course.ID, country)
		if err == nil {
			return pricing, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}

	pricing, err := s.Pricing.FindFirstByCourse(course.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrPricingNotFound
		}
		return nil, false, err
	}
	return pricing, country != "" && pricing.Country != country, nil
}

// applyDiscount reduces price by the named code when the code exists and
// is inside its validity window. Unknown and expired codes are silently
// ignored: the charge simply stays undiscounted. The returned second
// value is the discount value that was applied, 0 when none.
func (s *EnrollmentService) applyDiscount(price float64, code string, now time.Time) (float64, float64, error) {
	if code == "" {
		return price, 0, nil
	}

	discount, err := s.Discounts.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return price, 0, nil
		}
		return 0, 0, err
	}

	if !discount.ValidAt(now) {
		return price, 0, nil
	}

	switch discount.DiscountType {
	case model.Percentage:
		price = price * (1 - discount.Value/100)
	case model.Flat:
		price = price - discount.Value
	}
	if price < 0 {
		price = 0
	}
	return price, discount.Value, nil
}

// GetQuote computes the final charge for enrolling in courseID from the
// given country with an optional discount code, without persisting
// anything. Duration falls back to the course default when the pricing
// row omits it.
func (s *EnrollmentService) GetQuote(courseID, country, discountCode string) (*Quote, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	pricing, fallback, err := s.ResolvePricing(course, country)
	if err != nil {
		return nil, err
	}

	months := pricing.DurationMonths
	if months == 0 {
		months = course.DurationMonths
	}

	price, applied, err := s.applyDiscount(pricing.Price, discountCode, s.now())
	if err != nil {
		return nil, err
	}

	return &Quote{
		Price:           price,
		CurrencySymbol:  pricing.CurrencySymbol,
		DurationMonths:  months,
		DiscountApplied: applied,
		Country:         pricing.Country,
		FallbackUsed:    fallback,
	}, nil
}

// Enroll charges the quote and persists the enrollment. The storage
// layer's (student, course) unique index is the authoritative duplicate
// guard: a duplicate-key failure at insert time reports the same
// conflict as the pre-check, never an internal error.
func (s *EnrollmentService) Enroll(studentID, courseID, country, discountCode string) (*model.Enrollment, error) {
	quote, err := s.GetQuote(courseID, country, discountCode)
	if err != nil {
		return nil, err
	}

	_, err = s.Enrollments.FindByStudentAndCourse(studentID, courseID)
	if err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrolledAt := s.now()
	enrollment := &model.Enrollment{
		StudentID:       studentID,
		CourseID:        courseID,
		Amount:          quote.Price,
		CurrencySymbol:  quote.CurrencySymbol,
		DiscountApplied: quote.DiscountApplied,
		PaymentStatus:   "paid",
		Status:          model.EnrollmentActive,
		EnrolledAt:      enrolledAt,
		ExpiresAt:       util.AddMonths(enrolledAt, quote.DurationMonths),
	}

	if err := s.Enrollments.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}

	return enrollment, nil
}

// Status reports whether the student holds an enrollment for the course
// and lazily flips it to expired once its expiry has passed. Nothing
// sweeps enrollments proactively; expiry is only correct on read.
func (s *EnrollmentService) Status(studentID, courseID string) (*model.Enrollment, error) {
	enrollment, err := s.Enrollments.FindByStudentAndCourse(studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}

	if s.now().After(enrollment.ExpiresAt) && enrollment.Status != model.EnrollmentExpired {
		enrollment.Status = model.EnrollmentExpired
		if err := s.Enrollments.Update(enrollment); err != nil {
			return nil, err
		}
	}

	return enrollment, nil
}

// Renew extends the enrollment by the course's current duration. An
// active enrollment extends additively from its old expiry; an expired
// one restarts from now. The charge is the course's current flat price,
// never re-discounted.
func (s *EnrollmentService) Renew(studentID, courseID string) (*model.Enrollment, error) {
	enrollment, err := s.Enrollments.FindByStudentAndCourse(studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}

	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	months := course.DurationMonths
	if months == 0 {
		months = 6
	}

	start := util.MaxTime(enrollment.ExpiresAt, s.now())
	enrollment.ExpiresAt = util.AddMonths(start, months)
	enrollment.Status = model.EnrollmentActive
	enrollment.Amount += course.Price

	if err := s.Enrollments.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) ListMine(studentID string) ([]model.Enrollment, error) {
	return s.Enrollments.FindByStudent(studentID)
}
