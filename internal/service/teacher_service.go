package service

import (
	"errors"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/util"

	"gorm.io/gorm"
)

type TeacherCourseStore interface {
	FindByID(id string) (*model.Course, error)
	FindByTeacher(teacherID string) ([]model.Course, error)
}

type CourseEnrollmentStore interface {
	FindByCourse(courseID string) ([]model.Enrollment, error)
	CountByCourse(courseID string) (int64, error)
}

type TeacherService struct {
	Courses     TeacherCourseStore
	Enrollments CourseEnrollmentStore
}

func NewTeacherService(courses TeacherCourseStore, enrollments CourseEnrollmentStore) *TeacherService {
	return &TeacherService{Courses: courses, Enrollments: enrollments}
}

func (s *TeacherService) MyCourses(teacherID string) ([]model.Course, error) {
	return s.Courses.FindByTeacher(teacherID)
}

// CourseEnrollments returns the roster for a course. Only the owning
// teacher or a super admin may read it.
func (s *TeacherService) CourseEnrollments(requesterID string, requesterRole model.UserRole, courseID string) (int64, []model.Enrollment, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, util.ErrCourseNotFound
		}
		return 0, nil, err
	}
	if course.CreatedBy != requesterID && requesterRole != model.SuperAdmin {
		return 0, nil, util.ErrNotCourseOwner
	}

	total, err := s.Enrollments.CountByCourse(courseID)
	if err != nil {
		return 0, nil, err
	}
	rows, err := s.Enrollments.FindByCourse(courseID)
	if err != nil {
		return 0, nil, err
	}
	return total, rows, nil
}
