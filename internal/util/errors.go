package util

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrModuleNotFound      = errors.New("module not found")
	ErrPricingNotFound     = errors.New("pricing unavailable")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("application already submitted")
	ErrNoInvite            = errors.New("no valid invite found")
	ErrNotCourseOwner      = errors.New("not your course")
	ErrNotWhitelisted      = errors.New("not allowed to register as super admin")
	ErrInvalidRole         = errors.New("invalid role")
	ErrEmptyUpdate         = errors.New("no fields to update")
	ErrInvalidUpload       = errors.New("unsupported file type")
)
