package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/util"
	"guruschool_backend/pkg/logger"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseWriter interface {
	CourseStore
	Create(course *model.Course) error
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
	List(category, teacherID, search string) ([]model.Course, error)
}

type ModuleStore interface {
	CreateBatch(modules []model.CourseModule) error
	FindByID(id string) (*model.CourseModule, error)
	FindByCourse(courseID string) ([]model.CourseModule, error)
	DeleteByCourse(courseID string) error
}

type LessonStore interface {
	Create(lesson *model.Lesson) error
	CreateBatch(lessons []model.Lesson) error
	FindByModule(moduleID string) ([]model.Lesson, error)
}

// CourseDetail is the assembled read model: a course with its ordered
// modules and their ordered lessons.
type CourseDetail struct {
	model.Course
	Modules []model.CourseModule `json:"modules"`
}

const courseCacheTTL = 10 * time.Minute

type CourseService struct {
	Courses CourseWriter
	Modules ModuleStore
	Lessons LessonStore
	Storage *StorageService
	Redis   *redis.Client
}

func NewCourseService(courses CourseWriter, modules ModuleStore, lessons LessonStore, storage *StorageService, rdb *redis.Client) *CourseService {
	return &CourseService{
		Courses: courses,
		Modules: modules,
		Lessons: lessons,
		Storage: storage,
		Redis:   rdb,
	}
}

// CreateCourse stores the optional thumbnail first and then the course
// row. A failed insert after a successful upload leaves an orphaned
// blob; that is accepted and not retried.
func (s *CourseService) CreateCourse(ctx context.Context, course *model.Course, thumbnail *multipart.FileHeader) error {
	if thumbnail != nil {
		url, err := s.uploadImage(ctx, "thumbnails", thumbnail)
		if err != nil {
			return err
		}
		course.ThumbnailURL = url
	}

	return s.Courses.Create(course)
}

func (s *CourseService) uploadImage(ctx context.Context, prefix string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrInvalidUpload, err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	filename := fmt.Sprintf("%s/%d_%s", prefix, time.Now().Unix(), filepath.Base(file.Filename))
	return s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
}

func (s *CourseService) UpdateCourse(ctx context.Context, teacherID, courseID string, fields map[string]interface{}) (*model.Course, error) {
	course, err := s.ownedCourse(teacherID, courseID)
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, util.ErrEmptyUpdate
	}
	if err := s.Courses.UpdateFields(course.ID, fields); err != nil {
		return nil, err
	}
	s.invalidate(ctx, courseID)
	return s.Courses.FindByID(courseID)
}

func (s *CourseService) DeleteCourse(ctx context.Context, teacherID, courseID string) error {
	course, err := s.ownedCourse(teacherID, courseID)
	if err != nil {
		return err
	}

	if err := s.Courses.Delete(course.ID); err != nil {
		return err
	}
	if err := s.Modules.DeleteByCourse(course.ID); err != nil {
		logger.Log.Warn("course deleted but modules not cleaned up", zap.String("course", course.ID), zap.Error(err))
	}
	s.invalidate(ctx, courseID)
	return nil
}

func (s *CourseService) ownedCourse(teacherID, courseID string) (*model.Course, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.CreatedBy != teacherID {
		return nil, util.ErrNotCourseOwner
	}
	return course, nil
}

func (s *CourseService) ListCourses(category, teacherID, search string) ([]model.Course, error) {
	return s.Courses.List(category, teacherID, search)
}

// GetCourseDetail assembles course + modules + lessons, served from the
// redis cache when warm. Cache failures fall through to the database.
func (s *CourseService) GetCourseDetail(ctx context.Context, courseID string) (*CourseDetail, error) {
	cacheKey := "course:detail:" + courseID

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var detail CourseDetail
			if err := json.Unmarshal([]byte(val), &detail); err == nil {
				return &detail, nil
			}
		}
	}

	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	modules, err := s.Modules.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	for i := range modules {
		lessons, err := s.Lessons.FindByModule(modules[i].ID)
		if err != nil {
			return nil, err
		}
		modules[i].Lessons = lessons
	}

	detail := &CourseDetail{Course: *course, Modules: modules}

	if s.Redis != nil {
		if data, err := json.Marshal(detail); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, courseCacheTTL).Err(); err != nil {
				logger.Log.Warn("course cache write failed", zap.String("course", courseID), zap.Error(err))
			}
		}
	}

	return detail, nil
}

func (s *CourseService) invalidate(ctx context.Context, courseID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, "course:detail:"+courseID).Err(); err != nil {
		logger.Log.Warn("course cache invalidation failed", zap.String("course", courseID), zap.Error(err))
	}
}

func (s *CourseService) CreateModules(ctx context.Context, modules []model.CourseModule) error {
	if err := s.Modules.CreateBatch(modules); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, m := range modules {
		if !seen[m.CourseID] {
			s.invalidate(ctx, m.CourseID)
			seen[m.CourseID] = true
		}
	}
	return nil
}

func (s *CourseService) GetModules(courseID string) ([]model.CourseModule, error) {
	return s.Modules.FindByCourse(courseID)
}

func (s *CourseService) CreateLessons(ctx context.Context, lessons []model.Lesson) error {
	if err := s.Lessons.CreateBatch(lessons); err != nil {
		return err
	}
	for _, l := range lessons {
		if m, err := s.Modules.FindByID(l.ModuleID); err == nil {
			s.invalidate(ctx, m.CourseID)
		}
	}
	return nil
}

func (s *CourseService) GetLessons(moduleID string) ([]model.Lesson, error) {
	return s.Lessons.FindByModule(moduleID)
}

// UploadLessonVideo stages the upload on disk so the video can be probed
// for its duration, pushes it to the bucket, and records the lesson.
func (s *CourseService) UploadLessonVideo(ctx context.Context, moduleID, title string, file *multipart.FileHeader) (*model.Lesson, error) {
	module, err := s.Modules.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo, util.MimeOctetStream}); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidUpload, err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	tmp, err := os.CreateTemp("", "lesson-*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, err
	}

	duration := 0
	if info, err := util.GetVideoInfo(tmp.Name()); err == nil {
		duration = int(info.Duration)
	} else {
		logger.Log.Warn("video probe failed, storing without duration", zap.String("module", moduleID), zap.Error(err))
	}

	filename := fmt.Sprintf("lessons/%d_%s", time.Now().Unix(), filepath.Base(file.Filename))
	url, err := s.Storage.UploadFile(ctx, filename, tmp.Name(), file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		ModuleID: moduleID,
		Title:    title,
		VideoURL: url,
		Duration: duration,
	}
	if err := s.Lessons.Create(lesson); err != nil {
		return nil, err
	}

	s.invalidate(ctx, module.CourseID)
	return lesson, nil
}
