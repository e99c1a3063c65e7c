package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"guruschool_backend/internal/config"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/service"
	"guruschool_backend/internal/util"
	"guruschool_backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitTestLogger()
}

type stubCourseWriter struct{}

func (stubCourseWriter) FindByID(id string) (*model.Course, error) { return &model.Course{}, nil }
func (stubCourseWriter) Create(course *model.Course) error { return nil }
func (stubCourseWriter) UpdateFields(id string, fields map[string]interface{}) error {
	return nil
}
func (stubCourseWriter) Delete(id string) error { return nil }
func (stubCourseWriter) List(category, teacherID, search string) ([]model.Course, error) {
	return nil, nil
}

type stubModuleStore struct{}

func (stubModuleStore) CreateBatch(modules []model.CourseModule) error { return nil }
func (stubModuleStore) FindByID(id string) (*model.CourseModule, error) {
	if id != "module-1" {
		return nil, gorm.ErrRecordNotFound
	}
	m := &model.CourseModule{CourseID: "course-1", Title: "Greetings"}
	m.ID = id
	return m, nil
}
func (stubModuleStore) FindByCourse(courseID string) ([]model.CourseModule, error) {
	return nil, nil
}
func (stubModuleStore) DeleteByCourse(courseID string) error { return nil }

type stubLessonStore struct{}

func (stubLessonStore) Create(lesson *model.Lesson) error { return nil }
func (stubLessonStore) CreateBatch(lessons []model.Lesson) error { return nil }
func (stubLessonStore) FindByModule(moduleID string) ([]model.Lesson, error) {
	return nil, nil
}

func newTestCourseController(t *testing.T) *CourseController {
	t.Helper()
	storage := &service.StorageService{
		Provider: &service.LocalStorageProvider{
			Config: &config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
		},
	}
	svc := service.NewCourseService(stubCourseWriter{}, stubModuleStore{}, stubLessonStore{}, storage, nil)
	return NewCourseController(svc, nil)
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = io.Copy(fw, bytes.NewReader(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadLessonVideoRejectsNonVideo(t *testing.T) {
	c := newTestCourseController(t)
	router := gin.New()
	router.POST("/upload", c.UploadLessonVideo)

	body, contentType := multipartBody(t,
		map[string]string{"module_id": "module-1", "title": "Intro"},
		"video", "notes.txt", []byte("just some lecture notes, not a video"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp util.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Message, "unsupported file type")
}

func TestUploadLessonVideoUnknownModule(t *testing.T) {
	c := newTestCourseController(t)
	router := gin.New()
	router.POST("/upload", c.UploadLessonVideo)

	body, contentType := multipartBody(t,
		map[string]string{"module_id": "ghost", "title": "Intro"},
		"video", "intro.mp4", []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p'})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCourseRejectsNonImageThumbnail(t *testing.T) {
	c := newTestCourseController(t)
	router := gin.New()
	router.POST("/courses", func(ctx *gin.Context) {
		ctx.Set("user", &util.Claims{UserID: "teacher-1", Role: model.Teacher})
	}, c.CreateCourse)

	body, contentType := multipartBody(t,
		map[string]string{"title": "Hindi for Beginners"},
		"thumbnail", "cover.txt", []byte("definitely not an image"))
	req := httptest.NewRequest(http.MethodPost, "/courses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp util.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "unsupported file type")
}
