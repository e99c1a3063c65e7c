package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"guruschool_backend/internal/model"
	"guruschool_backend/internal/util"
	"guruschool_backend/pkg/logger"
)

type fakeCourseWriter struct {
	courses map[string]*model.Course
	deleted []string
	fields  map[string]map[string]interface{}
}

func (f *fakeCourseWriter) Create(c *model.Course) error {
	if c.ID == "" {
		c.ID = model.GenerateUUID()
	}
	f.courses[c.ID] = c
	return nil
}

func (f *fakeCourseWriter) FindByID(id string) (*model.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}


func (f *fakeCourseWriter) UpdateFields(id string, fields map[string]interface{}) error {
	if _, ok := f.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.fields[id] = fields
	return nil
}

func (f *fakeCourseWriter) Delete(id string) error {
	delete(f.courses, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCourseWriter) List(category, teacherID, search string) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.courses {
		out = append(out, *c)
	}
	return out, nil
}

type fakeModuleStore struct {
	modules []model.CourseModule
}

func (f *fakeModuleStore) CreateBatch(ms []model.CourseModule) error {
	f.modules = append(f.modules, ms...)
	return nil
}

func (f *fakeModuleStore) FindByID(id string) (*model.CourseModule, error) {
	for i := range f.modules {
		if f.modules[i].ID == id {
			return &f.modules[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeModuleStore) DeleteByCourse(courseID string) error {
	var kept []model.CourseModule
	for _, m := range f.modules {
		if m.CourseID != courseID {
			kept = append(kept, m)
		}
	}
	f.modules = kept
	return nil
}

func (f *fakeModuleStore) FindByCourse(courseID string) ([]model.CourseModule, error) {
	var out []model.CourseModule
	for _, m := range f.modules {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeLessonStore struct {
	lessons []model.Lesson
}

func (f *fakeLessonStore) Create(l *model.Lesson) error {
	f.lessons = append(f.lessons, *l)
	return nil
}

func (f *fakeLessonStore) CreateBatch(ls []model.Lesson) error {
	f.lessons = append(f.lessons, ls...)
	return nil
}

func (f *fakeLessonStore) FindByModule(moduleID string) ([]model.Lesson, error) {
	var out []model.Lesson
	for _, l := range f.lessons {
		if l.ModuleID == moduleID {
			out = append(out, l)
		}
	}
	return out, nil
}

func newCourseFixture() (*CourseService, *fakeCourseWriter, *fakeModuleStore, *fakeLessonStore) {
	logger.InitTestLogger()

	courses := &fakeCourseWriter{
		courses: map[string]*model.Course{},
		fields:  map[string]map[string]interface{}{},
	}
	modules := &fakeModuleStore{}
	lessons := &fakeLessonStore{}
	svc := NewCourseService(courses, modules, lessons, nil, nil)
	return svc, courses, modules, lessons
}

func seedCourse(courses *fakeCourseWriter, id, owner string) *model.Course {
	c := &model.Course{Title: "Sanskrit 101", CreatedBy: owner}
	c.ID = id
	courses.courses[id] = c
	return c
}

func TestCreateCourseWithoutThumbnail(t *testing.T) {
	svc, courses, _, _ := newCourseFixture()

	course := &model.Course{Title: "Urdu Poetry", CreatedBy: "teacher-1"}
	require.NoError(t, svc.CreateCourse(context.Background(), course, nil))
	assert.NotEmpty(t, course.ID)
	assert.Contains(t, courses.courses, course.ID)
}

func TestUpdateCourseOwnership(t *testing.T) {
	svc, courses, _, _ := newCourseFixture()
	seedCourse(courses, "course-1", "teacher-1")

	_, err := svc.UpdateCourse(context.Background(), "someone-else", "course-1", map[string]interface{}{"title": "x"})
	assert.ErrorIs(t, err, util.ErrNotCourseOwner)

	updated, err := svc.UpdateCourse(context.Background(), "teacher-1", "course-1", map[string]interface{}{"title": "x"})
	require.NoError(t, err)
	assert.Equal(t, "course-1", updated.ID)
	assert.Equal(t, "x", courses.fields["course-1"]["title"])
}

func TestUpdateCourseEmptyPayload(t *testing.T) {
	svc, courses, _, _ := newCourseFixture()
	seedCourse(courses, "course-1", "teacher-1")

	_, err := svc.UpdateCourse(context.Background(), "teacher-1", "course-1", map[string]interface{}{})
	assert.ErrorIs(t, err, util.ErrEmptyUpdate)
}

func TestDeleteCourseOwnership(t *testing.T) {
	svc, courses, _, _ := newCourseFixture()
	seedCourse(courses, "course-1", "teacher-1")

	assert.ErrorIs(t, svc.DeleteCourse(context.Background(), "intruder", "course-1"), util.ErrNotCourseOwner)
	require.NoError(t, svc.DeleteCourse(context.Background(), "teacher-1", "course-1"))
	assert.Contains(t, courses.deleted, "course-1")

	assert.ErrorIs(t, svc.DeleteCourse(context.Background(), "teacher-1", "course-1"), util.ErrCourseNotFound)
}

func TestGetCourseDetailAssemblesTree(t *testing.T) {
	svc, courses, modules, lessons := newCourseFixture()
	seedCourse(courses, "course-1", "teacher-1")

	m1 := model.CourseModule{CourseID: "course-1", Title: "Week 1", OrderNo: 1}
	m1.ID = "module-1"
	m2 := model.CourseModule{CourseID: "course-1", Title: "Week 2", OrderNo: 2}
	m2.ID = "module-2"
	modules.modules = []model.CourseModule{m1, m2}

	l1 := model.Lesson{ModuleID: "module-1", Title: "Alphabet"}
	l2 := model.Lesson{ModuleID: "module-2", Title: "Grammar"}
	lessons.lessons = []model.Lesson{l1, l2}

	detail, err := svc.GetCourseDetail(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, detail.Modules, 2)
	require.Len(t, detail.Modules[0].Lessons, 1)
	assert.Equal(t, "Alphabet", detail.Modules[0].Lessons[0].Title)
	assert.Equal(t, "Grammar", detail.Modules[1].Lessons[0].Title)
}

func TestGetCourseDetailUnknownCourse(t *testing.T) {
	svc, _, _, _ := newCourseFixture()

	_, err := svc.GetCourseDetail(context.Background(), "nope")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
