package actions

import (
	"context"
	"strconv"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	transportsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/transport"
)

type CourseInput struct {
	Title          string
	Description    string
	Price          float64
	CourseDuration string
	PathID         int
	Photo          *transportsvc.File
}

func (in CourseInput) validate() error {
	var flds []core.FieldError
	if core.CleanString(in.Title) == "" {
		flds = append(flds, core.FieldError{Field: "title", Error: "this field is required"})
	}
	if in.Price < 0 {
		flds = append(flds, core.FieldError{Field: "price", Error: "must not be negative"})
	}
	if in.PathID <= 0 {
		flds = append(flds, core.FieldError{Field: "path_id", Error: "must be a positive identifier"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

func (in CourseInput) form() *transportsvc.Form {
	form := transportsvc.NewForm().
		Set("title", core.CleanString(in.Title)).
		Set("description", core.CleanString(in.Description)).
		Set("price", strconv.FormatFloat(in.Price, 'f', -1, 64)).
		Set("path_id", strconv.Itoa(in.PathID))
	setIfNotEmpty(form, "course_duration", core.CleanString(in.CourseDuration))
	if in.Photo != nil {
		form.AddFile("photo", in.Photo.Filename, in.Photo.ContentType, in.Photo.Content)
	}
	return form
}

// LessonInput describes a lesson. With a Video the lesson is sent as multipart, as JSON otherwise.
type LessonInput struct {
	Title    string             `json:"title,omitempty"`
	Content  string             `json:"content,omitempty"`
	VideoURL string             `json:"video_url,omitempty"`
	Order    int                `json:"order,omitempty"`
	Video    *transportsvc.File `json:"-"`
}

func (in LessonInput) body() interface{} {
	if in.Video == nil {
		return in
	}
	form := transportsvc.NewForm()
	setIfNotEmpty(form, "title", core.CleanString(in.Title))
	setIfNotEmpty(form, "content", in.Content)
	setIfNotEmpty(form, "video_url", in.VideoURL)
	if in.Order > 0 {
		form.Set("order", strconv.Itoa(in.Order))
	}
	form.AddFile("video", in.Video.Filename, in.Video.ContentType, in.Video.Content)
	return form
}

type generateQuestionsBody struct {
	Text string `json:"text" validate:"required"`
}

type storeQuestionsBody struct {
	LessonID  int        `json:"lesson_id"`
	Questions []Question `json:"questions" validate:"min=1,dive"`
}

// catalogViews are the public views listing courses.
var catalogViews = []core.ViewKey{core.ViewCoursesList, core.ViewBestSellingCourses, core.ViewHome}

func courseViews(courseID int) []core.ViewKey {
	keys := append([]core.ViewKey{core.ViewTeacherCourses}, catalogViews...)
	if courseID > 0 {
		keys = append(keys, core.ViewCourseDetail(courseID))
	}
	return keys
}

func lessonViews(courseID int, lessonID int) []core.ViewKey {
	keys := []core.ViewKey{core.ViewTeacherLessons(courseID), core.ViewCourseDetail(courseID)}
	if lessonID > 0 {
		keys = append(keys, core.ViewLessonComments(lessonID))
	}
	return keys
}

func (a *Actions) GetTeacherCourses(ctx context.Context, sess core.Session) core.Result[[]TeacherCourse] {
	return query[[]TeacherCourse](ctx, a, sess, get("/teacher/courses"), core.MsgRequestFailed)
}

func (a *Actions) CreateCourse(ctx context.Context, sess core.Session, in CourseInput) core.Result[TeacherCourse] {
	if err := in.validate(); err != nil {
		return invalid[TeacherCourse](err)
	}
	return mutate[TeacherCourse](ctx, a, sess, post("/teacher/courses", in.form()), core.MsgRequestFailed, courseViews(0)...)
}

func (a *Actions) DeleteCourse(ctx context.Context, sess core.Session, courseID int) core.Result[Ack] {
	if err := requireIDs(ident("course_id", courseID)); err != nil {
		return invalid[Ack](err)
	}
	return mutate[Ack](ctx, a, sess, del(pathf("/teacher/courses", courseID)), core.MsgRequestFailed, courseViews(courseID)...)
}

func (a *Actions) GetCourseLessons(ctx context.Context, sess core.Session, courseID int) core.Result[[]Lesson] {
	if err := requireIDs(ident("course_id", courseID)); err != nil {
		return invalid[[]Lesson](err)
	}
	return query[[]Lesson](ctx, a, sess, get(pathf("/teacher/courses", courseID, "lessons")), core.MsgRequestFailed)
}

func (a *Actions) CreateLesson(ctx context.Context, sess core.Session, courseID int, in LessonInput) core.Result[Lesson] {
	if err := requireIDs(ident("course_id", courseID)); err != nil {
		return invalid[Lesson](err)
	}
	if core.CleanString(in.Title) == "" {
		return invalid[Lesson](core.NewValidationError(nil, core.FieldError{Field: "title", Error: "this field is required"}))
	}
	return mutate[Lesson](ctx, a, sess, post(pathf("/teacher/courses", courseID, "lessons"), in.body()), core.MsgLessonCreateFailed,
		lessonViews(courseID, 0)...)
}

func (a *Actions) UpdateLesson(ctx context.Context, sess core.Session, courseID, lessonID int, in LessonInput) core.Result[Lesson] {
	if err := requireIDs(ident("course_id", courseID), ident("lesson_id", lessonID)); err != nil {
		return invalid[Lesson](err)
	}
	req := post(pathf("/teacher/courses", courseID, "lessons", strconv.Itoa(lessonID), "update"), in.body())
	return mutate[Lesson](ctx, a, sess, req, core.MsgRequestFailed, lessonViews(courseID, 0)...)
}

func (a *Actions) DeleteLesson(ctx context.Context, sess core.Session, courseID, lessonID int) core.Result[Ack] {
	if err := requireIDs(ident("course_id", courseID), ident("lesson_id", lessonID)); err != nil {
		return invalid[Ack](err)
	}
	req := del(pathf("/teacher/courses", courseID, "lessons", strconv.Itoa(lessonID)))
	return mutate[Ack](ctx, a, sess, req, core.MsgRequestFailed, lessonViews(courseID, lessonID)...)
}

func (a *Actions) GetTeacherComments(ctx context.Context, sess core.Session) core.Result[[]Comment] {
	return query[[]Comment](ctx, a, sess, get("/teacher/comments"), core.MsgRequestFailed)
}

// GetTeacherExams lists the teacher's courses along with their quiz questions.
func (a *Actions) GetTeacherExams(ctx context.Context, sess core.Session) core.Result[[]CourseWithExams] {
	return query[[]CourseWithExams](ctx, a, sess, get("/teacher/courses/exams"), core.MsgRequestFailed)
}

// GetTeacherStudents lists the students enrolled in the teacher's courses.
func (a *Actions) GetTeacherStudents(ctx context.Context, sess core.Session) core.Result[[]Student] {
	return query[[]Student](ctx, a, sess, get("/statistics/students"), core.MsgRequestFailed)
}

// GenerateQuestions drafts quiz questions from a lesson text. Drafts are not saved until StoreQuestions.
func (a *Actions) GenerateQuestions(ctx context.Context, sess core.Session, lessonID int, text string) core.Result[[]Question] {
	if err := requireIDs(ident("lesson_id", lessonID)); err != nil {
		return invalid[[]Question](err)
	}
	body := generateQuestionsBody{Text: core.CleanString(text)}
	if err := a.check(body); err != nil {
		return invalid[[]Question](err)
	}
	req := post(pathf("/teacher/lessons", lessonID, "questions", "generate"), body)
	return mutate[[]Question](ctx, a, sess, req, core.MsgQuestionsFailed, core.ViewTeacherExams)
}

func (a *Actions) StoreQuestions(ctx context.Context, sess core.Session, lessonID int, questions []Question) core.Result[Ack] {
	if err := requireIDs(ident("lesson_id", lessonID)); err != nil {
		return invalid[Ack](err)
	}
	body := storeQuestionsBody{LessonID: lessonID, Questions: questions}
	if err := a.check(body); err != nil {
		return invalid[Ack](err)
	}
	req := post(pathf("/teacher/lessons", lessonID, "questions", "store"), body)
	return mutate[Ack](ctx, a, sess, req, core.MsgQuestionsFailed, core.ViewTeacherExams, core.ViewLessonQuestions(lessonID))
}
