package echoweb

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
)

func registerTeacherAPI(g *echo.Group, api *webApi) {
	tg := g.Group("/teacher", authMiddleware, roleMiddleware(user.RoleTeacher))

	tg.GET("/courses", api.queryTeacherCourses)
	tg.POST("/courses", api.createCourse)
	tg.DELETE("/courses/:id", api.destroyCourse)

	tg.GET("/courses/:id/lessons", api.queryLessons)
	tg.POST("/courses/:id/lessons", api.createLesson)
	tg.POST("/courses/:id/lessons/:lesson", api.updateLesson)
	tg.DELETE("/courses/:id/lessons/:lesson", api.destroyLesson)

	tg.GET("/comments", api.queryTeacherComments)
	tg.GET("/exams", api.queryTeacherExams)
	tg.GET("/students", api.queryTeacherStudents)

	tg.POST("/lessons/:id/questions/generate", api.generateQuestions)
	tg.POST("/lessons/:id/questions", api.storeQuestions)
}

func (api *webApi) queryTeacherCourses(ctx echo.Context) error {
	return respond(ctx, api, api.acts.GetTeacherCourses(ctx.Request().Context(), getContextSession(ctx)))
}

// createCourse takes a multipart form, the photo being optional.
func (api *webApi) createCourse(ctx echo.Context) error {
	photo, done, err := formFile(ctx, "photo")
	if err != nil {
		return err
	}
	defer done()

	data := actions.CourseInput{
		Title:          ctx.FormValue("title"),
		Description:    ctx.FormValue("description"),
		Price:          formFloat(ctx, "price"),
		CourseDuration: ctx.FormValue("course_duration"),
		PathID:         formInt(ctx, "path_id"),
		Photo:          photo,
	}
	return respond(ctx, api, api.acts.CreateCourse(ctx.Request().Context(), getContextSession(ctx), data))
}

func (api *webApi) destroyCourse(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.DeleteCourse(ctx.Request().Context(), getContextSession(ctx), id))
}

func (api *webApi) queryLessons(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.GetCourseLessons(ctx.Request().Context(), getContextSession(ctx), id))
}

// bindLesson reads a lesson from JSON, or from a multipart form carrying a video.
func bindLesson(ctx echo.Context) (actions.LessonInput, func(), error) {
	video, done, err := formFile(ctx, "video")
	if err != nil {
		return actions.LessonInput{}, done, err
	}
	if video != nil {
		return actions.LessonInput{
			Title:    ctx.FormValue("title"),
			Content:  ctx.FormValue("content"),
			VideoURL: ctx.FormValue("video_url"),
			Order:    formInt(ctx, "order"),
			Video:    video,
		}, done, nil
	}

	var data actions.LessonInput
	if err = ctx.Bind(&data); err != nil {
		return data, done, errors.Wrap(err, "binding to LessonInput")
	}
	return data, done, nil
}

func (api *webApi) createLesson(ctx echo.Context) error {
	courseID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	data, done, err := bindLesson(ctx)
	defer done()
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.CreateLesson(ctx.Request().Context(), getContextSession(ctx), courseID, data))
}

func (api *webApi) updateLesson(ctx echo.Context) error {
	courseID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	lessonID, err := paramID(ctx, "lesson")
	if err != nil {
		return err
	}
	data, done, err := bindLesson(ctx)
	defer done()
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.UpdateLesson(ctx.Request().Context(), getContextSession(ctx), courseID, lessonID, data))
}

func (api *webApi) destroyLesson(ctx echo.Context) error {
	courseID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	lessonID, err := paramID(ctx, "lesson")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.DeleteLesson(ctx.Request().Context(), getContextSession(ctx), courseID, lessonID))
}

func (api *webApi) queryTeacherComments(ctx echo.Context) error {
	return respond(ctx, api, api.acts.GetTeacherComments(ctx.Request().Context(), getContextSession(ctx)))
}

func (api *webApi) queryTeacherExams(ctx echo.Context) error {
	return respond(ctx, api, api.acts.GetTeacherExams(ctx.Request().Context(), getContextSession(ctx)))
}

func (api *webApi) queryTeacherStudents(ctx echo.Context) error {
	return respond(ctx, api, api.acts.GetTeacherStudents(ctx.Request().Context(), getContextSession(ctx)))
}

type generateQuestionsRequest struct {
	Text string `json:"text"`
}

func (api *webApi) generateQuestions(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data generateQuestionsRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to generateQuestionsRequest")
	}
	return respond(ctx, api, api.acts.GenerateQuestions(ctx.Request().Context(), getContextSession(ctx), id, data.Text))
}

type storeQuestionsRequest struct {
	Questions []actions.Question `json:"questions"`
}

func (api *webApi) storeQuestions(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data storeQuestionsRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to storeQuestionsRequest")
	}
	return respond(ctx, api, api.acts.StoreQuestions(ctx.Request().Context(), getContextSession(ctx), id, data.Questions))
}
