package actions

import (
	"context"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

type submitAnswersBody struct {
	Answers []SubmitAnswer `json:"answers" validate:"min=1,dive"`
}

// CompleteLesson marks a lesson of an enrolled course as completed.
func (a *Actions) CompleteLesson(ctx context.Context, sess core.Session, lessonID int) core.Result[Ack] {
	if err := requireIDs(ident("lesson_id", lessonID)); err != nil {
		return invalid[Ack](err)
	}
	res := mutate[Ack](ctx, a, sess, post(pathf("/lessons", lessonID, "complete"), nil), core.MsgLessonFailed,
		core.ViewMyCourses(sess.UserID), core.ViewCoursesList)
	if res.Success {
		res = res.WithMessage(a.msgs.Get(core.MsgLessonCompleted))
	}
	return res
}

// GetLessonQuestions lists the quiz of a lesson. Only enrolled students and the course owner may see it.
func (a *Actions) GetLessonQuestions(ctx context.Context, sess core.Session, lessonID int) core.Result[[]Question] {
	if err := requireIDs(ident("lesson_id", lessonID)); err != nil {
		return invalid[[]Question](err)
	}
	return query[[]Question](ctx, a, sess, get(pathf("/lessons", lessonID, "questions")), core.MsgRequestFailed)
}

func (a *Actions) SubmitLessonAnswers(ctx context.Context, sess core.Session, lessonID int, answers []SubmitAnswer) core.Result[QuizResult] {
	if err := requireIDs(ident("lesson_id", lessonID)); err != nil {
		return invalid[QuizResult](err)
	}
	body := submitAnswersBody{Answers: answers}
	if err := a.check(body); err != nil {
		return invalid[QuizResult](err)
	}
	return mutate[QuizResult](ctx, a, sess, post(pathf("/lessons", lessonID, "questions", "submit"), body), core.MsgRequestFailed,
		core.ViewMyCourses(sess.UserID))
}
