package actions

import (
	"context"
	"net/url"
	"strconv"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

type CommentInput struct {
	LessonID int    `json:"lesson_id" validate:"gt=0"`
	Content  string `json:"content" validate:"required,max=2000"`
	ParentID *int   `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
}

func (in *CommentInput) Clean() {
	in.Content = core.CleanString(in.Content)
}

func (a *Actions) GetCourseComments(ctx context.Context, sess core.Session, courseID int) core.Result[[]Comment] {
	if err := requireIDs(ident("course_id", courseID)); err != nil {
		return invalid[[]Comment](err)
	}
	req := get("/comments")
	req.Query = url.Values{"course_id": {strconv.Itoa(courseID)}}
	return query[[]Comment](ctx, a, sess, req, core.MsgRequestFailed)
}

func (a *Actions) GetLessonComments(ctx context.Context, sess core.Session, lessonID int) core.Result[[]Comment] {
	if err := requireIDs(ident("lesson_id", lessonID)); err != nil {
		return invalid[[]Comment](err)
	}
	req := get("/comments")
	req.Query = url.Values{"lesson_id": {strconv.Itoa(lessonID)}}
	return query[[]Comment](ctx, a, sess, req, core.MsgRequestFailed)
}

// PostComment comments a lesson. Suspended accounts are denied before anything is posted.
func (a *Actions) PostComment(ctx context.Context, sess core.Session, in CommentInput) core.Result[Comment] {
	in.Clean()
	if err := a.check(in); err != nil {
		return invalid[Comment](err)
	}
	req := post("/comments", in)
	if err := a.ensureActive(ctx, sess, core.MsgSuspendedComment); err != nil {
		return failure[Comment](a, sess, req, err, core.MsgCommentFailed)
	}
	return mutate[Comment](ctx, a, sess, req, core.MsgCommentFailed,
		core.ViewLessonComments(in.LessonID), core.ViewTeacherComments)
}

// DeleteComment deletes a comment. lessonID may be 0 when the caller does not know it.
func (a *Actions) DeleteComment(ctx context.Context, sess core.Session, commentID, lessonID int) core.Result[Ack] {
	if err := requireIDs(ident("comment_id", commentID)); err != nil {
		return invalid[Ack](err)
	}
	keys := []core.ViewKey{core.ViewTeacherComments}
	if lessonID > 0 {
		keys = append(keys, core.ViewLessonComments(lessonID))
	}
	return mutate[Ack](ctx, a, sess, del(pathf("/comments", commentID)), core.MsgRequestFailed, keys...)
}
