package actions

import (
	"context"
	"net/url"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

// PurchaseInput authorizes a payment from the student's wallet.
type PurchaseInput struct {
	WalletPassword string `json:"wallet_password,omitempty"`
}

type purchaseCoursesBody struct {
	CourseIDs []int `json:"course_ids" validate:"min=1,dive,gt=0"`
}

// SearchCourses lists the courses matching search; an empty search lists them all.
func (a *Actions) SearchCourses(ctx context.Context, sess core.Session, search string) core.Result[[]Course] {
	req := get("/courses")
	req.Query = url.Values{"search": {core.CleanString(search)}}
	return query[[]Course](ctx, a, sess, req, core.MsgRequestFailed)
}

func (a *Actions) BestSellingCourses(ctx context.Context, sess core.Session) core.Result[[]Course] {
	return query[[]Course](ctx, a, sess, get("/courses/best-selling"), core.MsgRequestFailed)
}

// GetCourse returns a course with its lessons.
func (a *Actions) GetCourse(ctx context.Context, sess core.Session, courseID int) core.Result[Course] {
	if err := requireIDs(ident("course_id", courseID)); err != nil {
		return invalid[Course](err)
	}
	return query[Course](ctx, a, sess, get(pathf("/courses", courseID)), core.MsgRequestFailed)
}

// GetStudentCourses lists the courses the current student is enrolled in.
func (a *Actions) GetStudentCourses(ctx context.Context, sess core.Session) core.Result[[]Course] {
	return query[[]Course](ctx, a, sess, get("/my-courses"), core.MsgRequestFailed)
}

// PurchaseCourse buys one course. Suspended accounts are denied before any purchase is attempted.
func (a *Actions) PurchaseCourse(ctx context.Context, sess core.Session, courseID int, in PurchaseInput) core.Result[Ack] {
	if err := requireIDs(ident("course_id", courseID)); err != nil {
		return invalid[Ack](err)
	}
	req := post(pathf("/courses", courseID, "purchase"), in)
	if err := a.ensureActive(ctx, sess, core.MsgSuspendedPurchase); err != nil {
		return failure[Ack](a, sess, req, err, core.MsgPurchaseFailed)
	}
	return mutate[Ack](ctx, a, sess, req, core.MsgPurchaseFailed,
		core.ViewMyCourses(sess.UserID), core.ViewCourseDetail(courseID), core.ViewProfile(sess.UserID))
}

// PurchaseCourses buys several courses at once (cart checkout).
func (a *Actions) PurchaseCourses(ctx context.Context, sess core.Session, courseIDs []int) core.Result[Ack] {
	body := purchaseCoursesBody{CourseIDs: courseIDs}
	if err := a.check(body); err != nil {
		return invalid[Ack](err)
	}
	req := post("/courses/purchase", body)
	if err := a.ensureActive(ctx, sess, core.MsgSuspendedPurchase); err != nil {
		return failure[Ack](a, sess, req, err, core.MsgPurchaseFailed)
	}

	keys := []core.ViewKey{core.ViewMyCourses(sess.UserID), core.ViewProfile(sess.UserID)}
	for _, cid := range courseIDs {
		keys = append(keys, core.ViewCourseDetail(cid))
	}
	return mutate[Ack](ctx, a, sess, req, core.MsgPurchaseFailed, keys...)
}
