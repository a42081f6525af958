package actions

import (
	"context"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

type toggleWishlistBody struct {
	CourseID int `json:"course_id"`
}

func (a *Actions) GetWishlist(ctx context.Context, sess core.Session) core.Result[[]Course] {
	return query[[]Course](ctx, a, sess, get("/wishlist"), core.MsgRequestFailed)
}

// ToggleWishlistItem adds the course to the wishlist, or removes it when already there.
func (a *Actions) ToggleWishlistItem(ctx context.Context, sess core.Session, courseID int) core.Result[Ack] {
	if err := requireIDs(ident("course_id", courseID)); err != nil {
		return invalid[Ack](err)
	}
	return mutate[Ack](ctx, a, sess, post("/wishlist/toggle", toggleWishlistBody{CourseID: courseID}), core.MsgRequestFailed,
		core.ViewWishlist(sess.UserID))
}
