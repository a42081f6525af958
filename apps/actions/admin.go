package actions

import (
	"context"
	"net/url"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

// user listings of the admin dashboard, by `role` query value
const (
	ListAdmins   = "admin"
	ListTeachers = "teacher"
	ListStudents = "user"
)

var userListings = []string{ListAdmins, ListTeachers, ListStudents}

func userListingViews() []core.ViewKey {
	keys := make([]core.ViewKey, len(userListings))
	for i, role := range userListings {
		keys[i] = core.ViewAdminUsers(role)
	}
	return keys
}

// GetUsers lists the users of one listing: ListAdmins, ListTeachers or ListStudents.
func (a *Actions) GetUsers(ctx context.Context, sess core.Session, listing string) core.Result[[]Student] {
	listing = core.CleanString(listing, true /* lower */)
	var known bool
	for _, l := range userListings {
		known = known || l == listing
	}
	if !known {
		return invalid[[]Student](core.NewValidationError(nil, core.FieldError{Field: "role", Error: "invalid role"}))
	}
	req := get("/admin/users")
	req.Query = url.Values{"role": {listing}}
	return query[[]Student](ctx, a, sess, req, core.MsgRequestFailed)
}

// ToggleAdmin grants or revokes the admin permissions of a user.
func (a *Actions) ToggleAdmin(ctx context.Context, sess core.Session, userID int) core.Result[Ack] {
	if err := requireIDs(ident("user_id", userID)); err != nil {
		return invalid[Ack](err)
	}
	res := mutate[Ack](ctx, a, sess, post(pathf("/users", userID, "toggle-admin"), nil), core.MsgPermissionsFailed,
		userListingViews()...)
	if res.Success {
		res = res.WithMessage(a.msgs.Get(core.MsgPermissionsUpdated))
	}
	return res
}

// ToggleUserStatus suspends an active user or reactivates a suspended one.
func (a *Actions) ToggleUserStatus(ctx context.Context, sess core.Session, userID int) core.Result[Ack] {
	if err := requireIDs(ident("user_id", userID)); err != nil {
		return invalid[Ack](err)
	}
	return mutate[Ack](ctx, a, sess, post(pathf("/admin/users", userID, "toggle-status"), nil), core.MsgRequestFailed,
		userListingViews()...)
}

func (a *Actions) GetStats(ctx context.Context, sess core.Session) core.Result[Stats] {
	return query[Stats](ctx, a, sess, get("/dashboard/stats"), core.MsgRequestFailed)
}
