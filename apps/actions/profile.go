package actions

import (
	"context"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
	transportsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/transport"
)

func (a *Actions) GetProfile(ctx context.Context, sess core.Session) core.Result[user.Profile] {
	return query[user.Profile](ctx, a, sess, get("/profile"), core.MsgRequestFailed)
}

// UpdateProfile updates the current user's profile. With a photo, the update is sent as multipart.
func (a *Actions) UpdateProfile(ctx context.Context, sess core.Session, in user.UpdateProfileInput, photo *transportsvc.File) core.Result[user.Profile] {
	in.Clean()
	if err := a.check(in); err != nil {
		return invalid[user.Profile](err)
	}

	var body interface{} = in
	if photo != nil {
		form := transportsvc.NewForm()
		setIfNotEmpty(form, "name", in.Name)
		setIfNotEmpty(form, "email", in.Email)
		setIfNotEmpty(form, "phone", in.Phone)
		setIfNotEmpty(form, "birth_date", in.BirthDate)
		setIfNotEmpty(form, "address", in.Address)
		form.AddFile("photo", photo.Filename, photo.ContentType, photo.Content)
		body = form
	}
	return mutate[user.Profile](ctx, a, sess, post("/profile/update", body), core.MsgRequestFailed, core.ViewProfile(sess.UserID))
}

func setIfNotEmpty(form *transportsvc.Form, key, value string) {
	if value != "" {
		form.Set(key, value)
	}
}
