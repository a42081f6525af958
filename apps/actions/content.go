package actions

import (
	"context"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	transportsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/transport"
)

type FeatureInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon,omitempty"`
}

// SlideInput describes a home page slider ad. Image is required on creation only.
type SlideInput struct {
	Title       string
	Description string
	Link        string
	Active      bool
	Image       *transportsvc.File
}

func (in SlideInput) form() *transportsvc.Form {
	active := "0"
	if in.Active {
		active = "1"
	}
	form := transportsvc.NewForm().
		Set("title", core.CleanString(in.Title)).
		Set("description", core.CleanString(in.Description)).
		Set("active", active)
	setIfNotEmpty(form, "link", core.CleanString(in.Link))
	if in.Image != nil {
		form.AddFile("image", in.Image.Filename, in.Image.ContentType, in.Image.Content)
	}
	return form
}

func (in SlideInput) validate(creating bool) error {
	var flds []core.FieldError
	if core.CleanString(in.Title) == "" {
		flds = append(flds, core.FieldError{Field: "title", Error: "this field is required"})
	}
	if creating && in.Image == nil {
		flds = append(flds, core.FieldError{Field: "image", Error: "this field is required"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

type ContactInput struct {
	Location       string `json:"location" validate:"required"`
	PhonePrimary   string `json:"phone_primary" validate:"required"`
	PhoneSecondary string `json:"phone_secondary,omitempty"`
	Whatsapp       string `json:"whatsapp,omitempty"`
	Email          string `json:"email" validate:"omitempty,email"`
	MapLink        string `json:"map_link,omitempty" validate:"omitempty,url"`
}

var (
	featureViews = []core.ViewKey{core.ViewFeaturesList, core.ViewAdminFeaturesList, core.ViewHome}
	slideViews   = []core.ViewKey{core.ViewSlidesList, core.ViewAdminSlidersList, core.ViewHome}
	contactViews = []core.ViewKey{core.ViewHome, core.ViewContactSettings, core.ViewAdminContactSettings}
)

// Features

func (a *Actions) GetFeatures(ctx context.Context, sess core.Session) core.Result[[]Feature] {
	return query[[]Feature](ctx, a, sess, get("/features"), core.MsgRequestFailed)
}

func (a *Actions) CreateFeature(ctx context.Context, sess core.Session, in FeatureInput) core.Result[Feature] {
	if err := a.check(in); err != nil {
		return invalid[Feature](err)
	}
	return mutate[Feature](ctx, a, sess, post("/admin/features", in), core.MsgRequestFailed, featureViews...)
}

func (a *Actions) UpdateFeature(ctx context.Context, sess core.Session, featureID int, in FeatureInput) core.Result[Feature] {
	if err := requireIDs(ident("feature_id", featureID)); err != nil {
		return invalid[Feature](err)
	}
	if err := a.check(in); err != nil {
		return invalid[Feature](err)
	}
	return mutate[Feature](ctx, a, sess, post(pathf("/admin/features", featureID, "update"), in), core.MsgRequestFailed, featureViews...)
}

// DeleteFeature deletes a feature. Unlike the other admin deletions, the API exposes it outside /admin.
func (a *Actions) DeleteFeature(ctx context.Context, sess core.Session, featureID int) core.Result[Ack] {
	if err := requireIDs(ident("feature_id", featureID)); err != nil {
		return invalid[Ack](err)
	}
	return mutate[Ack](ctx, a, sess, del(pathf("/features", featureID)), core.MsgRequestFailed, featureViews...)
}

// Sliders (ads)

func (a *Actions) GetSlides(ctx context.Context, sess core.Session) core.Result[[]Slide] {
	return query[[]Slide](ctx, a, sess, get("/slides"), core.MsgRequestFailed)
}

func (a *Actions) CreateAd(ctx context.Context, sess core.Session, in SlideInput) core.Result[Slide] {
	if err := in.validate(true); err != nil {
		return invalid[Slide](err)
	}
	return mutate[Slide](ctx, a, sess, post("/admin/ads", in.form()), core.MsgRequestFailed, slideViews...)
}

// UpdateAd updates an ad; the API takes updates as multipart POST.
func (a *Actions) UpdateAd(ctx context.Context, sess core.Session, adID int, in SlideInput) core.Result[Slide] {
	if err := requireIDs(ident("ad_id", adID)); err != nil {
		return invalid[Slide](err)
	}
	if err := in.validate(false); err != nil {
		return invalid[Slide](err)
	}
	return mutate[Slide](ctx, a, sess, post(pathf("/admin/ads", adID), in.form()), core.MsgRequestFailed, slideViews...)
}

func (a *Actions) DeleteAd(ctx context.Context, sess core.Session, adID int) core.Result[Ack] {
	if err := requireIDs(ident("ad_id", adID)); err != nil {
		return invalid[Ack](err)
	}
	return mutate[Ack](ctx, a, sess, del(pathf("/admin/ads", adID)), core.MsgRequestFailed, slideViews...)
}

// Contact settings

func (a *Actions) GetContacts(ctx context.Context, sess core.Session) core.Result[[]ContactSettings] {
	return query[[]ContactSettings](ctx, a, sess, get("/contact-settings"), core.MsgRequestFailed)
}

func (a *Actions) CreateContact(ctx context.Context, sess core.Session, in ContactInput) core.Result[ContactSettings] {
	if err := a.check(in); err != nil {
		return invalid[ContactSettings](err)
	}
	return mutate[ContactSettings](ctx, a, sess, post("/admin/contact-settings", in), core.MsgRequestFailed, contactViews...)
}

func (a *Actions) UpdateContact(ctx context.Context, sess core.Session, contactID int, in ContactInput) core.Result[ContactSettings] {
	if err := requireIDs(ident("contact_id", contactID)); err != nil {
		return invalid[ContactSettings](err)
	}
	if err := a.check(in); err != nil {
		return invalid[ContactSettings](err)
	}
	return mutate[ContactSettings](ctx, a, sess, post(pathf("/admin/contact-settings", contactID, "update"), in), core.MsgRequestFailed,
		contactViews...)
}

func (a *Actions) DeleteContact(ctx context.Context, sess core.Session, contactID int) core.Result[Ack] {
	if err := requireIDs(ident("contact_id", contactID)); err != nil {
		return invalid[Ack](err)
	}
	return mutate[Ack](ctx, a, sess, del(pathf("/admin/contact-settings", contactID)), core.MsgRequestFailed, contactViews...)
}
