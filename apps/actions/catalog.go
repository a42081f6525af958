package actions

import (
	"context"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

type CategoryInput struct {
	Title string `json:"title" validate:"required,min=2"`
}

func (in *CategoryInput) Clean() {
	in.Title = core.CleanString(in.Title)
}

type CareerInput struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Salary       string `json:"salary,omitempty"`
	CompanyName  string `json:"company_name" validate:"required"`
	CompanyEmail string `json:"company_email" validate:"required,email"`
	JobType      string `json:"job_type,omitempty"`
	WorkingHours string `json:"working_hours,omitempty"`
}

func (in *CareerInput) Clean() {
	in.Title = core.CleanString(in.Title)
	in.CompanyName = core.CleanString(in.CompanyName)
	in.CompanyEmail = core.CleanString(in.CompanyEmail, true /* lower */)
}

var categoryViews = []core.ViewKey{core.ViewCategoriesList, core.ViewAdminCategoriesList, core.ViewHome}

func careerViews(careerID int) []core.ViewKey {
	keys := []core.ViewKey{core.ViewCareersList, core.ViewAdminCareersList}
	if careerID > 0 {
		keys = append(keys, core.ViewCareerDetail(careerID))
	}
	return keys
}

// Categories

func (a *Actions) GetCategories(ctx context.Context, sess core.Session) core.Result[[]Category] {
	return query[[]Category](ctx, a, sess, get("/paths"), core.MsgRequestFailed)
}

func (a *Actions) GetCategoryCourses(ctx context.Context, sess core.Session, categoryID int) core.Result[[]Course] {
	if err := requireIDs(ident("path_id", categoryID)); err != nil {
		return invalid[[]Course](err)
	}
	return query[[]Course](ctx, a, sess, get(pathf("/paths", categoryID, "courses")), core.MsgRequestFailed)
}

func (a *Actions) CreateCategory(ctx context.Context, sess core.Session, in CategoryInput) core.Result[Category] {
	in.Clean()
	if err := a.check(in); err != nil {
		return invalid[Category](err)
	}
	return mutate[Category](ctx, a, sess, post("/admin/paths", in), core.MsgRequestFailed, categoryViews...)
}

func (a *Actions) UpdateCategory(ctx context.Context, sess core.Session, categoryID int, in CategoryInput) core.Result[Category] {
	in.Clean()
	if err := requireIDs(ident("path_id", categoryID)); err != nil {
		return invalid[Category](err)
	}
	if err := a.check(in); err != nil {
		return invalid[Category](err)
	}
	keys := append([]core.ViewKey{core.ViewCategoryCourses(categoryID)}, categoryViews...)
	return mutate[Category](ctx, a, sess, post(pathf("/admin/paths", categoryID, "update"), in), core.MsgRequestFailed, keys...)
}

func (a *Actions) DeleteCategory(ctx context.Context, sess core.Session, categoryID int) core.Result[Ack] {
	if err := requireIDs(ident("path_id", categoryID)); err != nil {
		return invalid[Ack](err)
	}
	keys := append([]core.ViewKey{core.ViewCategoryCourses(categoryID)}, categoryViews...)
	return mutate[Ack](ctx, a, sess, del(pathf("/admin/paths", categoryID)), core.MsgRequestFailed, keys...)
}

// Careers (job listings)

func (a *Actions) GetCareers(ctx context.Context, sess core.Session) core.Result[[]Career] {
	return query[[]Career](ctx, a, sess, get("/job-listings"), core.MsgRequestFailed)
}

func (a *Actions) GetCareer(ctx context.Context, sess core.Session, careerID int) core.Result[Career] {
	if err := requireIDs(ident("job_listing_id", careerID)); err != nil {
		return invalid[Career](err)
	}
	return query[Career](ctx, a, sess, get(pathf("/job-listings", careerID)), core.MsgRequestFailed)
}

func (a *Actions) CreateCareer(ctx context.Context, sess core.Session, in CareerInput) core.Result[Career] {
	in.Clean()
	if err := a.check(in); err != nil {
		return invalid[Career](err)
	}
	return mutate[Career](ctx, a, sess, post("/admin/job-listings", in), core.MsgRequestFailed, careerViews(0)...)
}

func (a *Actions) UpdateCareer(ctx context.Context, sess core.Session, careerID int, in CareerInput) core.Result[Career] {
	in.Clean()
	if err := requireIDs(ident("job_listing_id", careerID)); err != nil {
		return invalid[Career](err)
	}
	if err := a.check(in); err != nil {
		return invalid[Career](err)
	}
	return mutate[Career](ctx, a, sess, post(pathf("/admin/job-listings", careerID, "update"), in), core.MsgRequestFailed,
		careerViews(careerID)...)
}

func (a *Actions) DeleteCareer(ctx context.Context, sess core.Session, careerID int) core.Result[Ack] {
	if err := requireIDs(ident("job_listing_id", careerID)); err != nil {
		return invalid[Ack](err)
	}
	return mutate[Ack](ctx, a, sess, del(pathf("/admin/job-listings", careerID)), core.MsgRequestFailed, careerViews(careerID)...)
}
