package echoweb

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	cachesvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/cache"
)

func registerCatalogAPI(g *echo.Group, api *webApi) {
	g.GET("/home", api.home)

	cg := g.Group("/courses")
	cg.GET("", api.searchCourses)
	cg.GET("/best-selling", api.bestSellingCourses)
	cg.GET("/:id", api.retrieveCourse)

	g.GET("/categories", api.queryCategories)
	g.GET("/categories/:id/courses", api.queryCategoryCourses)
	g.GET("/careers", api.queryCareers)
	g.GET("/careers/:id", api.retrieveCareer)
	g.GET("/features", api.queryFeatures)
	g.GET("/slides", api.querySlides)
	g.GET("/contacts", api.queryContacts)
	g.GET("/comments", api.queryComments)
}

// cached serves key through the view cache. Views depending on who asks must not go through it
// for authenticated sessions: pass an empty key.
func cached[T any](ctx echo.Context, api *webApi, key core.ViewKey, fetch func(context.Context, core.Session) core.Result[T]) core.Result[T] {
	sess := getContextSession(ctx)
	return cachesvc.Fetch(ctx.Request().Context(), api.views, key, func(c context.Context) core.Result[T] {
		return fetch(c, sess)
	})
}

// publicKey returns key for anonymous visitors only.
func publicKey(ctx echo.Context, key core.ViewKey) core.ViewKey {
	if getContextSession(ctx).IsAnonymous() {
		return key
	}
	return ""
}

type homeView struct {
	Slides      []actions.Slide           `json:"slides"`
	BestSelling []actions.Course          `json:"best_selling"`
	Categories  []actions.Category        `json:"categories"`
	Features    []actions.Feature         `json:"features"`
	Contacts    []actions.ContactSettings `json:"contacts"`
}

// home aggregates the views of the landing page. A failing section fails the whole page.
// Best sellers carry per-user flags, so only anonymous visitors share the cached page.
func (api *webApi) home(ctx echo.Context) error {
	res := cached(ctx, api, publicKey(ctx, core.ViewHome), func(c context.Context, sess core.Session) core.Result[homeView] {
		var view homeView

		slides := api.acts.GetSlides(c, sess)
		if !slides.Success {
			return core.Fail[homeView](slides.Err, slides.Message)
		}
		view.Slides = slides.Data

		best := api.acts.BestSellingCourses(c, sess)
		if !best.Success {
			return core.Fail[homeView](best.Err, best.Message)
		}
		view.BestSelling = best.Data

		cats := api.acts.GetCategories(c, sess)
		if !cats.Success {
			return core.Fail[homeView](cats.Err, cats.Message)
		}
		view.Categories = cats.Data

		feats := api.acts.GetFeatures(c, sess)
		if !feats.Success {
			return core.Fail[homeView](feats.Err, feats.Message)
		}
		view.Features = feats.Data

		contacts := api.acts.GetContacts(c, sess)
		if !contacts.Success {
			return core.Fail[homeView](contacts.Err, contacts.Message)
		}
		view.Contacts = contacts.Data
		return core.OK(view)
	})
	return respond(ctx, api, res)
}

func (api *webApi) searchCourses(ctx echo.Context) error {
	search := core.CleanString(ctx.QueryParam("search"))
	var key core.ViewKey
	if search == "" {
		key = publicKey(ctx, core.ViewCoursesList)
	}
	res := cached(ctx, api, key, func(c context.Context, sess core.Session) core.Result[[]actions.Course] {
		return api.acts.SearchCourses(c, sess, search)
	})
	return respond(ctx, api, res)
}

func (api *webApi) bestSellingCourses(ctx echo.Context) error {
	return respond(ctx, api, cached(ctx, api, publicKey(ctx, core.ViewBestSellingCourses), api.acts.BestSellingCourses))
}

func (api *webApi) retrieveCourse(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	res := cached(ctx, api, publicKey(ctx, core.ViewCourseDetail(id)), func(c context.Context, sess core.Session) core.Result[actions.Course] {
		return api.acts.GetCourse(c, sess, id)
	})
	return respond(ctx, api, res)
}

func (api *webApi) queryCategories(ctx echo.Context) error {
	return respond(ctx, api, cached(ctx, api, core.ViewCategoriesList, api.acts.GetCategories))
}

func (api *webApi) queryCategoryCourses(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	// not cached: a course deletion cannot tell which category listed it
	return respond(ctx, api, api.acts.GetCategoryCourses(ctx.Request().Context(), getContextSession(ctx), id))
}

func (api *webApi) queryCareers(ctx echo.Context) error {
	return respond(ctx, api, cached(ctx, api, core.ViewCareersList, api.acts.GetCareers))
}

func (api *webApi) retrieveCareer(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	res := cached(ctx, api, core.ViewCareerDetail(id), func(c context.Context, sess core.Session) core.Result[actions.Career] {
		return api.acts.GetCareer(c, sess, id)
	})
	return respond(ctx, api, res)
}

func (api *webApi) queryFeatures(ctx echo.Context) error {
	return respond(ctx, api, cached(ctx, api, core.ViewFeaturesList, api.acts.GetFeatures))
}

func (api *webApi) querySlides(ctx echo.Context) error {
	return respond(ctx, api, cached(ctx, api, core.ViewSlidesList, api.acts.GetSlides))
}

func (api *webApi) queryContacts(ctx echo.Context) error {
	return respond(ctx, api, cached(ctx, api, core.ViewContactSettings, api.acts.GetContacts))
}

// queryComments lists the comments of ?lesson_id=, or else of ?course_id=.
func (api *webApi) queryComments(ctx echo.Context) error {
	lessonID, err := queryID(ctx, "lesson_id")
	if err != nil {
		return err
	}
	if lessonID != 0 {
		res := cached(ctx, api, core.ViewLessonComments(lessonID), func(c context.Context, sess core.Session) core.Result[[]actions.Comment] {
			return api.acts.GetLessonComments(c, sess, lessonID)
		})
		return respond(ctx, api, res)
	}

	courseID, err := queryID(ctx, "course_id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.GetCourseComments(ctx.Request().Context(), getContextSession(ctx), courseID))
}
