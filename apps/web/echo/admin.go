package echoweb

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
)

func registerAdminAPI(g *echo.Group, api *webApi) {
	ag := g.Group("/admin", authMiddleware, roleMiddleware(user.RoleAdmin))

	ag.GET("/stats", api.retrieveStats)
	ag.GET("/users", api.queryUsers)
	ag.POST("/users/:id/toggle-admin", api.toggleAdmin)
	ag.POST("/users/:id/toggle-status", api.toggleUserStatus)

	ag.POST("/categories", api.createCategory)
	ag.POST("/categories/:id", api.updateCategory)
	ag.DELETE("/categories/:id", api.destroyCategory)

	ag.POST("/careers", api.createCareer)
	ag.POST("/careers/:id", api.updateCareer)
	ag.DELETE("/careers/:id", api.destroyCareer)

	ag.POST("/features", api.createFeature)
	ag.POST("/features/:id", api.updateFeature)
	ag.DELETE("/features/:id", api.destroyFeature)

	ag.POST("/ads", api.createAd)
	ag.POST("/ads/:id", api.updateAd)
	ag.DELETE("/ads/:id", api.destroyAd)

	ag.POST("/contacts", api.createContact)
	ag.POST("/contacts/:id", api.updateContact)
	ag.DELETE("/contacts/:id", api.destroyContact)
}

func (api *webApi) retrieveStats(ctx echo.Context) error {
	return respond(ctx, api, api.acts.GetStats(ctx.Request().Context(), getContextSession(ctx)))
}

// queryUsers lists the users of ?role= (admin, teacher or user).
func (api *webApi) queryUsers(ctx echo.Context) error {
	role := core.CleanString(ctx.QueryParam("role"), true /* lower */)
	res := cached(ctx, api, core.ViewAdminUsers(role), func(c context.Context, sess core.Session) core.Result[[]actions.Student] {
		return api.acts.GetUsers(c, sess, role)
	})
	return respond(ctx, api, res)
}

func (api *webApi) toggleAdmin(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.ToggleAdmin(ctx.Request().Context(), getContextSession(ctx), id))
}

func (api *webApi) toggleUserStatus(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.ToggleUserStatus(ctx.Request().Context(), getContextSession(ctx), id))
}

// Categories

func (api *webApi) createCategory(ctx echo.Context) error {
	var data actions.CategoryInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CategoryInput")
	}
	return respond(ctx, api, api.acts.CreateCategory(ctx.Request().Context(), getContextSession(ctx), data))
}

func (api *webApi) updateCategory(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data actions.CategoryInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CategoryInput")
	}
	return respond(ctx, api, api.acts.UpdateCategory(ctx.Request().Context(), getContextSession(ctx), id, data))
}

func (api *webApi) destroyCategory(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.DeleteCategory(ctx.Request().Context(), getContextSession(ctx), id))
}

// Careers

func (api *webApi) createCareer(ctx echo.Context) error {
	var data actions.CareerInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CareerInput")
	}
	return respond(ctx, api, api.acts.CreateCareer(ctx.Request().Context(), getContextSession(ctx), data))
}

func (api *webApi) updateCareer(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data actions.CareerInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CareerInput")
	}
	return respond(ctx, api, api.acts.UpdateCareer(ctx.Request().Context(), getContextSession(ctx), id, data))
}

func (api *webApi) destroyCareer(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.DeleteCareer(ctx.Request().Context(), getContextSession(ctx), id))
}

// Features

func (api *webApi) createFeature(ctx echo.Context) error {
	var data actions.FeatureInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeatureInput")
	}
	return respond(ctx, api, api.acts.CreateFeature(ctx.Request().Context(), getContextSession(ctx), data))
}

func (api *webApi) updateFeature(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data actions.FeatureInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeatureInput")
	}
	return respond(ctx, api, api.acts.UpdateFeature(ctx.Request().Context(), getContextSession(ctx), id, data))
}

func (api *webApi) destroyFeature(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.DeleteFeature(ctx.Request().Context(), getContextSession(ctx), id))
}

// Ads (home sliders), sent as multipart forms

func bindSlide(ctx echo.Context) (actions.SlideInput, func(), error) {
	image, done, err := formFile(ctx, "image")
	if err != nil {
		return actions.SlideInput{}, done, err
	}
	return actions.SlideInput{
		Title:       ctx.FormValue("title"),
		Description: ctx.FormValue("description"),
		Link:        ctx.FormValue("link"),
		Active:      formBool(ctx, "active"),
		Image:       image,
	}, done, nil
}

func (api *webApi) createAd(ctx echo.Context) error {
	data, done, err := bindSlide(ctx)
	defer done()
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.CreateAd(ctx.Request().Context(), getContextSession(ctx), data))
}

func (api *webApi) updateAd(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	data, done, err := bindSlide(ctx)
	defer done()
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.UpdateAd(ctx.Request().Context(), getContextSession(ctx), id, data))
}

func (api *webApi) destroyAd(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.DeleteAd(ctx.Request().Context(), getContextSession(ctx), id))
}

// Contact settings

func (api *webApi) createContact(ctx echo.Context) error {
	var data actions.ContactInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ContactInput")
	}
	return respond(ctx, api, api.acts.CreateContact(ctx.Request().Context(), getContextSession(ctx), data))
}

func (api *webApi) updateContact(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data actions.ContactInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ContactInput")
	}
	return respond(ctx, api, api.acts.UpdateContact(ctx.Request().Context(), getContextSession(ctx), id, data))
}

func (api *webApi) destroyContact(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.DeleteContact(ctx.Request().Context(), getContextSession(ctx), id))
}
