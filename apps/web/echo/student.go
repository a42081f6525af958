package echoweb

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
)

func registerStudentAPI(g *echo.Group, api *webApi) {
	ag := g.Group("", authMiddleware)

	ag.GET("/profile", api.retrieveProfile)
	ag.POST("/profile", api.updateProfile)

	ag.GET("/my-courses", api.queryMyCourses)
	ag.POST("/courses/purchase", api.purchaseCourses)
	ag.POST("/courses/:id/purchase", api.purchaseCourse)

	ag.POST("/lessons/:id/complete", api.completeLesson)
	ag.GET("/lessons/:id/questions", api.queryLessonQuestions)
	ag.POST("/lessons/:id/answers", api.submitLessonAnswers)

	ag.POST("/comments", api.postComment)
	ag.DELETE("/comments/:id", api.deleteComment)

	ag.GET("/wishlist", api.queryWishlist)
	ag.POST("/wishlist/toggle", api.toggleWishlist)

	wg := ag.Group("/wallet")
	wg.POST("", api.updateWallet)
	wg.POST("/deposit", api.deposit)
	wg.POST("/withdraw", api.withdraw)
	wg.POST("/simulate/:transaction", api.simulatePayment)
}

func (api *webApi) retrieveProfile(ctx echo.Context) error {
	sess := getContextSession(ctx)
	res := cached(ctx, api, core.ViewProfile(sess.UserID), api.acts.GetProfile)
	return respond(ctx, api, res)
}

// updateProfile accepts JSON, or multipart when a new photo is uploaded.
func (api *webApi) updateProfile(ctx echo.Context) error {
	photo, done, err := formFile(ctx, "photo")
	if err != nil {
		return err
	}
	defer done()

	var data user.UpdateProfileInput
	if photo != nil {
		data = user.UpdateProfileInput{
			Name:      ctx.FormValue("name"),
			Email:     ctx.FormValue("email"),
			Phone:     ctx.FormValue("phone"),
			BirthDate: ctx.FormValue("birth_date"),
			Address:   ctx.FormValue("address"),
		}
	} else if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfileInput")
	}
	return respond(ctx, api, api.acts.UpdateProfile(ctx.Request().Context(), getContextSession(ctx), data, photo))
}

func (api *webApi) queryMyCourses(ctx echo.Context) error {
	sess := getContextSession(ctx)
	res := cached(ctx, api, core.ViewMyCourses(sess.UserID), api.acts.GetStudentCourses)
	return respond(ctx, api, res)
}

type purchaseCoursesRequest struct {
	CourseIDs []int `json:"course_ids"`
}

func (api *webApi) purchaseCourses(ctx echo.Context) error {
	var data purchaseCoursesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to purchaseCoursesRequest")
	}
	return respond(ctx, api, api.acts.PurchaseCourses(ctx.Request().Context(), getContextSession(ctx), data.CourseIDs))
}

func (api *webApi) purchaseCourse(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data actions.PurchaseInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PurchaseInput")
	}
	return respond(ctx, api, api.acts.PurchaseCourse(ctx.Request().Context(), getContextSession(ctx), id, data))
}

func (api *webApi) completeLesson(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.CompleteLesson(ctx.Request().Context(), getContextSession(ctx), id))
}

func (api *webApi) queryLessonQuestions(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.GetLessonQuestions(ctx.Request().Context(), getContextSession(ctx), id))
}

type submitAnswersRequest struct {
	Answers []actions.SubmitAnswer `json:"answers"`
}

func (api *webApi) submitLessonAnswers(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data submitAnswersRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to submitAnswersRequest")
	}
	return respond(ctx, api, api.acts.SubmitLessonAnswers(ctx.Request().Context(), getContextSession(ctx), id, data.Answers))
}

func (api *webApi) postComment(ctx echo.Context) error {
	var data actions.CommentInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CommentInput")
	}
	return respond(ctx, api, api.acts.PostComment(ctx.Request().Context(), getContextSession(ctx), data))
}

func (api *webApi) deleteComment(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	lessonID, err := queryID(ctx, "lesson_id")
	if err != nil {
		return err
	}
	return respond(ctx, api, api.acts.DeleteComment(ctx.Request().Context(), getContextSession(ctx), id, lessonID))
}

func (api *webApi) queryWishlist(ctx echo.Context) error {
	sess := getContextSession(ctx)
	res := cached(ctx, api, core.ViewWishlist(sess.UserID), api.acts.GetWishlist)
	return respond(ctx, api, res)
}

type toggleWishlistRequest struct {
	CourseID int `json:"course_id"`
}

func (api *webApi) toggleWishlist(ctx echo.Context) error {
	var data toggleWishlistRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to toggleWishlistRequest")
	}
	return respond(ctx, api, api.acts.ToggleWishlistItem(ctx.Request().Context(), getContextSession(ctx), data.CourseID))
}

// Wallet

func (api *webApi) updateWallet(ctx echo.Context) error {
	var data user.UpdateWalletInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateWalletInput")
	}
	return respond(ctx, api, api.acts.UpdateWallet(ctx.Request().Context(), getContextSession(ctx), data))
}

func (api *webApi) deposit(ctx echo.Context) error {
	var data user.DepositInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DepositInput")
	}
	return respond(ctx, api, api.acts.Deposit(ctx.Request().Context(), getContextSession(ctx), data))
}

func (api *webApi) withdraw(ctx echo.Context) error {
	var data user.WithdrawInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to WithdrawInput")
	}
	return respond(ctx, api, api.acts.Withdraw(ctx.Request().Context(), getContextSession(ctx), data))
}

func (api *webApi) simulatePayment(ctx echo.Context) error {
	return respond(ctx, api, api.acts.SimulatePayment(ctx.Request().Context(), getContextSession(ctx), ctx.Param("transaction")))
}
