package echoweb

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
	cachesvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/cache"
)

const contextSessionKey = "session"

// webApi holds what the JSON handlers share.
type webApi struct {
	acts         *actions.Actions
	views        *cachesvc.Views
	sessions     core.SessionStore
	logger       core.Logger
	sessionTTL   time.Duration
	cookieSecure bool
}

// sessionMiddleware hydrates the session named by the session cookie, Anonymous when there is none.
func sessionMiddleware(store core.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess := core.Anonymous
			if cookie, err := ctx.Cookie(core.SessionStorageName); err == nil && cookie.Value != "" && store != nil {
				loaded, err := store.Load(ctx.Request().Context(), cookie.Value)
				switch {
				case err == nil:
					sess = loaded
				case errors.Is(err, core.ErrSessionNotFound):
					clearSessionCookie(ctx)
				default:
					return errors.Wrap(err, "loading session")
				}
			}
			ctx.Set(contextSessionKey, sess)
			return next(ctx)
		}
	}
}

func getContextSession(ctx echo.Context) core.Session {
	if sess, ok := ctx.Get(contextSessionKey).(core.Session); ok {
		return sess
	}
	return core.Anonymous
}

func authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if getContextSession(ctx).IsAnonymous() {
			return errUnauthorized
		}
		return next(ctx)
	}
}

func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess := getContextSession(ctx)
			for _, role := range roles {
				if sess.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func (api *webApi) setSessionCookie(ctx echo.Context, sess core.Session) {
	cookie := &http.Cookie{
		Name:     core.SessionStorageName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   api.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if api.sessionTTL > 0 {
		cookie.MaxAge = int(api.sessionTTL.Seconds())
	}
	ctx.SetCookie(cookie)
}

func clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     core.SessionStorageName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// dropSession deletes the current session from the store, if any.
func (api *webApi) dropSession(ctx echo.Context) error {
	sess := getContextSession(ctx)
	if sess.ID != "" && api.sessions != nil {
		// the session must go even when the browser hung up
		if err := api.sessions.Delete(context.WithoutCancel(ctx.Request().Context()), sess.ID); err != nil {
			return errors.Wrap(err, "deleting session")
		}
	}
	ctx.Set(contextSessionKey, core.Anonymous)
	return nil
}

// endSession destroys the current session and its cookie.
func (api *webApi) endSession(ctx echo.Context) error {
	if err := api.dropSession(ctx); err != nil {
		return err
	}
	clearSessionCookie(ctx)
	return nil
}

// respond answers res as JSON. A token the remote API rejected ends the session.
func respond[T any](ctx echo.Context, api *webApi, res core.Result[T]) error {
	if res.Success {
		return ctx.JSON(http.StatusOK, res)
	}
	if apiErr, ok := core.AsApiError(res.Err); ok && apiErr.Unauthorized() && !getContextSession(ctx).IsAnonymous() {
		if err := api.endSession(ctx); err != nil {
			return err
		}
	}
	return ctx.JSON(statusOf(res.Err), res)
}

// Auth endpoints

type loginView struct {
	User       user.Profile `json:"user"`
	RedirectTo string       `json:"redirect_to"`
}

func registerAuthAPI(g *echo.Group, api *webApi) {
	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)
	ag.POST("/register/student", api.registerStudent)
	ag.POST("/register/teacher", api.registerTeacher)
	ag.GET("/session", api.session)
}

func (api *webApi) login(ctx echo.Context) error {
	var data user.LoginInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginInput")
	}

	res := api.acts.Login(ctx.Request().Context(), data)
	if !res.Success {
		return respond(ctx, api, core.Fail[loginView](res.Err, res.Message))
	}

	// a new login replaces the current session
	if err := api.dropSession(ctx); err != nil {
		return err
	}
	sess := res.Data.NewSession()
	if err := api.sessions.Save(ctx.Request().Context(), sess, api.sessionTTL); err != nil {
		return errors.Wrap(err, "saving session")
	}
	api.setSessionCookie(ctx, sess)
	return respond(ctx, api, core.OK(loginView{User: res.Data.User, RedirectTo: res.Data.RedirectTo}))
}

func (api *webApi) logout(ctx echo.Context) error {
	if err := api.endSession(ctx); err != nil {
		return err
	}
	return respond(ctx, api, core.OK(actions.Ack{}))
}

func (api *webApi) registerStudent(ctx echo.Context) error {
	var data user.RegisterInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RegisterInput")
	}
	return respond(ctx, api, api.acts.RegisterStudent(ctx.Request().Context(), data))
}

func (api *webApi) registerTeacher(ctx echo.Context) error {
	var data user.RegisterInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RegisterInput")
	}
	return respond(ctx, api, api.acts.RegisterTeacher(ctx.Request().Context(), data))
}

type sessionView struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int    `json:"user_id,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	HomePath      string `json:"home_path,omitempty"`
}

// session describes the current session, without its token.
func (api *webApi) session(ctx echo.Context) error {
	sess := getContextSession(ctx)
	if sess.IsAnonymous() {
		return respond(ctx, api, core.OK(sessionView{}))
	}
	return respond(ctx, api, core.OK(sessionView{
		Authenticated: true,
		UserID:        sess.UserID,
		Name:          sess.Name,
		Email:         sess.Email,
		Role:          sess.Role,
		HomePath:      user.HomePath(sess.Role),
	}))
}
