package actions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
)

var ErrMissingToken = errors.New("no access token in login response")

// LoginResult is what a successful login yields: the user, its token and where to land.
type LoginResult struct {
	User       user.Profile `json:"user"`
	Token      string       `json:"access_token"`
	RedirectTo string       `json:"redirect_to"`
}

// NewSession returns the session to persist for r.
func (r LoginResult) NewSession() core.Session {
	return core.Session{
		ID:            uuid.NewString(),
		UserID:        r.User.ID,
		Name:          r.User.Name,
		Email:         r.User.Email,
		Role:          r.User.Type,
		Token:         r.Token,
		Authenticated: true,
		CreatedAt:     time.Now().UTC(),
	}
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	Token       string       `json:"token"`
	User        user.Profile `json:"user"`
}

// Login exchanges credentials for a token. It does not touch any session: persisting the
// returned one is up to the caller.
func (a *Actions) Login(ctx context.Context, in user.LoginInput) core.Result[LoginResult] {
	in.Clean()
	if err := a.check(in); err != nil {
		return invalid[LoginResult](err)
	}

	res := mutate[loginResponse](ctx, a, core.Anonymous, post("/login", in), core.MsgLoginFailed)
	if !res.Success {
		return core.Fail[LoginResult](res.Err, res.Message)
	}

	token := res.Data.AccessToken
	if token == "" {
		token = res.Data.Token
	}
	if token == "" {
		a.logFailure(core.Anonymous, post("/login", nil), ErrMissingToken)
		return core.Fail[LoginResult](ErrMissingToken, a.msgs.Get(core.MsgMissingToken))
	}
	return core.OK(LoginResult{
		User:       res.Data.User,
		Token:      token,
		RedirectTo: user.HomePath(res.Data.User.Type),
	})
}

// RegisterStudent creates a student account. The user must verify their email before logging in.
func (a *Actions) RegisterStudent(ctx context.Context, in user.RegisterInput) core.Result[Ack] {
	return a.register(ctx, "/register/student", in)
}

// RegisterTeacher creates a teacher account.
func (a *Actions) RegisterTeacher(ctx context.Context, in user.RegisterInput) core.Result[Ack] {
	return a.register(ctx, "/register/teacher", in)
}

func (a *Actions) register(ctx context.Context, path string, in user.RegisterInput) core.Result[Ack] {
	in.Clean()
	if err := a.check(in); err != nil {
		return invalid[Ack](err)
	}
	return mutate[Ack](ctx, a, core.Anonymous, post(path, in), core.MsgRegisterFailed)
}
