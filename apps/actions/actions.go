// Package actions exposes one typed operation per remote API endpoint.
//
// Every operation takes the caller's session explicitly and returns a core.Result:
// operations never return a Go error. Mutations invalidate the views they affect,
// only once the remote API accepted them.
package actions

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
	transportsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/transport"
)

type (
	// Invalidator marks views stale. It must not block on, nor fail because of, the caller's context.
	Invalidator interface {
		Invalidate(ctx context.Context, keys ...core.ViewKey)
	}

	Deps struct {
		Client     transportsvc.Caller
		Notifier   Invalidator
		Logger     core.Logger
		Validator  *validator.Validate
		Translator ut.Translator
		Messages   *core.Messages
	}

	Actions struct {
		api        transportsvc.Caller
		notifier   Invalidator
		logger     core.Logger
		validate   *validator.Validate
		translator ut.Translator
		msgs       *core.Messages
	}
)

func New(deps Deps) *Actions {
	a := &Actions{
		api:        deps.Client,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
		validate:   deps.Validator,
		translator: deps.Translator,
		msgs:       deps.Messages,
	}
	if a.validate == nil || a.translator == nil {
		a.validate, a.translator = core.NewValidator(a.msgs.Locale())
		user.RegisterValidators(a.validate, a.translator)
	}
	if a.notifier == nil {
		a.notifier = noopInvalidator{}
	}
	return a
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, ...core.ViewKey) {}

// Ack is the acknowledgement of a mutation whose response carries nothing the caller needs.
// Any JSON payload is accepted.
type Ack struct {
	Message string `json:"message,omitempty"`
}

func (a *Ack) UnmarshalJSON(data []byte) error {
	var payload struct {
		Message interface{} `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil // not an object
	}
	if s, ok := payload.Message.(string); ok {
		a.Message = s
	}
	return nil
}

func get(path string) transportsvc.Request {
	return transportsvc.Request{Method: http.MethodGet, Path: path}
}

func post(path string, body interface{}) transportsvc.Request {
	return transportsvc.Request{Method: http.MethodPost, Path: path, Body: body}
}

func del(path string) transportsvc.Request {
	return transportsvc.Request{Method: http.MethodDelete, Path: path}
}

func pathf(prefix string, id int, suffix ...string) string {
	p := prefix + "/" + strconv.Itoa(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// query runs a read. Reads never invalidate anything.
func query[T any](ctx context.Context, a *Actions, sess core.Session, req transportsvc.Request, genericMsg string) core.Result[T] {
	req.Token = sess.Token
	data, err := transportsvc.Do[T](ctx, a.api, req)
	if err != nil {
		return failure[T](a, sess, req, err, genericMsg)
	}
	return core.OK(data)
}

// mutate runs a write and invalidates keys once the remote API accepted it,
// even when its response cannot be decoded. Writes without keys (login, registration)
// invalidate nothing.
func mutate[T any](ctx context.Context, a *Actions, sess core.Session, req transportsvc.Request, genericMsg string, keys ...core.ViewKey) core.Result[T] {
	req.Token = sess.Token
	raw, err := a.api.Call(ctx, req)
	if err != nil {
		return failure[T](a, sess, req, err, genericMsg)
	}
	if len(keys) > 0 {
		a.notifier.Invalidate(ctx, keys...)
	}

	var data T
	if err = transportsvc.Decode(raw, &data); err != nil {
		return failure[T](a, sess, req, err, genericMsg)
	}
	return core.OK(data)
}

// failure logs err and turns it into a failed Result.
func failure[T any](a *Actions, sess core.Session, req transportsvc.Request, err error, genericMsg string) core.Result[T] {
	a.logFailure(sess, req, err)
	return core.Fail[T](err, core.ErrorMessage(err, a.msgs.Get(genericMsg)))
}

// invalid returns the failed Result of an input rejected before any network call.
func invalid[T any](err error) core.Result[T] {
	return core.Fail[T](err, core.ErrorMessage(err, err.Error()))
}

func (a *Actions) logFailure(sess core.Session, req transportsvc.Request, err error) {
	if a.logger == nil {
		return
	}
	extra := map[string]interface{}{"method": req.Method, "path": req.Path}
	var (
		apiErr *core.ApiError
		denied *core.AuthorizationDenied
	)
	switch {
	case errors.As(err, &denied):
		a.logger.Info("action denied", err, extra, sess)
	case errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError:
		a.logger.Warn("api call rejected", err, extra, sess)
	default:
		a.logger.Error("api call failed", err, extra, sess)
	}
}

func (a *Actions) check(input interface{}) error {
	return core.ValidateStruct(a.validate, a.translator, input)
}

type idField struct {
	name string
	id   int
}

func ident(name string, v int) idField { return idField{name: name, id: v} }

// requireIDs rejects non-positive identifiers, named by their JSON field.
func requireIDs(ids ...idField) error {
	var flds []core.FieldError
	for _, f := range ids {
		if f.id <= 0 {
			flds = append(flds, core.FieldError{Field: f.name, Error: "must be a positive identifier"})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

// ensureActive fetches the profile fresh and denies suspended accounts.
func (a *Actions) ensureActive(ctx context.Context, sess core.Session, deniedMsg string) error {
	req := get("/profile")
	req.Token = sess.Token
	prof, err := transportsvc.Do[user.Profile](ctx, a.api, req)
	if err != nil {
		return err
	}
	if prof.IsSuspended() {
		return core.NewAuthorizationDenied(a.msgs.Get(deniedMsg))
	}
	return nil
}
