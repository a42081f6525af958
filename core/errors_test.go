package core

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	const generic = "Something went wrong"

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "api error", err: &ApiError{Status: 422, Message: "Insufficient balance"}, want: "Insufficient balance"},
		{name: "wrapped api error", err: errors.Wrap(&ApiError{Status: 403, Message: "Forbidden"}, "posting"), want: "Forbidden"},
		{name: "api error without message", err: &ApiError{Status: 500}, want: generic},
		{name: "denied", err: NewAuthorizationDenied("account suspended"), want: "account suspended"},
		{name: "validation", err: NewValidationError(nil, FieldError{Field: "email", Error: "invalid"}), want: "email: invalid"},
		{name: "network", err: &NetworkError{Cause: context.DeadlineExceeded}, want: generic},
		{name: "shape", err: errors.Wrap(ErrUnexpectedShape, "decoding"), want: generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err, generic))
		})
	}
}

func TestNetworkErrorUnwraps(t *testing.T) {
	err := errors.Wrap(&NetworkError{Cause: context.Canceled}, "calling api")
	assert.True(t, errors.Is(err, context.Canceled))

	_, ok := AsApiError(err)
	assert.False(t, ok)
}

func TestApiErrorUnauthorized(t *testing.T) {
	assert.True(t, (&ApiError{Status: 401}).Unauthorized())
	assert.False(t, (&ApiError{Status: 403}).Unauthorized())
}

func TestResultJSON(t *testing.T) {
	type course struct {
		ID int `json:"id"`
	}

	tests := []struct {
		name string
		res  interface{}
		want string
	}{
		{name: "success", res: OK(course{ID: 1}), want: `{"success":true,"data":{"id":1}}`},
		{name: "success with message", res: OK(course{ID: 1}).WithMessage("done"), want: `{"success":true,"data":{"id":1},"message":"done"}`},
		{name: "failure", res: Fail[course](&ApiError{Status: 403}, "Forbidden"), want: `{"success":false,"error":"Forbidden"}`},
		{name: "failure without message", res: Fail[course](errors.New("boom"), ""), want: `{"success":false,"error":"boom"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.res)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}
}

func TestResultError(t *testing.T) {
	assert.Empty(t, OK(1).WithMessage("saved").Error())
	assert.Equal(t, "Forbidden", Fail[int](nil, "Forbidden").Error())
}

func TestMessages(t *testing.T) {
	en, err := NewMessages("en")
	require.NoError(t, err)
	assert.Equal(t, "Failed to post comment.", en.Get(MsgCommentFailed))
	assert.Equal(t, "unknown_key", en.Get("unknown_key"))

	ar, err := NewMessages("ar")
	require.NoError(t, err)
	assert.Equal(t, "فشل نشر التعليق", ar.Get(MsgCommentFailed))

	_, err = NewMessages("xx")
	assert.Error(t, err)

	var none *Messages
	assert.Equal(t, "Lesson completed successfully.", none.Get(MsgLessonCompleted))
}

func TestViewKeys(t *testing.T) {
	assert.Equal(t, ViewKey("course-detail:42"), ViewCourseDetail(42))
	assert.Equal(t, ViewKey("wishlist:7"), ViewWishlist(7))
	assert.Equal(t, ViewKey("admin-users:teacher"), ViewAdminUsers("teacher"))
	assert.Equal(t, "home", ViewHome.String())
}

func TestSessionIsAnonymous(t *testing.T) {
	assert.True(t, Anonymous.IsAnonymous())
	assert.True(t, Session{Authenticated: true}.IsAnonymous())
	assert.True(t, Session{Token: "t"}.IsAnonymous())
	assert.False(t, Session{Authenticated: true, Token: "t"}.IsAnonymous())
}
