package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
	transportsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/transport"
	inmemdb "github.com/alassafsami695-wq/graduation-project-main-sub001/storage/database/inmem"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/tests"
)

type fixture struct {
	cli      *commandLine
	api      *testutil.FakeAPI
	notifier *testutil.RecordingNotifier
	out      *bytes.Buffer
}

func setup(t *testing.T) fixture {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	notifier := &testutil.RecordingNotifier{}
	msgs, err := core.NewMessages("en")
	require.NoError(t, err)
	out := new(bytes.Buffer)

	cli := &commandLine{
		acts: actions.New(actions.Deps{
			Client:   transportsvc.NewClient(transportsvc.Options{BaseURL: api.BaseURL()}),
			Notifier: notifier,
			Logger:   &testutil.RecordingLogger{},
			Messages: msgs,
		}),
		sessions:   inmemdb.NewSessionStore(inmemdb.Open()),
		notifier:   notifier,
		sessionTTL: time.Hour,
		out:        out,
	}
	return fixture{cli: cli, api: api, notifier: notifier, out: out}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		assert.True(t, errors.Is(err, tt.wantErr), "cli.run() error = %v, wantErr %v", err, tt.wantErr)
	case tt.wantErrStr != "":
		require.Error(t, err)
		assert.Equal(t, tt.wantErrStr, err.Error())
	default:
		assert.NoError(t, err)
	}
}

func Test_commandLine_usage(t *testing.T) {
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "login: no args", args: []string{"login"}, wantErr: errHelp},
		{name: "logout: no args", args: []string{"logout"}, wantErr: errHelp},
		{name: "invalidate: no keys", args: []string{"invalidate"}, wantErr: errHelp},
		{name: "invalidate: blank keys", args: []string{"invalidate", " ", ""}, wantErr: errHelp},
		{name: "migrate: no database", args: []string{"migrate"}, wantErr: errNoDatabase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.check(t, f.cli.run(context.Background(), append([]string{"admin"}, tt.args...)))
		})
	}
}

func Test_commandLine_login(t *testing.T) {
	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "email but no password", args: []string{"login", "-email", "sara@test.io"}, wantErr: errHelp},
		{name: "wrong credentials", args: []string{"login", "-email", "sara@test.io"}, extra: extra{pwd: "wrong-pwd"}, wantErrStr: "Invalid credentials"},
		{name: "success", args: []string{"login", "-email", "sara@test.io"}, extra: extra{pwd: "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.api.Reply(http.MethodPost, "/login", testutil.Reply{Status: http.StatusUnauthorized, Body: `{"message":"Invalid credentials"}`})
			if ex, ok := tt.extra.(extra); ok && ex.pwd == "secret1" {
				f.api.On(http.MethodPost, "/login", http.StatusOK,
					`{"status":true,"access_token":"abc","user":{"id":4,"name":"Sara","email":"sara@test.io","type":"super_admin"}}`)
			}
			readPasswordFunc = func(fd int) ([]byte, error) {
				if ex, ok := tt.extra.(extra); ok {
					return []byte(ex.pwd), nil
				}
				return nil, nil
			}

			err := f.cli.run(context.Background(), append([]string{"admin"}, tt.args...))
			tt.check(t, err)
			if err != nil {
				return
			}

			assert.Contains(t, f.out.String(), "logged in as Sara (super_admin)")
			id := sessionIDFrom(t, f.out.String())
			sess, err := f.cli.sessions.Load(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, 4, sess.UserID)
			assert.Equal(t, "abc", sess.Token)
			assert.NotContains(t, f.out.String(), "abc\n")
		})
	}
}

func sessionIDFrom(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if id, ok := strings.CutPrefix(line, core.SessionStorageName+"="); ok {
			return id
		}
	}
	t.Fatalf("no session in output %q", out)
	return ""
}

func Test_commandLine_logout(t *testing.T) {
	f := setup(t)
	sess := testutil.SessionWithRole(1, user.RoleAdmin)
	require.NoError(t, f.cli.sessions.Save(context.Background(), sess, time.Hour))

	tests := []cliTest{
		{name: "unknown session", args: []string{"logout", "-session", "lol"}, wantErr: core.ErrSessionNotFound},
		{name: "destroy session", args: []string{"logout", "-session", sess.ID}},
		{name: "already destroyed", args: []string{"logout", "-session", sess.ID}, wantErr: core.ErrSessionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, f.cli.run(context.Background(), append([]string{"admin"}, tt.args...)))
		})
	}
}

func Test_commandLine_invalidate(t *testing.T) {
	f := setup(t)

	err := f.cli.run(context.Background(), []string{"admin", "invalidate", "home", " paths ", ""})
	require.NoError(t, err)
	assert.Equal(t, []core.ViewKey{"home", "paths"}, f.notifier.Keys())
	assert.Equal(t, "invalidated 2 view(s)\n", f.out.String())
}

func Test_commandLine_migrate(t *testing.T) {
	f := setup(t)

	calls := 0
	f.cli.migrate = func(context.Context) error {
		calls++
		if calls > 1 {
			return errors.New("connection refused")
		}
		return nil
	}

	require.NoError(t, f.cli.run(context.Background(), []string{"admin", "migrate"}))
	assert.Equal(t, "sessions database is up to date\n", f.out.String())

	err := f.cli.run(context.Background(), []string{"admin", "migrate"})
	assert.EqualError(t, err, "connection refused")
}
