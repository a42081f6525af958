package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

const apiPrefix = "/api"

// RecordedRequest is a request received by the FakeAPI.
type RecordedRequest struct {
	Method string
	Path   string // without the /api prefix
	Query  url.Values
	Header http.Header
	Body   []byte
}

func (r RecordedRequest) JSON(t *testing.T) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(r.Body, &m); err != nil {
		t.Fatalf("RecordedRequest.JSON(): %v (body %q)", err, r.Body)
	}
	return m
}

// Reply is the canned response of a FakeAPI route.
type Reply struct {
	Status      int
	Body        string
	ContentType string
	Delay       time.Duration
}

// FakeAPI is a stand-in for the remote API: canned replies per "METHOD /path", every request recorded.
type FakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]Reply
	requests []RecordedRequest
}

func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{routes: make(map[string]Reply)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// BaseURL is the base URL to configure the transport with.
func (f *FakeAPI) BaseURL() string { return f.URL + apiPrefix }

func routeKey(method, path string) string { return strings.ToUpper(method) + " " + path }

// On registers a JSON reply for method & path.
func (f *FakeAPI) On(method, path string, status int, body string) *FakeAPI {
	return f.Reply(method, path, Reply{Status: status, Body: body})
}

func (f *FakeAPI) Reply(method, path string, reply Reply) *FakeAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[routeKey(method, path)] = reply
	return f
}

func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Calls counts the requests received for method & path.
func (f *FakeAPI) Calls(method, path string) int {
	var n int
	for _, r := range f.Requests() {
		if r.Method == strings.ToUpper(method) && r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the last request received for method & path.
func (f *FakeAPI) Last(t *testing.T, method, path string) RecordedRequest {
	t.Helper()
	reqs := f.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == strings.ToUpper(method) && reqs[i].Path == path {
			return reqs[i]
		}
	}
	t.Fatalf("FakeAPI: no %s %s request received", method, path)
	return RecordedRequest{}
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, apiPrefix)

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method: r.Method,
		Path:   path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	reply, ok := f.routes[routeKey(r.Method, path)]
	f.mu.Unlock()

	if !ok {
		reply = Reply{Status: http.StatusNotFound, Body: `{"message":"not found"}`}
	}
	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}
	ct := reply.ContentType
	if ct == "" {
		ct = "application/json"
	}
	w.Header().Set("Content-Type", ct)
	if reply.Status == 0 {
		reply.Status = http.StatusOK
	}
	w.WriteHeader(reply.Status)
	_, _ = io.WriteString(w, reply.Body)
}

// LogEntry is a message logged through a RecordingLogger.
type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// RecordingLogger is a core.Logger keeping every entry in memory.
type RecordingLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

var _ core.Logger = (*RecordingLogger)(nil)

func (l *RecordingLogger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (l *RecordingLogger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *RecordingLogger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *RecordingLogger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *RecordingLogger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *RecordingLogger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

// Level returns the entries logged at level.
func (l *RecordingLogger) Level(level string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []LogEntry
	for _, e := range l.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// RecordingNotifier records the invalidated views instead of dropping them.
type RecordingNotifier struct {
	mu    sync.Mutex
	Calls [][]core.ViewKey
}

func (n *RecordingNotifier) Invalidate(_ context.Context, keys ...core.ViewKey) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, append([]core.ViewKey(nil), keys...))
}

// Keys returns every invalidated key, in order.
func (n *RecordingNotifier) Keys() []core.ViewKey {
	n.mu.Lock()
	defer n.mu.Unlock()
	var keys []core.ViewKey
	for _, c := range n.Calls {
		keys = append(keys, c...)
	}
	return keys
}

// StudentSession returns an authenticated student session.
func StudentSession(userID int) core.Session {
	return core.Session{
		ID:            fmt.Sprintf("sess-%d", userID),
		UserID:        userID,
		Name:          "Student",
		Email:         fmt.Sprintf("student%d@test.io", userID),
		Role:          "user",
		Token:         fmt.Sprintf("token-%d", userID),
		Authenticated: true,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

// SessionWithRole returns an authenticated session of role.
func SessionWithRole(userID int, role string) core.Session {
	sess := StudentSession(userID)
	sess.Role = role
	return sess
}

// JSONBytesEqual compares two JSON documents semantically.
func JSONBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}
