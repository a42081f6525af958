package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

func TestConsoleLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	l := NewConsoleLogger(log.New(buf, "", 0), &core.Config{Debug: false})

	l.Debug("hidden")
	l.Info("cache invalidated", map[string]interface{}{"keys": []string{"home"}})
	l.Error("api call failed", errors.New("boom"), core.Session{UserID: 9, Role: "teacher", Token: "secret"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO cache invalidated")
	assert.Contains(t, out, "map[keys:[home]]")
	assert.Contains(t, out, "ERROR api call failed")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "session: user=9 role=teacher")
	assert.NotContains(t, out, "secret")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"debug", LevelDebug},
		{" WARN ", LevelWarn},
		{"error", LevelError},
		{"nope", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNew(t *testing.T) {
	std := log.New(new(bytes.Buffer), "", 0)

	_, ok := New(std, &core.Config{}).(*ConsoleLogger)
	assert.True(t, ok)

	_, ok = New(std, &core.Config{RollbarToken: "tok", TestMode: true}).(*ConsoleLogger)
	assert.True(t, ok)
}
