package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLoggedIn(t *testing.T) {
	app := &App{}
	assert.False(t, app.isLoggedIn())

	app.setUser("alice")
	assert.True(t, app.isLoggedIn())
}

func TestSetMode_ReportsChange(t *testing.T) {
	app := &App{logger: logging.Nop()}

	assert.True(t, app.setMode(ModeOnline))
	assert.Equal(t, ModeOnline, app.Mode())

	assert.False(t, app.setMode(ModeOnline))

	assert.True(t, app.setMode(ModeOffline))
	assert.Equal(t, ModeOffline, app.Mode())
}

func TestGetStatus(t *testing.T) {
	app := &App{logger: logging.Nop()}
	assert.Equal(t, "", app.getStatus())

	app.setMode(ModeOffline)
	assert.Equal(t, "(offline)", app.getStatus())

	app.setUser("bob")
	assert.Equal(t, "(bob offline)", app.getStatus())
}

func TestRestoreSession(t *testing.T) {
	ta := newTestApp(t)
	ta.restoreSession(context.Background())
	assert.False(t, ta.isLoggedIn())

	ta.auth.user, ta.auth.token = "carol", "tok"
	ta.restoreSession(context.Background())
	assert.True(t, ta.isLoggedIn())
	assert.Contains(t, ta.getStatus(), "carol")
}

func TestCheckOnline_TogglesModeAndFlushesQueue(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.auth.token = "tok"

	ta.auth.pingErr = errors.New("down")
	ta.checkOnline(ctx)
	assert.Equal(t, ModeOffline, ta.Mode())

	ta.auth.pingErr = nil
	ta.checkOnline(ctx)
	assert.Equal(t, ModeOnline, ta.Mode())
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	ta := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		ta.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return ta.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
