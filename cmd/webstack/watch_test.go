package main

import (
	"context"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatchCmd(t *testing.T) {
	cmd := newWatchCmd(&globalOptions{})

	if cmd.Use != "watch" {
		t.Errorf("Use = %q, want 'watch'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Flags().Lookup("debounce") == nil {
		t.Error("missing --debounce flag")
	}
}

func TestDebounceDefault(t *testing.T) {
	cmd := newWatchCmd(&globalOptions{})

	flag := cmd.Flags().Lookup("debounce")
	if flag == nil {
		t.Fatal("missing --debounce flag")
	}

	if flag.DefValue != "500ms" {
		t.Errorf("debounce default = %q, want '500ms'", flag.DefValue)
	}
}

func TestIsDeploymentEvent(t *testing.T) {
	target := "/srv/deploy/webstack.yaml"

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"unclean path", fsnotify.Event{Name: "/srv/deploy/./webstack.yaml", Op: fsnotify.Write}, true},
		{"chmod", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/srv/deploy/notes.md", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDeploymentEvent(tt.event, target))
		})
	}
}

func TestWatchLoop_Debounces(t *testing.T) {
	log, _ := test.NewNullLogger()
	target := "/srv/deploy/webstack.yaml"

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	rebuilt := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, events, errs, target, 20*time.Millisecond, func() { rebuilt <- struct{}{} }, log)
	}()

	events <- fsnotify.Event{Name: "/srv/deploy/other.yaml", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: target, Op: fsnotify.Write}

	select {
	case <-rebuilt:
	case <-time.After(time.Second):
		t.Fatal("expected a rebuild")
	}
	select {
	case <-rebuilt:
		t.Fatal("burst of writes should rebuild once")
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchLoop_ClosedEvents(t *testing.T) {
	log, _ := test.NewNullLogger()
	events := make(chan fsnotify.Event)
	close(events)

	err := watchLoop(context.Background(), events, make(chan error), "/x", time.Millisecond, func() {}, log)
	assert.NoError(t, err)
}
