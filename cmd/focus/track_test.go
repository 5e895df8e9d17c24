package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/amonks/focus/focus"
	"github.com/amonks/focus/internal/config"
	"github.com/amonks/focus/todo"
)

func TestParseTrackedSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"90", 90},
		{" 0 ", 0},
		{"25m", 1500},
		{"1h30m", 5400},
		{"1500ms", 1},
	}
	for _, tc := range cases {
		got, err := parseTrackedSeconds(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %d, got %d", tc.in, tc.want, got)
		}
	}

	for _, bad := range []string{"-5", "-1m", "soon", ""} {
		if _, err := parseTrackedSeconds(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestTextArg(t *testing.T) {
	got, err := textArg([]string{"Write", "the", "spec"})
	if err != nil || got != "Write the spec" {
		t.Fatalf("expected joined text, got %q (%v)", got, err)
	}
	if _, err := textArg([]string{"  "}); !errors.Is(err, todo.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if _, err := textArg([]string{strings.Repeat("x", todo.MaxTextLength+1)}); !errors.Is(err, todo.ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong, got %v", err)
	}
}

func TestSessionLength(t *testing.T) {
	t.Cleanup(func() {
		sessionMinutes = focus.DefaultMinutes
		_ = sessionCmd.Flags().Set("minutes", "25")
		sessionCmd.Flags().Lookup("minutes").Changed = false
	})

	if got := sessionLength(sessionCmd, &config.Config{}); got != focus.DefaultMinutes {
		t.Fatalf("expected default, got %d", got)
	}
	cfg := &config.Config{Timer: config.Timer{DefaultMinutes: 500}}
	if got := sessionLength(sessionCmd, cfg); got != focus.MaxMinutes {
		t.Fatalf("expected clamped config default, got %d", got)
	}

	if err := sessionCmd.Flags().Set("minutes", "45"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if got := sessionLength(sessionCmd, cfg); got != 45 {
		t.Fatalf("expected flag to win, got %d", got)
	}
}
