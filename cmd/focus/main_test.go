package main

import "testing"

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "focus" {
		t.Fatalf("expected root command name focus, got %q", rootCmd.Use)
	}
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"todo", "add"},
		{"todo", "list"},
		{"todo", "show"},
		{"todo", "toggle"},
		{"todo", "rename"},
		{"todo", "rm"},
		{"subtask", "add"},
		{"subtask", "toggle"},
		{"subtask", "rm"},
		{"track"},
		{"session"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil {
			t.Fatalf("find %v: %v", path, err)
		}
		if cmd.Name() != path[len(path)-1] {
			t.Fatalf("expected %v to resolve, got %q", path, cmd.Name())
		}
	}
}
