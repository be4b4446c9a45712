package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) != Default() {
		t.Error("FromContext() without logger should return Default()")
	}
}

func TestWithLogger(t *testing.T) {
	l := Nop()
	ctx := WithLogger(context.Background(), l)

	if FromContext(ctx) != l {
		t.Error("FromContext() did not return the stored logger")
	}
}

func TestCommitID(t *testing.T) {
	ctx := context.Background()
	if got := CommitIDFromContext(ctx); got != "" {
		t.Errorf("CommitIDFromContext() = %q, want empty", got)
	}

	ctx = WithCommitID(ctx, "01J9Z3Q4X5Y6Z7A8B9C0D1E2F3")
	if got := CommitIDFromContext(ctx); got != "01J9Z3Q4X5Y6Z7A8B9C0D1E2F3" {
		t.Errorf("CommitIDFromContext() = %q", got)
	}
}

func TestL(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Format: "json", Output: &buf})

	t.Run("with commit id", func(t *testing.T) {
		buf.Reset()
		ctx := WithCommitID(WithLogger(context.Background(), l), "commit-1")
		L(ctx).Info("saved")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatal(err)
		}
		if entry["commit_id"] != "commit-1" {
			t.Errorf("commit_id = %v, want commit-1", entry["commit_id"])
		}
	})

	t.Run("without commit id", func(t *testing.T) {
		buf.Reset()
		L(WithLogger(context.Background(), l)).Info("loaded")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatal(err)
		}
		if _, ok := entry["commit_id"]; ok {
			t.Error("commit_id present without a commit in context")
		}
	})
}
