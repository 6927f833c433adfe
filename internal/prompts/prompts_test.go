package prompts_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tokenburn/tokenburn/internal/prompts"
)

func TestDefaultCorpus(t *testing.T) {
	c := prompts.Default(1)
	if c.Len() == 0 {
		t.Fatal("builtin corpus must not be empty")
	}
}

func TestPickReturnsMemberPrompts(t *testing.T) {
	list := []string{"alpha", "beta", "gamma"}
	c, err := prompts.New(list, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	members := map[string]bool{"alpha": true, "beta": true, "gamma": true}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		p, err := c.Pick(context.Background())
		if err != nil {
			t.Fatalf("pick: %v", err)
		}
		if !members[p] {
			t.Fatalf("picked %q, not in the corpus", p)
		}
		seen[p] = true
	}
	// 100 draws from 3 prompts should touch every member.
	if len(seen) != 3 {
		t.Errorf("expected all prompts to appear, saw %d", len(seen))
	}
}

func TestNewRejectsEmptyCorpus(t *testing.T) {
	if _, err := prompts.New(nil, 1); err == nil {
		t.Fatal("expected error for empty corpus")
	}
	if _, err := prompts.New([]string{"", "  ", "\n"}, 1); err == nil {
		t.Fatal("expected error for whitespace-only corpus")
	}
}

func TestNewTrimsPrompts(t *testing.T) {
	c, err := prompts.New([]string{"  hello  ", ""}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 prompt after cleaning, got %d", c.Len())
	}
	p, err := c.Pick(context.Background())
	if err != nil || p != "hello" {
		t.Fatalf("expected trimmed prompt, got %q (err=%v)", p, err)
	}
}

func TestPickCancelledContext(t *testing.T) {
	c := prompts.Default(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Pick(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "- Tell me a story\n- Explain recursion\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := prompts.Load(path, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 prompts, got %d", c.Len())
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.json")
	if err := os.WriteFile(path, []byte(`["one", "two", "three"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := prompts.Load(path, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 prompts, got %d", c.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := prompts.Load(filepath.Join(t.TempDir(), "absent.yaml"), 1); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := prompts.Load(path, 1); err == nil {
		t.Fatal("expected error for empty prompt list")
	}
}
