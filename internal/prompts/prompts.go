package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Corpus holds a fixed set of prompts and hands them out uniformly at
// random. It is safe for concurrent use.
type Corpus struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	prompts []string
}

// New creates a corpus from the given prompts, seeded for reproducible
// selection in tests.
func New(prompts []string, seed int64) (*Corpus, error) {
	cleaned := make([]string, 0, len(prompts))
	for _, p := range prompts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("prompt corpus is empty")
	}
	return &Corpus{
		rnd:     rand.New(rand.NewSource(seed)),
		prompts: cleaned,
	}, nil
}

// Default returns the builtin sample corpus.
func Default(seed int64) *Corpus {
	c, err := New(samplePrompts, seed)
	if err != nil {
		panic(err) // builtin corpus is never empty
	}
	return c
}

// Load reads a corpus from a YAML or JSON file containing an array of
// strings. The format is chosen by file extension, defaulting to YAML.
func Load(path string, seed int64) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	var list []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode prompts JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode prompts YAML: %w", err)
		}
	}

	c, err := New(list, seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Pick returns one prompt chosen uniformly at random.
func (c *Corpus) Pick(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prompts[c.rnd.Intn(len(c.prompts))], nil
}

// Len returns the number of prompts in the corpus.
func (c *Corpus) Len() int {
	return len(c.prompts)
}
