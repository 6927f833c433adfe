package bench

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

// scriptedStream replays a fixed fragment sequence, then returns tailErr
// (io.EOF when unset).
type scriptedStream struct {
	frags   []Fragment
	idx     int
	tailErr error
}

func (s *scriptedStream) Recv(ctx context.Context) (Fragment, error) {
	select {
	case <-ctx.Done():
		return Fragment{}, ctx.Err()
	default:
	}
	if s.idx >= len(s.frags) {
		if s.tailErr != nil {
			return Fragment{}, s.tailErr
		}
		return Fragment{}, io.EOF
	}
	frag := s.frags[s.idx]
	s.idx++
	return frag, nil
}

func (s *scriptedStream) Close() error { return nil }

func TestConsumeStreamCountsContentFragments(t *testing.T) {
	stream := &scriptedStream{frags: []Fragment{
		{Content: "Hel"},
		{Content: ""},
		{Content: "lo"},
		{Terminal: true},
	}}

	firstAt, tokens, err := consumeStream(context.Background(), stream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens != 2 {
		t.Errorf("expected 2 content fragments, got %d", tokens)
	}
	if firstAt.IsZero() {
		t.Error("expected first fragment time to be recorded")
	}
}

func TestConsumeStreamStopsAtTerminal(t *testing.T) {
	stream := &scriptedStream{frags: []Fragment{
		{Content: "a"},
		{Terminal: true},
		{Content: "late"}, // must never be read
	}}

	_, tokens, err := consumeStream(context.Background(), stream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens != 1 {
		t.Errorf("expected 1 token, got %d", tokens)
	}
	if stream.idx != 2 {
		t.Errorf("expected reader to stop after terminal fragment, read %d fragments", stream.idx)
	}
}

func TestConsumeStreamTerminalFragmentCarriesContent(t *testing.T) {
	stream := &scriptedStream{frags: []Fragment{
		{Content: "x", Terminal: true},
	}}

	firstAt, tokens, err := consumeStream(context.Background(), stream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens != 1 {
		t.Errorf("expected terminal content to count, got %d", tokens)
	}
	if firstAt.IsZero() {
		t.Error("expected first fragment time for terminal-only stream")
	}
}

func TestConsumeStreamEmptyStream(t *testing.T) {
	stream := &scriptedStream{}

	firstAt, tokens, err := consumeStream(context.Background(), stream)
	if err != nil {
		t.Fatalf("clean end of stream should not error, got %v", err)
	}
	if tokens != 0 {
		t.Errorf("expected 0 tokens, got %d", tokens)
	}
	if !firstAt.IsZero() {
		t.Error("expected no first fragment time for empty stream")
	}
}

func TestConsumeStreamPropagatesError(t *testing.T) {
	boom := errors.New("connection reset")
	stream := &scriptedStream{
		frags:   []Fragment{{Content: "a"}},
		tailErr: boom,
	}

	_, tokens, err := consumeStream(context.Background(), stream)
	if !errors.Is(err, boom) {
		t.Fatalf("expected underlying error, got %v", err)
	}
	if tokens != 1 {
		t.Errorf("expected tokens counted before failure, got %d", tokens)
	}
}

func TestConsumeStreamFirstFragmentTimeBounds(t *testing.T) {
	stream := &scriptedStream{frags: []Fragment{{Content: "a"}, {Terminal: true}}}

	before := time.Now()
	firstAt, _, err := consumeStream(context.Background(), stream)
	after := time.Now()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if firstAt.Before(before) || firstAt.After(after) {
		t.Errorf("first fragment time %v outside [%v, %v]", firstAt, before, after)
	}
}
