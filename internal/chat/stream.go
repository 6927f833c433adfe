package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// doneMarker terminates an OpenAI-style SSE stream.
const doneMarker = "[DONE]"

// Chunk is one incremental piece of a streamed completion.
type Chunk struct {
	Content string // newly generated text, may be empty
	Done    bool   // true when the stream has ended
}

// ChunkReader reads chat-completion chunks off one response's SSE body.
// It is owned by a single request and is not safe for concurrent use.
type ChunkReader struct {
	resp   *http.Response
	reader *bufio.Reader
}

// Next returns the next chunk from the stream, or io.EOF when the stream
// ends without a done marker. After a chunk with Done set, or any error,
// the reader is exhausted.
func (r *ChunkReader) Next(ctx context.Context) (Chunk, error) {
	data, err := r.readEvent(ctx)
	if err != nil {
		return Chunk{}, err
	}

	if data == doneMarker {
		return Chunk{Done: true}, nil
	}
	return parseChunk(data), nil
}

// readEvent reads one SSE event and returns its joined data payload.
func (r *ChunkReader) readEvent(ctx context.Context) (string, error) {
	var dataLines []string

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		line, err := r.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Surface a clean end of stream as io.EOF so callers can
				// treat it as completion rather than failure.
				return "", io.EOF
			}
			return "", fmt.Errorf("read line: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")

		// Empty line marks end of event.
		if line == "" {
			if len(dataLines) > 0 {
				return strings.Join(dataLines, "\n"), nil
			}
			continue
		}

		// Comment line, ignore.
		if strings.HasPrefix(line, ":") {
			continue
		}

		if value, ok := strings.CutPrefix(line, "data:"); ok {
			dataLines = append(dataLines, strings.TrimPrefix(value, " "))
		}
		// Other fields (id, event) carry nothing for completions.
	}
}

// parseChunk extracts the delta content and finish state from a chunk's
// JSON payload. Unrecognized payloads yield an empty, non-terminal chunk.
func parseChunk(data string) Chunk {
	var chunk Chunk
	if content := gjson.Get(data, "choices.0.delta.content"); content.Exists() {
		chunk.Content = content.String()
	}
	if finish := gjson.Get(data, "choices.0.finish_reason"); finish.Exists() && finish.Type != gjson.Null {
		chunk.Done = true
	}
	return chunk
}

// Close releases the underlying response body.
func (r *ChunkReader) Close() error {
	if r.resp == nil {
		return nil
	}
	err := r.resp.Body.Close()
	r.resp = nil
	r.reader = nil
	return err
}
