// Command testserver runs a fake OpenAI-compatible streaming endpoint for
// local smoke runs:
//
//	go run ./scripts/testserver -port 8080
//	tokenburn -m fake-model --server-url http://127.0.0.1:8080 -n 20 -c 4
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

func main() {
	port := flag.Int("port", 8080, "Listening port")
	tokenDelay := flag.Duration("token-delay", 20*time.Millisecond, "Delay between streamed tokens")
	tokens := flag.Int("tokens", 32, "Tokens emitted per completion")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		handleCompletions(w, r, *tokens, *tokenDelay)
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("test completion server listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func handleCompletions(w http.ResponseWriter, r *http.Request, tokens int, delay time.Duration) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Model               string `json:"model"`
		MaxCompletionTokens int    `json:"max_completion_tokens"`
		Stream              bool   `json:"stream"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !req.Stream {
		http.Error(w, "only streaming requests are supported", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	count := tokens
	if req.MaxCompletionTokens > 0 && req.MaxCompletionTokens < count {
		count = req.MaxCompletionTokens
	}

	for i := 0; i < count; i++ {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(delay):
		}
		fmt.Fprintf(w, "data: %s\n\n", chunkJSON(req.Model, "token ", ""))
		flusher.Flush()
	}

	fmt.Fprintf(w, "data: %s\n\n", chunkJSON(req.Model, "", "stop"))
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

func chunkJSON(model, content, finishReason string) string {
	chunk := map[string]any{
		"object":  "chat.completion.chunk",
		"model":   model,
		"created": time.Now().Unix(),
		"choices": []map[string]any{
			{
				"index": 0,
				"delta": map[string]any{"content": content},
				"finish_reason": func() any {
					if finishReason == "" {
						return nil
					}
					return finishReason
				}(),
			},
		},
	}
	data, _ := json.Marshal(chunk)
	return string(data)
}
