//go:build wasip1

// Command templee-wasm-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "records": [...], "template": ["..."], "wrap": "<ul>", "steps": ["where:age", "is:>30"] }
//	stdout: { "html": "<ul>...</ul>" }     on success
//	        { "error": "<message>" }       on failure (exit code 1)
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o templee.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"records":[{"name":"Alice"}],"template":["<b>#{name}</b>"]}' | wasmtime templee.wasm
package main

import (
	"encoding/json"
	"os"

	"github.com/elclanrs/templee/pkg/pipeline"
)

func writeResponse(r pipeline.Response, exitCode int) {
	_ = json.NewEncoder(os.Stdout).Encode(r)
	os.Exit(exitCode)
}

func main() {
	var req pipeline.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(pipeline.Response{Error: "invalid request JSON: " + err.Error()}, 1)
	}

	html, err := req.Render()
	if err != nil {
		writeResponse(pipeline.Response{Error: err.Error()}, 1)
	}

	writeResponse(pipeline.Response{HTML: html}, 0)
}
