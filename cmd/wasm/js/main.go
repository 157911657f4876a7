//go:build js && wasm

// Command templee-wasm-js is the WebAssembly entrypoint for browser and Node.js.
//
// It exposes a global `templee` object with the following API:
//
//	templee.version()                               → string
//	templee.render(requestJSON)                     → html          (throws on error)
//	templee.query(requestJSON)                      → recordsJSON   (throws on error)
//	templee.expand(recordsJSON, template[, wrap])   → html          (throws on error)
//
// requestJSON has the shape {"records": [...], "template": ["..."],
// "wrap": "<ul>", "steps": ["where:age", "is:>30"]}.
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o templee.wasm ./cmd/wasm/js/
//
// Usage in browser:
//
//	<script src="wasm_exec.js"></script>
//	<script>
//	  const go = new Go()
//	  WebAssembly.instantiateStreaming(fetch('templee.wasm'), go.importObject).then(r => {
//	    go.run(r.instance)
//	    document.body.innerHTML = templee.expand(JSON.stringify(people), '<p>#{name}</p>')
//	  })
//	</script>
package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/elclanrs/templee"
	"github.com/elclanrs/templee/pkg/pipeline"
	"github.com/elclanrs/templee/pkg/types"
)

// jsThrow panics with a JS Error so the caller receives a thrown exception.
func jsThrow(msg string) {
	js.Global().Get("Error").New(msg)
	panic(msg)
}

func decodeRequest(fn string, args []js.Value) pipeline.Request {
	if len(args) < 1 {
		jsThrow(fmt.Sprintf("templee.%s requires 1 argument: request (JSON string)", fn))
	}
	var req pipeline.Request
	if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
		jsThrow(fmt.Sprintf("templee.%s: invalid request JSON: %v", fn, err))
	}
	return req
}

// jsRender implements templee.render(requestJSON) → html.
func jsRender(_ js.Value, args []js.Value) interface{} {
	req := decodeRequest("render", args)
	html, err := req.Render()
	if err != nil {
		jsThrow(fmt.Sprintf("templee.render: %v", err))
	}
	return html
}

// jsQuery implements templee.query(requestJSON) → recordsJSON.
func jsQuery(_ js.Value, args []js.Value) interface{} {
	req := decodeRequest("query", args)
	c, err := req.Query()
	if err != nil {
		jsThrow(fmt.Sprintf("templee.query: %v", err))
	}
	out, err := json.Marshal(c.Get())
	if err != nil {
		jsThrow(fmt.Sprintf("templee.query: marshal result: %v", err))
	}
	return string(out)
}

// jsExpand implements templee.expand(recordsJSON, template[, wrap]) → html.
func jsExpand(_ js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		jsThrow("templee.expand requires 2 arguments: records (JSON string) and template (string)")
	}
	var recs []types.Record
	if err := json.Unmarshal([]byte(args[0].String()), &recs); err != nil {
		jsThrow(fmt.Sprintf("templee.expand: invalid records JSON: %v", err))
	}
	wrap := ""
	if len(args) > 2 {
		wrap = args[2].String()
	}
	return templee.Render(recs, wrap, args[1].String())
}

func main() {
	api := map[string]interface{}{
		"render": js.FuncOf(jsRender),
		"query":  js.FuncOf(jsQuery),
		"expand": js.FuncOf(jsExpand),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return templee.Version()
		}),
	}
	js.Global().Set("templee", js.ValueOf(api))

	// Block forever: the JS event loop owns execution from here.
	select {}
}
