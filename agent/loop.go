package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pversteeg/conclave/core"
	"github.com/pversteeg/conclave/logging"
	"github.com/pversteeg/conclave/model"
	"github.com/pversteeg/conclave/tool"
)

// DefaultMaxToolTurns bounds the tool-calling loop. The protocol itself only
// terminates when the model stops requesting tools, so a malfunctioning model
// could otherwise request tools forever.
const DefaultMaxToolTurns = 10

// ErrToolLoopExceeded is returned (wrapped) when a conversation exceeds the
// configured tool-turn bound.
var ErrToolLoopExceeded = errors.New("tool call limit exceeded")

// Loop drives one prompt to a final textual answer against a model gateway,
// transparently executing any tool calls the model requests along the way.
//
// Protocol per turn:
//   - send the conversation (and tool schemas) to the gateway
//   - a text-only reply terminates the loop with that answer
//   - a tool request is resolved through the registry; unknown tools and tool
//     failures become {"error": ...} payloads fed back to the model rather
//     than aborting, so the model can retry or adapt
//
// Only a gateway failure (or the turn bound) ends the loop unsuccessfully,
// and even then the tool invocation records gathered so far are preserved
// for diagnostics.
type Loop struct {
	model        model.Model
	maxToolTurns int
	logger       logging.Logger
}

// LoopOptions configures a Loop.
type LoopOptions struct {
	MaxToolTurns int
	Logger       logging.Logger
}

// NewLoop creates a conversation loop over the given gateway.
func NewLoop(m model.Model, optFns ...func(o *LoopOptions)) *Loop {
	opts := LoopOptions{MaxToolTurns: DefaultMaxToolTurns}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxToolTurns <= 0 {
		opts.MaxToolTurns = DefaultMaxToolTurns
	}
	return &Loop{model: m, maxToolTurns: opts.MaxToolTurns, logger: logging.OrNoOp(opts.Logger)}
}

// Execute runs the tool-calling protocol for a single prompt and returns the
// final answer text plus the ordered tool invocation records. On error the
// records gathered so far are still returned.
func (l *Loop) Execute(ctx context.Context, system, prompt string, reg *tool.Registry) (string, []core.ToolInvocation, error) {
	contents := []core.Content{core.NewTextContent("user", prompt)}
	defs := toolDefinitions(reg)

	var records []core.ToolInvocation

	for turn := 0; ; turn++ {
		if turn >= l.maxToolTurns {
			return "", records, fmt.Errorf("conversation exceeded %d tool turns: %w", l.maxToolTurns, ErrToolLoopExceeded)
		}

		resp, err := l.model.Generate(ctx, model.Request{System: system, Contents: contents, Tools: defs})
		if err != nil {
			return "", records, fmt.Errorf("model gateway: %w", err)
		}

		calls := resp.ToolCalls()
		if len(calls) == 0 {
			return resp.Text(), records, nil
		}

		contents = append(contents, resp.Content)
		for _, call := range calls {
			record, responsePart := l.invokeTool(ctx, reg, call)
			records = append(records, record)
			contents = append(contents, core.Content{Role: "tool", Parts: []core.Part{responsePart}})
		}
	}
}

// invokeTool resolves and executes one requested tool call, producing both
// the diagnostic record and the response part fed back to the model.
func (l *Loop) invokeTool(ctx context.Context, reg *tool.Registry, call core.FunctionCall) (core.ToolInvocation, core.FunctionResponsePart) {
	args := decodeArgs(call.Arguments)
	record := core.ToolInvocation{Name: call.Name, Args: args}

	var result any
	t, ok := lookupTool(reg, call.Name)
	if !ok {
		record.Error = fmt.Sprintf("Tool not found: %s", call.Name)
		result = map[string]any{"error": record.Error}
		l.logger.Error("loop.tool.unknown", "tool", call.Name)
	} else {
		start := time.Now()
		out, err := t.Call(ctx, args)
		if err != nil {
			record.Error = err.Error()
			result = map[string]any{"error": err.Error()}
			l.logger.Error("loop.tool.failed", "tool", call.Name, "error", err.Error())
		} else {
			result = out
			l.logger.Info("loop.tool.executed", "tool", call.Name, "duration_ms", time.Since(start).Milliseconds())
		}
	}
	record.Result = result

	return record, core.FunctionResponsePart{FunctionResponse: core.FunctionResponse{
		ID:       call.ID,
		Name:     call.Name,
		Response: result,
		Error:    record.Error,
	}}
}

func lookupTool(reg *tool.Registry, name string) (tool.Tool, bool) {
	if reg == nil {
		return nil, false
	}
	return reg.Get(name)
}

// decodeArgs tolerates empty or malformed argument payloads; the schema
// validation inside the tool reports missing fields properly.
func decodeArgs(raw string) map[string]any {
	args := map[string]any{}
	if raw == "" {
		return args
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return map[string]any{}
	}
	return args
}

// toolDefinitions converts a registry into the schema list the gateway sees.
func toolDefinitions(reg *tool.Registry) []model.ToolDefinition {
	if reg == nil || reg.Size() == 0 {
		return nil
	}
	tools := reg.All()
	defs := make([]model.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}
