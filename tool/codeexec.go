package tool

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// CodeExecutorOptions configures the code execution tool.
type CodeExecutorOptions struct {
	// Timeout bounds each execution.
	Timeout time.Duration
	// Sandbox rejects snippets that reach for process or network primitives.
	// It is a guard rail, not a security boundary; run untrusted code in a
	// real sandbox.
	Sandbox bool
	// WorkDir is the working directory for executions (defaults to a temp dir).
	WorkDir string
}

// interpreter maps a supported language to its command and source suffix.
var interpreters = map[string]struct {
	command string
	suffix  string
}{
	"python":     {"python3", ".py"},
	"javascript": {"node", ".js"},
	"bash":       {"bash", ".sh"},
}

// sandboxDenylist are substrings rejected in sandbox mode.
var sandboxDenylist = []string{
	"subprocess", "os.system", "child_process", "require('net')", "socket",
	"rm -rf", "mkfs", "shutdown", "reboot",
}

// NewCodeExecutorTool builds a tool that executes python, javascript or bash
// snippets in a subprocess, capturing stdout, stderr and the exit code.
func NewCodeExecutorTool(optFns ...func(o *CodeExecutorOptions)) *FunctionTool {
	opts := CodeExecutorOptions{Timeout: 60 * time.Second, Sandbox: true}
	for _, fn := range optFns {
		fn(&opts)
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"language": map[string]any{
				"type":        "string",
				"description": "Language of the snippet: python, javascript or bash",
				"enum":        []string{"python", "javascript", "bash"},
			},
			"code": map[string]any{
				"type":        "string",
				"description": "The code to execute",
			},
		},
		"required": []string{"language", "code"},
	}

	return NewFunctionTool(
		"execute_code",
		"Execute a code snippet and return its output",
		schema,
		func(ctx context.Context, args map[string]any) (any, error) {
			language, _ := args["language"].(string)
			code, _ := args["code"].(string)
			return executeCode(ctx, opts, language, code)
		},
	)
}

func executeCode(ctx context.Context, opts CodeExecutorOptions, language, code string) (any, error) {
	interp, ok := interpreters[language]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}
	if opts.Sandbox {
		for _, banned := range sandboxDenylist {
			if strings.Contains(code, banned) {
				return nil, fmt.Errorf("sandbox mode rejects code containing %q", banned)
			}
		}
	}

	tmp, err := os.CreateTemp(opts.WorkDir, "snippet-*"+interp.suffix)
	if err != nil {
		return nil, fmt.Errorf("create snippet file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(code); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write snippet file: %w", err)
	}
	tmp.Close()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, interp.command, tmp.Name())
	cmd.Dir = opts.WorkDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("execution timed out: %w", ctx.Err())
	}

	status := "success"
	exitCode := 0
	if runErr != nil {
		status = "error"
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return nil, fmt.Errorf("execution failed: %w", runErr)
		}
	}

	return map[string]any{
		"status":      status,
		"stdout":      stdout.String(),
		"stderr":      stderr.String(),
		"return_code": exitCode,
		"language":    language,
	}, nil
}
