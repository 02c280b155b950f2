// Package agent binds a role, a model gateway and a tool registry into a
// single execution unit with a uniform Run contract. A tool-calling
// conversation loop (Loop) drives each task to a final answer; failures of
// any kind surface as failed results, never as panics or errors crossing the
// Run boundary.
package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/pversteeg/conclave/core"
	"github.com/pversteeg/conclave/logging"
	"github.com/pversteeg/conclave/model"
	"github.com/pversteeg/conclave/tool"
)

// PreprocessFunc rewrites the task before execution. The context mapping is
// read-only from the hook's perspective.
type PreprocessFunc func(task string, context map[string]any) string

// PostprocessFunc rewrites the result after execution.
type PostprocessFunc func(result *core.Result) *core.Result

// Options configures an Agent beyond its AgentConfig.
type Options struct {
	// Role decides prompt shaping; defaults to GenericRole.
	Role Role
	// Tools pre-registers tools at construction.
	Tools []tool.Tool
	// MaxToolTurns bounds the conversation loop (default DefaultMaxToolTurns).
	MaxToolTurns int
	// Preprocess and Postprocess hooks default to identity. They let
	// specialized deployments inject prompt shaping without altering the
	// core loop.
	Preprocess  PreprocessFunc
	Postprocess PostprocessFunc
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Agent is a bound (role, model, tool-set) unit that turns a task into a
// Result. Construction never fails: configuration problems or a missing
// gateway degrade the agent to a disabled mode where every Run returns a
// failed result explaining why.
//
// Each Run call is independent; the observable Status field exists for
// diagnostics. Concurrent Run calls on the same instance are not supported
// unless the underlying gateway client is reentrant.
type Agent struct {
	config core.AgentConfig
	model  model.Model
	role   Role
	tools  *tool.Registry
	loop   *Loop
	logger logging.Logger

	pre  PreprocessFunc
	post PostprocessFunc

	mu          sync.Mutex
	status      core.Status
	disabledErr error
}

// New constructs an agent from its config and gateway.
func New(cfg core.AgentConfig, m model.Model, optFns ...func(o *Options)) *Agent {
	opts := Options{Role: GenericRole{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Role == nil {
		opts.Role = GenericRole{}
	}
	if opts.Preprocess == nil {
		opts.Preprocess = func(task string, _ map[string]any) string { return task }
	}
	if opts.Postprocess == nil {
		opts.Postprocess = func(r *core.Result) *core.Result { return r }
	}
	logger := logging.OrNoOp(opts.Logger)

	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = SystemPromptForRole(opts.Role)
	}

	a := &Agent{
		config: cfg,
		model:  m,
		role:   opts.Role,
		tools:  tool.NewRegistry(),
		logger: logger,
		pre:    opts.Preprocess,
		post:   opts.Postprocess,
		status: core.StatusIdle,
	}

	if err := cfg.Validate(); err != nil {
		a.disabledErr = err
		logger.Warn("agent.disabled", "agent", cfg.Name, "error", err.Error())
	} else if m == nil {
		a.disabledErr = fmt.Errorf("agent %q: no model gateway configured", cfg.Name)
		logger.Warn("agent.disabled", "agent", cfg.Name, "error", a.disabledErr.Error())
	} else {
		a.loop = NewLoop(m, func(o *LoopOptions) {
			o.MaxToolTurns = opts.MaxToolTurns
			o.Logger = logger
		})
	}

	for _, t := range opts.Tools {
		a.tools.Register(t)
	}

	logger.Info("agent.initialized", "agent", cfg.Name, "role", opts.Role.Name(), "model", cfg.Model)
	return a
}

// Name returns the agent's unique name.
func (a *Agent) Name() string { return a.config.Name }

// Config returns the immutable configuration the agent was built with.
func (a *Agent) Config() core.AgentConfig { return a.config }

// Role returns the agent's prompt-formatting role.
func (a *Agent) Role() Role { return a.role }

// Status returns the most recent execution status for diagnostics.
func (a *Agent) Status() core.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *Agent) setStatus(s core.Status) {
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
}

// Disabled reports whether the agent was degraded at construction time, and why.
func (a *Agent) Disabled() error { return a.disabledErr }

// Tools returns the agent's tool registry.
func (a *Agent) Tools() *tool.Registry { return a.tools }

// RegisterTool adds a tool to the agent's capability set; registering an
// existing name overwrites it.
func (a *Agent) RegisterTool(t tool.Tool) {
	a.tools.Register(t)
	a.logger.Info("agent.tool.registered", "agent", a.config.Name, "tool", t.Name())
}

// RegisterTools adds multiple tools.
func (a *Agent) RegisterTools(tools ...tool.Tool) {
	for _, t := range tools {
		a.RegisterTool(t)
	}
}

// Run executes a task and returns its Result. The context mapping carries
// auxiliary data (prior results, domain inputs) rendered into the prompt by
// the agent's role. Run never panics and never returns nil: every failure
// mode (disabled agent, gateway error, exceeded tool-turn bound, a panicking
// hook) is folded into a failed Result.
func (a *Agent) Run(ctx context.Context, task string, taskContext map[string]any) (res *core.Result) {
	a.setStatus(core.StatusRunning)
	a.logger.Info("agent.run.start", "agent", a.config.Name, "task", truncate(task, 100))

	defer func() {
		if r := recover(); r != nil {
			a.setStatus(core.StatusFailed)
			res = core.NewFailedResult(a.config.Name, fmt.Sprintf("agent execution failed: %v", r))
			a.logger.Error("agent.run.panic", "agent", a.config.Name, "panic", fmt.Sprintf("%v", r))
		}
	}()

	if a.disabledErr != nil {
		a.setStatus(core.StatusFailed)
		return core.NewFailedResult(a.config.Name, a.disabledErr.Error())
	}

	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	task = a.pre(task, taskContext)
	prompt := a.role.FormatPrompt(task, taskContext)

	content, records, err := a.loop.Execute(ctx, a.config.SystemPrompt, prompt, a.tools)
	if err != nil {
		a.setStatus(core.StatusFailed)
		failed := core.NewFailedResult(a.config.Name, err.Error())
		failed.ToolCalls = records
		a.logger.Error("agent.run.failed", "agent", a.config.Name, "error", err.Error())
		return failed
	}

	result := core.NewCompletedResult(a.config.Name, content)
	result.ToolCalls = records
	result.Metadata["model"] = a.config.Model
	result.Metadata["temperature"] = a.config.Temperature

	result = a.post(result)

	a.setStatus(core.StatusCompleted)
	a.logger.Info("agent.run.complete", "agent", a.config.Name, "tool_calls", len(records))
	return result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
