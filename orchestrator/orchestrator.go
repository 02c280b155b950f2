// Package orchestrator coordinates multiple agents: it owns a registry of
// named agents and dispatches sequential, parallel and collaborative
// workflows across them, synthesizing the collected results into a single
// answer via its own model gateway.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pversteeg/conclave/agent"
	"github.com/pversteeg/conclave/core"
	"github.com/pversteeg/conclave/logging"
	"github.com/pversteeg/conclave/model"
)

// DefaultSystemPrompt guides the orchestrator's own model when it plans and
// synthesizes.
const DefaultSystemPrompt = `You are an orchestrator agent. Your role is to:
- Coordinate multiple specialized agents
- Break down complex tasks into subtasks
- Route tasks to appropriate agents
- Synthesize results from multiple agents
- Ensure workflow efficiency

Think strategically about task decomposition and agent coordination.`

// noResultsMessage is returned by synthesis when no agent produced output.
const noResultsMessage = "No results to synthesize"

// Options configures an Orchestrator.
type Options struct {
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
	// AgentOptions are forwarded to the orchestrator's own synthesis agent.
	AgentOptions []func(o *agent.Options)
}

// Orchestrator is itself an agent (it runs tasks and returns results) that
// additionally owns a directory of other agents. The registry is mutated only
// by Register; dispatch reads it under a read lock and never reaches into a
// registered agent's internals.
type Orchestrator struct {
	self   *agent.Agent
	logger logging.Logger

	mu     sync.RWMutex
	agents map[string]*agent.Agent
}

// New constructs an orchestrator with its own synthesis agent built from cfg
// and the given gateway.
func New(cfg core.AgentConfig, m model.Model, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := logging.OrNoOp(opts.Logger)

	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}

	agentOpts := append([]func(o *agent.Options){func(o *agent.Options) {
		o.Logger = logger
	}}, opts.AgentOptions...)

	return &Orchestrator{
		self:   agent.New(cfg, m, agentOpts...),
		logger: logger,
		agents: make(map[string]*agent.Agent),
	}
}

// Name returns the orchestrator's agent name.
func (o *Orchestrator) Name() string { return o.self.Name() }

// Status returns the orchestrator's own execution status.
func (o *Orchestrator) Status() core.Status { return o.self.Status() }

// Register adds an agent to the directory under its configured name. A later
// registration with the same name replaces the earlier one; agents are never
// removed implicitly.
func (o *Orchestrator) Register(a *agent.Agent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, exists := o.agents[a.Name()]; exists {
		o.logger.Warn("orchestrator.agent.replaced", "agent", a.Name())
	}
	o.agents[a.Name()] = a
	o.logger.Info("orchestrator.agent.registered", "agent", a.Name())
}

// Agents returns the registered agent names in sorted order.
func (o *Orchestrator) Agents() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	names := make([]string, 0, len(o.agents))
	for name := range o.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the registered agent with the given name.
func (o *Orchestrator) Lookup(name string) (*agent.Agent, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	a, ok := o.agents[name]
	return a, ok
}

// ExecuteSequential runs steps in order. From the second step on, each step's
// context is augmented with "previous_results": the accumulated output texts
// of all prior results, giving later agents visibility into everything
// produced so far. Steps referencing unregistered agents are skipped with a
// logged diagnostic; the output carries no padding for them.
func (o *Orchestrator) ExecuteSequential(ctx context.Context, steps []Step) []*core.Result {
	results := make([]*core.Result, 0, len(steps))

	for i, step := range steps {
		a, ok := o.Lookup(step.Agent)
		if !ok {
			o.logger.Error("orchestrator.step.skipped", "agent", step.Agent, "step", i)
			continue
		}

		stepCtx := cloneContext(step.Context)
		if i > 0 {
			prior := make([]string, 0, len(results))
			for _, r := range results {
				prior = append(prior, r.Content)
			}
			stepCtx["previous_results"] = prior
		}

		results = append(results, a.Run(ctx, step.Task, stepCtx))
		o.logger.Info("orchestrator.step.complete", "step", i+1, "total", len(steps), "agent", step.Agent)
	}

	return results
}

// ExecuteParallel runs steps concurrently; no step sees another's output.
// Results preserve the input order of the dispatched steps regardless of
// completion order, so callers can correlate by index. A step that fails
// (including by timeout) resolves to a failed result without affecting its
// siblings. Unregistered agents are skipped as in ExecuteSequential.
func (o *Orchestrator) ExecuteParallel(ctx context.Context, steps []Step) []*core.Result {
	type dispatch struct {
		agent *agent.Agent
		step  Step
	}

	dispatches := make([]dispatch, 0, len(steps))
	for i, step := range steps {
		a, ok := o.Lookup(step.Agent)
		if !ok {
			o.logger.Error("orchestrator.step.skipped", "agent", step.Agent, "step", i)
			continue
		}
		dispatches = append(dispatches, dispatch{agent: a, step: step})
	}

	results := make([]*core.Result, len(dispatches))
	var wg sync.WaitGroup
	for i, d := range dispatches {
		wg.Add(1)
		go func(i int, d dispatch) {
			defer wg.Done()
			results[i] = d.agent.Run(ctx, d.step.Task, cloneContext(d.step.Context))
		}(i, d)
	}
	wg.Wait()

	return results
}

// Collaborate runs first on the task, then hands first's full output to
// second as a derived task with {previous_agent, previous_response} context.
// Both results are returned keyed by agent name.
func (o *Orchestrator) Collaborate(ctx context.Context, first, second *agent.Agent, task string) map[string]*core.Result {
	o.logger.Info("orchestrator.collaboration.start", "first", first.Name(), "second", second.Name())

	firstResult := first.Run(ctx, task, nil)

	collaborationContext := map[string]any{
		"previous_agent":    first.Name(),
		"previous_response": firstResult.Content,
	}
	derivedTask := fmt.Sprintf("Build upon this previous work:\n%s\n\nTask: %s", firstResult.Content, task)

	secondResult := second.Run(ctx, derivedTask, collaborationContext)

	return map[string]*core.Result{
		first.Name():  firstResult,
		second.Name(): secondResult,
	}
}

// Run makes the orchestrator act as an agent: it plans a workflow (currently
// the task against every registered agent, in sorted name order), executes it
// sequentially, and synthesizes the collected outputs into one answer.
func (o *Orchestrator) Run(ctx context.Context, task string, taskContext map[string]any) *core.Result {
	names := o.Agents()
	o.logger.Info("orchestrator.run.start", "task", truncate(task, 100), "agents", len(names))

	steps := make([]Step, 0, len(names))
	for _, name := range names {
		steps = append(steps, Step{Agent: name, Task: task, Context: taskContext})
	}

	results := o.ExecuteSequential(ctx, steps)
	return o.Synthesize(ctx, task, results)
}

// Synthesize asks the orchestrator's model to reconcile and merge the given
// results into one coherent answer. With zero results it short-circuits to a
// completed result carrying a fixed message and makes no gateway call.
func (o *Orchestrator) Synthesize(ctx context.Context, originalTask string, results []*core.Result) *core.Result {
	if len(results) == 0 {
		return core.NewCompletedResult(o.Name(), noResultsMessage)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Original Task: %s\n\n", originalTask)
	b.WriteString("Results from specialized agents:\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "Agent %d (%s):\n%s\n\n", i+1, r.AgentName, r.Content)
	}
	b.WriteString(`
Please synthesize these results into a comprehensive, coherent response that:
1. Combines insights from all agents
2. Resolves any contradictions
3. Provides a complete answer to the original task
4. Highlights key findings and recommendations
`)

	synthesized := o.self.Run(ctx, b.String(), nil)

	contributing := make([]string, 0, len(results))
	for _, r := range results {
		contributing = append(contributing, r.AgentName)
	}
	if synthesized.Metadata == nil {
		synthesized.Metadata = map[string]any{}
	}
	synthesized.Metadata["contributing_agents"] = contributing
	synthesized.Metadata["num_agents"] = len(results)

	return synthesized
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
