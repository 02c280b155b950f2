package orchestrator

// Step describes one unit of work in a workflow: which agent runs, what task
// it receives and any input context. Steps are consumed by a single dispatch
// call and never persisted.
type Step struct {
	// Agent is the registered name of the agent to dispatch to.
	Agent string
	// Task is the task text handed to the agent.
	Task string
	// Context carries auxiliary input for the agent's role formatter. The
	// orchestrator copies it before augmenting, so callers may reuse maps.
	Context map[string]any
}

func cloneContext(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
