// Package conclave is a library for building cooperating teams of
// language-model agents. Each agent binds a role, a model gateway and a set
// of schema-described tools; a conversation loop drives every task through
// zero or more tool invocations to a final answer, and an orchestrator
// dispatches sequential, parallel and collaborative workflows across agents
// before synthesizing their outputs into one result.
//
// Typical usage:
//  1. Build a model gateway (model/gemini, model/openai or model/anthropic).
//  2. Construct agents with agent.New, giving each a role and tools.
//  3. Register the agents on an orchestrator.New and dispatch workflows, or
//     call Run on a single agent directly.
//
// All public operations return results carrying status, content, the tool
// invocation trace and any error message; nothing panics across the Run or
// workflow boundary.
package conclave
