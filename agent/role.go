package agent

import (
	"fmt"
	"sort"
	"strings"
)

// Role is a prompt-formatting strategy injected into an Agent. It replaces
// per-role agent subtypes with a small polymorphic value: the role decides
// how the task text and the auxiliary context mapping are rendered into the
// prompt the model sees.
type Role interface {
	// Name identifies the role ("generic", "analysis", "research", ...).
	Name() string

	// FormatPrompt renders the task and context into a model prompt.
	FormatPrompt(task string, context map[string]any) string
}

// contextLines renders a context mapping as sorted "- key: value" lines so
// prompts are deterministic for identical inputs.
func contextLines(context map[string]any) string {
	if len(context) == 0 {
		return ""
	}
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %v\n", k, context[k])
	}
	return b.String()
}

// GenericRole passes the task through, appending context lines when present.
// It is the default role for agents constructed without one.
type GenericRole struct{}

// Name implements Role.
func (GenericRole) Name() string { return "generic" }

// FormatPrompt implements Role.
func (GenericRole) FormatPrompt(task string, context map[string]any) string {
	if len(context) == 0 {
		return task
	}
	return task + "\n\nContext:\n" + contextLines(context)
}

// AnalysisRole shapes prompts for analytical work: pattern finding, quality
// evaluation and structured reporting.
type AnalysisRole struct{}

// Name implements Role.
func (AnalysisRole) Name() string { return "analysis" }

// FormatPrompt implements Role.
func (AnalysisRole) FormatPrompt(task string, context map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analysis Task: %s\n\n", task)
	if len(context) > 0 {
		b.WriteString("Data/Context to Analyze:\n")
		b.WriteString(contextLines(context))
		b.WriteString("\n")
	}
	b.WriteString(`Please provide a thorough analysis:

1. Identify key patterns and trends
2. Evaluate data quality and reliability
3. Draw evidence-based conclusions
4. Highlight implications and insights
5. Provide actionable recommendations

Present your analysis in a clear, structured format.
`)
	return b.String()
}

// ResearchRole shapes prompts for information gathering: searching, source
// verification and cited summaries.
type ResearchRole struct{}

// Name implements Role.
func (ResearchRole) Name() string { return "research" }

// FormatPrompt implements Role.
func (ResearchRole) FormatPrompt(task string, context map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Research Task: %s\n\n", task)
	if len(context) > 0 {
		b.WriteString("Additional Context:\n")
		b.WriteString(contextLines(context))
		b.WriteString("\n")
	}
	b.WriteString(`Please research this topic thoroughly:

1. Gather relevant information from available sources
2. Verify findings across multiple sources where possible
3. Summarize the key findings
4. Cite sources for the information provided

Present the research in a structured, well-organized format.
`)
	return b.String()
}

// SystemPromptForRole returns the default system prompt matching a role,
// used when a config does not supply one.
func SystemPromptForRole(r Role) string {
	switch r.(type) {
	case AnalysisRole:
		return `You are an analytical agent. Your role is to:
- Analyze data and identify patterns
- Provide actionable insights
- Generate structured reports
- Evaluate quality and accuracy

Be precise, logical, and data-driven in your analysis.`
	case ResearchRole:
		return `You are a research specialist agent. Your role is to:
- Search for relevant information on the web
- Extract and summarize key findings
- Verify information from multiple sources
- Provide structured, well-cited research results

Always be thorough, accurate, and cite your sources when possible.`
	default:
		return "You are a helpful AI agent."
	}
}
