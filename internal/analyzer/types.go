package analyzer

import "sort"

// ToolCall is one flattened action-group invocation. Base fields are always
// present; each tool parameter adds a "param_<name>" field, so different calls
// in the same run may carry different field sets.
type ToolCall map[string]string

// Base field names shared by every ToolCall.
const (
	FieldFunctionName    = "function_name"
	FieldActionGroupName = "action_group_name"
	FieldExecutionType   = "execution_type"
)

// ParamPrefix marks fields derived from tool parameters.
const ParamPrefix = "param_"

// Aggregates accumulates invocation statistics over one analysis run.
// It is owned by a single processing loop and is not safe for concurrent use.
type Aggregates struct {
	// AgentInvocations counts collaborator-agent invocations by agent name.
	AgentInvocations map[string]int `json:"agent_invocations"`
	// ToolInvocations counts action-group invocations by function name.
	ToolInvocations map[string]int `json:"tool_invocations"`
	// ToolCalls holds one flattened record per action-group invocation,
	// in processing order.
	ToolCalls []ToolCall `json:"tool_calls"`
}

// NewAggregates creates an empty accumulator for a fresh analysis run.
func NewAggregates() *Aggregates {
	return &Aggregates{
		AgentInvocations: make(map[string]int),
		ToolInvocations:  make(map[string]int),
		ToolCalls:        make([]ToolCall, 0),
	}
}

// TotalAgentInvocations returns the sum of all agent invocation counts.
func (a *Aggregates) TotalAgentInvocations() int {
	return sumCounts(a.AgentInvocations)
}

// TotalToolInvocations returns the sum of all tool invocation counts.
func (a *Aggregates) TotalToolInvocations() int {
	return sumCounts(a.ToolInvocations)
}

// FunctionNames returns the distinct function names observed, sorted.
func (a *Aggregates) FunctionNames() []string {
	return sortedKeys(a.ToolInvocations)
}

// AgentNames returns the distinct collaborator names observed, sorted.
func (a *Aggregates) AgentNames() []string {
	return sortedKeys(a.AgentInvocations)
}

func sumCounts(m map[string]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
