// Package analyzer classifies raw agent-execution traces and aggregates
// invocation statistics.
package analyzer

// RawTrace is one trace object as returned by the platform. Only a handful of
// nested paths are meaningful; everything else is ignored.
type RawTrace = map[string]any

// Observe classifies a single raw trace and updates the aggregates.
//
// A trace counts as an agent invocation when
// trace.orchestrationTrace.invocationInput.agentCollaboratorInvocationInput is
// present, and as a tool invocation when actionGroupInvocationInput is present
// instead. The agent branch wins if both keys ever co-occur. Traces matching
// neither shape, or missing any level of the nested path, leave the state
// untouched.
func (a *Aggregates) Observe(raw RawTrace) {
	trace, ok := raw["trace"].(map[string]any)
	if !ok {
		return
	}

	orch, ok := trace["orchestrationTrace"].(map[string]any)
	if !ok {
		return
	}

	input, ok := orch["invocationInput"].(map[string]any)
	if !ok {
		return
	}

	if agent, ok := input["agentCollaboratorInvocationInput"].(map[string]any); ok {
		name := stringField(agent, "agentCollaboratorName", "unknown")
		a.AgentInvocations[name]++
		return
	}

	action, ok := input["actionGroupInvocationInput"].(map[string]any)
	if !ok {
		return
	}

	function := stringField(action, "function", "unknown")
	a.ToolInvocations[function]++

	call := ToolCall{
		FieldFunctionName:    function,
		FieldActionGroupName: stringField(action, "actionGroupName", ""),
		FieldExecutionType:   stringField(action, "executionType", ""),
	}

	if params, ok := action["parameters"].([]any); ok {
		for _, p := range params {
			param, ok := p.(map[string]any)
			if !ok {
				continue
			}
			name := stringField(param, "name", "")
			call[ParamPrefix+name] = stringField(param, "value", "")
		}
	}

	a.ToolCalls = append(a.ToolCalls, call)
}

// ObserveAll feeds a batch of traces through Observe in order.
func (a *Aggregates) ObserveAll(traces []RawTrace) {
	for _, raw := range traces {
		a.Observe(raw)
	}
}

// stringField reads a string value from a decoded JSON object, falling back
// to def when the key is absent or not a string.
func stringField(obj map[string]any, key, def string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return def
}
