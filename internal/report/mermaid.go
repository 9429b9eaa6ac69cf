package report

import (
	"fmt"

	"github.com/TyphonHill/go-mermaid/diagrams/flowchart"

	"github.com/convtrace/convtrace/internal/analyzer"
)

// GenerateMermaid creates a Mermaid flowchart of the run: one supervisor node
// linking to every collaborator agent and every tool observed, with invocation
// counts in the node labels. Output is Markdown with embedded Mermaid code.
func GenerateMermaid(agg *analyzer.Aggregates) string {
	diagram := flowchart.NewFlowchart()
	diagram.EnableMarkdownFence()
	diagram.SetDirection(flowchart.FlowchartDirectionTopDown)
	diagram.Config.SetHtmlLabels(true)

	supervisor := diagram.AddNode("🧭 supervisor")
	supervisor.SetShape(flowchart.NodeShapeTerminal)

	agentStyle := flowchart.NewNodeStyle()
	agentStyle.StrokeWidth = 1
	agentStyle.Fill = "#e1f5fe"
	agentStyle.Stroke = "#01579b"

	toolStyle := flowchart.NewNodeStyle()
	toolStyle.StrokeWidth = 1
	toolStyle.Fill = "#e8f5e9"
	toolStyle.Stroke = "#1b5e20"

	for _, name := range agg.AgentNames() {
		node := diagram.AddNode(invocationLabel("🤖", name, agg.AgentInvocations[name]))
		node.SetShape(flowchart.NodeShapeProcess)
		node.SetStyle(agentStyle)
		diagram.AddLink(supervisor, node)
	}

	for _, function := range agg.FunctionNames() {
		node := diagram.AddNode(invocationLabel("🔧", function, agg.ToolInvocations[function]))
		node.SetShape(flowchart.NodeShapeSubprocess)
		node.SetStyle(toolStyle)
		diagram.AddLink(supervisor, node)
	}

	return diagram.String()
}

func invocationLabel(icon, name string, count int) string {
	if len(name) > 60 {
		name = name[:57] + "..."
	}
	noun := "invocations"
	if count == 1 {
		noun = "invocation"
	}
	return fmt.Sprintf("%s %s<br/>%d %s", icon, name, count, noun)
}
