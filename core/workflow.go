package core

import "strings"

// Workflow is the routing decision for a turn. It selects exactly one of the
// three response paths.
type Workflow string

const (
	WorkflowConversation Workflow = "conversation"
	WorkflowImage        Workflow = "image"
	WorkflowAudio        Workflow = "audio"
)

// ParseWorkflow normalizes a classifier label into a Workflow.
// The second return value is false for anything outside the fixed set;
// callers are expected to clamp to WorkflowConversation in that case.
func ParseWorkflow(label string) (Workflow, bool) {
	switch Workflow(strings.ToLower(strings.TrimSpace(label))) {
	case WorkflowConversation:
		return WorkflowConversation, true
	case WorkflowImage:
		return WorkflowImage, true
	case WorkflowAudio:
		return WorkflowAudio, true
	default:
		return WorkflowConversation, false
	}
}
