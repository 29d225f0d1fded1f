package model

// WorkflowStep is one custom step of the generated workflow. Either Run
// or Uses must be set; With and Env only apply to Uses steps and plain
// commands respectively.
type WorkflowStep struct {
	Name string
	Run  string
	Uses string
	With map[string]string
	Env  map[string]string
}

// WorkflowOptions drives workflow rendering. Zero values fall back to
// the conventional release workflow.
type WorkflowOptions struct {
	Name         string
	Branches     []string
	NodeVersion  string
	RunTests     bool
	TestCommand  string
	BuildCommand string
	// NPMPublish exposes the npm registry token to the release step.
	NPMPublish  bool
	ExtraSteps  []WorkflowStep
	Permissions map[string]string
}

// DefaultPermissions are the workflow-level token permissions a release
// job needs.
func DefaultPermissions() map[string]string {
	return map[string]string{
		"contents":      "write",
		"issues":        "write",
		"pull-requests": "write",
		"id-token":      "write",
	}
}
