package model

// ValidateOptions controls how deep a validation run inspects the
// configuration.
type ValidateOptions struct {
	// Strict marks the result invalid when any warning was collected.
	Strict bool
	// CheckPlugins enables required-plugin checks, file-rule validation
	// and the dry-run simulation.
	CheckPlugins bool
	// Verbose includes per-rule detail in the CLI report.
	Verbose bool
}

// Summary condenses a validated configuration into booleans and counts.
type Summary struct {
	HasBranches         bool `json:"hasBranches"`
	BranchCount         int  `json:"branchCount"`
	PluginCount         int  `json:"pluginCount"`
	HasNPMPlugin        bool `json:"hasNpmPlugin"`
	HasFilePatch        bool `json:"hasFilePatch"`
	FilePatchRules      int  `json:"filePatchRules"`
	PlannedReplacements int  `json:"plannedReplacements"`
}

// ValidationResult collects every diagnostic of a validation run. All
// findings are descriptive strings; nothing short of a load failure is
// surfaced as a Go error.
type ValidationResult struct {
	IsValid     bool     `json:"isValid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
	Summary     Summary  `json:"summary"`
}

// AddError records a structural error and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// AddWarning records a non-fatal quality issue.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddSuggestion records an advisory improvement.
func (r *ValidationResult) AddSuggestion(msg string) {
	r.Suggestions = append(r.Suggestions, msg)
}

// Merge folds another result into this one. Validity is the conjunction
// of both.
func (r *ValidationResult) Merge(other *ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Suggestions = append(r.Suggestions, other.Suggestions...)
	if !other.IsValid {
		r.IsValid = false
	}
}

// NewValidationResult returns a result that is valid until a finding
// says otherwise.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{IsValid: true}
}
