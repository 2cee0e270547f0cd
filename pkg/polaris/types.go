package polaris

// Resource is the generic JSON:API resource shape used for side-loaded
// ("included") entries and anywhere the attribute set is not known up front.
// Type and ID together identify a resource within a response; ID alone is not
// unique across types.
type Resource struct {
	Type          string         `json:"type"                    yaml:"type"`
	ID            string         `json:"id"                      yaml:"id"`
	Attributes    map[string]any `json:"attributes,omitempty"    yaml:"attributes,omitempty"`
	Relationships map[string]any `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// PaginationMeta carries the offset/limit/total cursor of a collection page.
// Every field is independently optional; a server may omit any of them.
type PaginationMeta struct {
	Offset *uint64 `json:"offset,omitempty" yaml:"offset,omitempty"`
	Limit  *uint64 `json:"limit,omitempty"  yaml:"limit,omitempty"`
	Total  *uint64 `json:"total,omitempty"  yaml:"total,omitempty"`
}

// PageEnvelope is one page of a collection response: primary resources in
// server order, side-loaded resources (unordered, duplicates permitted), and
// optional pagination metadata.
type PageEnvelope[T any] struct {
	Data     []T             `json:"data"               yaml:"data"`
	Included []Resource      `json:"included,omitempty" yaml:"included,omitempty"`
	Meta     *PaginationMeta `json:"meta,omitempty"     yaml:"meta,omitempty"`
}

// SingleEnvelope is the response shape for single-resource endpoints.
type SingleEnvelope struct {
	Data     Resource   `json:"data"               yaml:"data"`
	Included []Resource `json:"included,omitempty" yaml:"included,omitempty"`
}

// Project is a Polaris project from the common object service.
type Project struct {
	Type          string            `json:"type"                    yaml:"type"`
	ID            string            `json:"id"                      yaml:"id"`
	Attributes    ProjectAttributes `json:"attributes"              yaml:"attributes"`
	Relationships map[string]any    `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// ProjectAttributes holds the displayable fields of a project.
type ProjectAttributes struct {
	Name        string  `json:"name"                  yaml:"name"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Branch is a branch of a project.
type Branch struct {
	Type       string           `json:"type"       yaml:"type"`
	ID         string           `json:"id"         yaml:"id"`
	Attributes BranchAttributes `json:"attributes" yaml:"attributes"`
}

// BranchAttributes holds the displayable fields of a branch.
type BranchAttributes struct {
	Name           string `json:"name"                       yaml:"name"`
	MainForProject *bool  `json:"main-for-project,omitempty" yaml:"main-for-project,omitempty"`
}

// Run is one analysis run of a project revision.
type Run struct {
	Type       string        `json:"type"       yaml:"type"`
	ID         string        `json:"id"         yaml:"id"`
	Attributes RunAttributes `json:"attributes" yaml:"attributes"`
}

// RunAttributes holds the displayable fields of a run.
type RunAttributes struct {
	Status        *string `json:"status,omitempty"         yaml:"status,omitempty"`
	DateCreated   *string `json:"date-created,omitempty"   yaml:"date-created,omitempty"`
	DateCompleted *string `json:"date-completed,omitempty" yaml:"date-completed,omitempty"`
}

// Issue is a static-analysis finding from the issue query service. Severity,
// issue type, and similar display values are not inlined; they arrive as
// relationship references resolved against the envelope's Included set.
type Issue struct {
	Type          string          `json:"type"                    yaml:"type"`
	ID            string          `json:"id"                      yaml:"id"`
	Attributes    IssueAttributes `json:"attributes"              yaml:"attributes"`
	Relationships map[string]any  `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// IssueAttributes holds the intrinsic fields of an issue.
type IssueAttributes struct {
	IssueKey   string  `json:"issue-key"          yaml:"issue-key"`
	FindingKey string  `json:"finding-key"        yaml:"finding-key"`
	SubTool    *string `json:"sub-tool,omitempty" yaml:"sub-tool,omitempty"`
}

// TriageCurrent is the current triage state of one issue.
type TriageCurrent struct {
	Type       string                  `json:"type"       yaml:"type"`
	ID         string                  `json:"id"         yaml:"id"`
	Attributes TriageCurrentAttributes `json:"attributes" yaml:"attributes"`
}

// TriageCurrentAttributes holds the triage state fields.
type TriageCurrentAttributes struct {
	IssueKey            string  `json:"issue-key"                  yaml:"issue-key"`
	ProjectID           string  `json:"project-id"                 yaml:"project-id"`
	DismissalStatus     *string `json:"dismissal-status,omitempty" yaml:"dismissal-status,omitempty"`
	TriageCurrentValues []any   `json:"triage-current-values"      yaml:"triage-current-values"`
}

// TriageValues are the fields a triage update may set. Nil fields are left
// untouched on the server.
type TriageValues struct {
	// Dismiss is one of NOT_DISMISSED, DISMISSED_BY_DESIGN, DISMISSED_AS_FP, ...
	Dismiss *string `json:"dismiss,omitempty" yaml:"dismiss,omitempty"`
	// Owner is an email address.
	Owner *string `json:"owner,omitempty" yaml:"owner,omitempty"`
	// Commentary is free text.
	Commentary *string `json:"commentary,omitempty" yaml:"commentary,omitempty"`
}

// IsEmpty reports whether the update would set nothing.
func (v TriageValues) IsEmpty() bool {
	return v.Dismiss == nil && v.Owner == nil && v.Commentary == nil
}

// SourceSnippet is a slice of source code attached to an analysis event.
type SourceSnippet struct {
	SourceCode string `json:"source-code" yaml:"source-code"`
	StartLine  uint64 `json:"start-line"  yaml:"start-line"`
}

// Event is one node of a code-analysis event tree.
type Event struct {
	EventDescription string         `json:"event-description"         yaml:"event-description"`
	EventType        string         `json:"event-type"                yaml:"event-type"`
	FilePath         string         `json:"filePath"                  yaml:"filePath"`
	LineNumber       *uint64        `json:"line-number,omitempty"     yaml:"line-number,omitempty"`
	SourceBefore     *SourceSnippet `json:"source-before,omitempty"   yaml:"source-before,omitempty"`
	SourceAfter      *SourceSnippet `json:"source-after,omitempty"    yaml:"source-after,omitempty"`
	EvidenceEvents   []Event        `json:"evidence-events,omitempty" yaml:"evidence-events,omitempty"`
}

// EventTree is the event trail for one occurrence of a finding.
type EventTree struct {
	FindingKey          string   `json:"finding-key"                     yaml:"finding-key"`
	MainEventFilePath   []string `json:"main-event-file-path,omitempty"  yaml:"main-event-file-path,omitempty"`
	MainEventLineNumber *uint64  `json:"main-event-line-number,omitempty" yaml:"main-event-line-number,omitempty"`
	Language            string   `json:"language,omitempty"              yaml:"language,omitempty"`
	Events              []Event  `json:"events,omitempty"                yaml:"events,omitempty"`
}

// EventsResponse is the body of the events-with-source endpoint.
type EventsResponse struct {
	Data []EventTree `json:"data" yaml:"data"`
}
