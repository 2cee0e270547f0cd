package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Pagination defaults.
const (
	// DefaultPageSize is the page size used by auto-paginating listings.
	DefaultPageSize = 25
)

// Polaris API paths.
const (
	// AuthenticatePath is the token exchange endpoint.
	AuthenticatePath = "/api/auth/v2/authenticate"

	// ProjectsPath is the common object service projects collection.
	ProjectsPath = "/api/common/v0/projects"

	// BranchesPath is the common object service branches collection.
	BranchesPath = "/api/common/v0/branches"

	// RunsPath is the common object service runs collection.
	RunsPath = "/api/common/v0/runs"

	// IssuesPath is the issue query service collection.
	IssuesPath = "/api/query/v1/issues"

	// EventsWithSourcePath is the code-analysis event tree endpoint.
	EventsWithSourcePath = "/api/code-analysis/v0/events-with-source"

	// SourceCodePath is the code-analysis source file endpoint.
	SourceCodePath = "/api/code-analysis/v0/source-code"

	// TriageCurrentPath is the triage query current-state collection.
	TriageCurrentPath = "/api/triage-query/v1/triage-current"

	// TriageHistoryPath is the triage query history collection.
	TriageHistoryPath = "/api/triage-query/v1/triage-history-items"

	// TriageIssuesPath is the triage command endpoint.
	TriageIssuesPath = "/api/triage-command/v1/triage-issues"
)

// Content types.
const (
	// ContentTypeJSONAPI is the JSON:API media type used by resource
	// endpoints.
	ContentTypeJSONAPI = "application/vnd.api+json"

	// ContentTypeForm is the media type of the token exchange request.
	ContentTypeForm = "application/x-www-form-urlencoded"
)
