package polaris

import (
	"context"
	"time"
)

// ProjectsClient accesses the projects collection of the common object
// service.
type ProjectsClient interface {
	// List fetches one page. nameFilter narrows by exact project name when
	// non-empty.
	List(ctx context.Context, nameFilter string, limit, offset uint32) (*PageEnvelope[Project], error)
	// ListAll drains the collection with pages of pageSize.
	ListAll(ctx context.Context, nameFilter string, pageSize uint32) (*PageEnvelope[Project], error)
}

// BranchesClient accesses the branches of a project.
type BranchesClient interface {
	List(ctx context.Context, projectID string, limit, offset uint32) (*PageEnvelope[Branch], error)
	ListAll(ctx context.Context, projectID string, pageSize uint32) (*PageEnvelope[Branch], error)
	// Main returns the branch marked main-for-project, fetching branches as
	// needed. Returns ErrNoMainBranch if none is marked.
	Main(ctx context.Context, projectID string) (*Branch, error)
}

// RunsClient accesses analysis runs.
type RunsClient interface {
	// List fetches one page of runs for a project, optionally narrowed to a
	// revision.
	List(ctx context.Context, projectID, revisionID string, limit, offset uint32) (*PageEnvelope[Run], error)
	ListAll(ctx context.Context, projectID, revisionID string, pageSize uint32) (*PageEnvelope[Run], error)
}

// IssueListOptions narrow an issue listing. ProjectID is required; the rest
// are optional.
type IssueListOptions struct {
	ProjectID string
	BranchID  string
	RunIDs    []string
}

// IssuesClient accesses the issue query service.
type IssuesClient interface {
	List(ctx context.Context, opts IssueListOptions, limit, offset uint32) (*PageEnvelope[Issue], error)
	ListAll(ctx context.Context, opts IssueListOptions, pageSize uint32) (*PageEnvelope[Issue], error)
	// Get fetches a single issue with its display relationships side-loaded.
	Get(ctx context.Context, issueID, projectID, branchID string) (*SingleEnvelope, error)
}

// TriageClient accesses the triage query and command services.
type TriageClient interface {
	GetCurrent(ctx context.Context, projectID, issueKey string) (*PageEnvelope[TriageCurrent], error)
	// Update applies the set fields of values to every listed issue.
	Update(ctx context.Context, projectID string, issueKeys []string, values TriageValues) error
	History(ctx context.Context, projectID, issueKey string, limit, offset uint32) (*PageEnvelope[Resource], error)
}

// EventsOptions identify one finding occurrence in a run.
type EventsOptions struct {
	FindingKey string
	RunID      string
	// OccurrenceNumber selects among multiple occurrences; the server
	// defaults to the first when nil.
	OccurrenceNumber *uint32
	// MaxDepth limits nesting of evidence events.
	MaxDepth *uint32
}

// CodeAnalysisClient accesses the code-analysis service.
type CodeAnalysisClient interface {
	// EventsWithSource fetches the event tree with source snippets for a
	// finding.
	EventsWithSource(ctx context.Context, opts EventsOptions) (*EventsResponse, error)
	// SourceCode fetches the full text of a file as captured by a run.
	SourceCode(ctx context.Context, runID, path string) (string, error)
}

// Client is the high-level Polaris API client.
type Client interface {
	Projects() ProjectsClient
	Branches() BranchesClient
	Runs() RunsClient
	Issues() IssuesClient
	Triage() TriageClient
	CodeAnalysis() CodeAnalysisClient

	// Authenticate unconditionally exchanges the configured API token for a
	// fresh JWT, overwriting the cached one. Used by explicit login and
	// verification flows; normal calls authenticate lazily on first use.
	Authenticate(ctx context.Context) (string, error)
	// GetToken returns the cached JWT, authenticating first if none is
	// cached.
	GetToken(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a polaris.Client.
//
// APIEndpoint and APIToken are required. The token is the long-lived API
// token from the Polaris UI; it is exchanged for a short-lived JWT on first
// use and the JWT is cached in-process for the client's lifetime. The client
// never persists either token; storage is the caller's concern.
//
// Retries are disabled unless RetryMax is set; when enabled they apply to
// transient transport-level failures only (connection errors, 429, 5xx).
type Config struct {
	// APIEndpoint is the base URL of the Polaris instance, e.g.
	// "https://company.polaris.blackduck.com". polarisclient.New normalizes
	// it by trimming a trailing slash and defaulting the scheme to https.
	APIEndpoint string

	// APIToken is the long-lived access token used for the JWT exchange.
	APIToken string

	// HTTPTimeout bounds each HTTP exchange. Zero means the transport
	// default; per-call deadlines should use context.
	HTTPTimeout time.Duration
	// RetryMax is the maximum number of transport retries. Zero disables
	// retrying.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug enables request/response logging through Logger.
	Debug bool
	// Logger is the optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
