package commands

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Relationship paths and included-type prefixes of the display values an
// issue references.
const (
	severityRelPath  = "/severity/data/id"
	severityType     = "taxon"
	issueTypeRelPath = "/issue-type/data/id"
	issueTypeType    = "issue-type"
	toolRelPath      = "/tool-domain-service/data/id"
	toolType         = "tool-domain-service"
	pathRelPath      = "/path/data/id"
	pathType         = "path"
)

// NewIssuesCommand creates the issues command group.
func NewIssuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"issue"},
		Short:   "Manage issues",
		Long:    "List and inspect Polaris static-analysis issues",
	}

	cmd.AddCommand(newIssuesListCommand())
	cmd.AddCommand(newIssuesGetCommand())

	return cmd
}

func newIssuesListCommand() *cobra.Command {
	var (
		projectID string
		branchID  string
		runIDs    []string
		allPages  bool
		perPage   uint32
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Long:  "List issues of a project branch. The project's main branch is used when no branch is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIssuesListCommand(projectID, branchID, runIDs, allPages, perPage)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.Flags().StringVar(&branchID, "branch", "", "branch ID (main branch when omitted)")
	cmd.Flags().StringSliceVar(&runIDs, "run", nil, "run ID (repeatable)")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().Uint32Var(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runIssuesListCommand(projectID, branchID string, runIDs []string, allPages bool, perPage uint32) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Runs pin the result set on their own; only resolve a branch when
	// neither a branch nor runs were given.
	if branchID == "" && len(runIDs) == 0 {
		branchID, err = resolveMainBranch(ctx, client, projectID)
		if err != nil {
			return err
		}
	}

	opts := polaris.IssueListOptions{
		ProjectID: projectID,
		BranchID:  branchID,
		RunIDs:    runIDs,
	}

	var issues *polaris.PageEnvelope[polaris.Issue]
	if allPages {
		issues, err = client.Issues().ListAll(ctx, opts, perPage)
	} else {
		issues, err = client.Issues().List(ctx, opts, perPage, 0)
	}

	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}

	return outputIssues(issues, allPages)
}

// resolveMainBranch looks up the main branch of a project for commands that
// default to it.
func resolveMainBranch(ctx context.Context, client polaris.Client, projectID string) (string, error) {
	branch, err := client.Branches().Main(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve main branch: %w", err)
	}

	return branch.ID, nil
}

// issueRow is the resolved, display-ready form of one issue.
type issueRow struct {
	ID        string `json:"id"         yaml:"id"`
	IssueKey  string `json:"issue-key"  yaml:"issue-key"`
	Checker   string `json:"checker"    yaml:"checker"`
	Severity  string `json:"severity"   yaml:"severity"`
	IssueType string `json:"issue-type" yaml:"issue-type"`
}

func resolveIssueRows(issues *polaris.PageEnvelope[polaris.Issue]) []issueRow {
	index := polaris.BuildIncludedIndex(issues.Included)
	rows := make([]issueRow, 0, len(issues.Data))

	for _, issue := range issues.Data {
		rows = append(rows, issueRow{
			ID:        issue.ID,
			IssueKey:  issue.Attributes.IssueKey,
			Checker:   derefOr(issue.Attributes.SubTool, NotAvailable),
			Severity:  polaris.ResolveIncluded(issue.Relationships, severityRelPath, severityType, index),
			IssueType: polaris.ResolveIncluded(issue.Relationships, issueTypeRelPath, issueTypeType, index),
		})
	}

	return rows
}

func outputIssues(issues *polaris.PageEnvelope[polaris.Issue], allPages bool) error {
	rows := resolveIssueRows(issues)

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(rows)
	case OutputFormatYAML:
		return StandardYAMLRenderer(rows)
	default:
		return renderIssueTable(rows, issues.Meta, allPages)
	}
}

func renderIssueTable(rows []issueRow, meta *polaris.PaginationMeta, allPages bool) error {
	if len(rows) == 0 {
		_, _ = os.Stdout.WriteString("No issues found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Issue Key", "Checker", "Severity", "Type")

	for _, row := range rows {
		_ = table.Append(row.ID, row.IssueKey, row.Checker, row.Severity, row.IssueType)
	}

	_ = table.Render()

	printRemainingHint(meta, len(rows), allPages)

	return nil
}

func newIssuesGetCommand() *cobra.Command {
	var (
		projectID  string
		branchID   string
		withEvents bool
	)

	cmd := &cobra.Command{
		Use:   "get ISSUE_ID",
		Short: "Get issue details",
		Long:  "Display detailed information about one issue, including its Polaris web URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIssuesGetCommand(args[0], projectID, branchID, withEvents)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.Flags().StringVar(&branchID, "branch", "", "branch ID (main branch when omitted)")
	cmd.Flags().BoolVar(&withEvents, "events", false, "include an event summary for the latest run")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runIssuesGetCommand(issueID, projectID, branchID string, withEvents bool) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if branchID == "" {
		branchID, err = resolveMainBranch(ctx, client, projectID)
		if err != nil {
			return err
		}
	}

	envelope, err := client.Issues().Get(ctx, issueID, projectID, branchID)
	if err != nil {
		return fmt.Errorf("failed to get issue: %w", err)
	}

	detail := resolveIssueDetail(envelope, viper.GetString("api"), projectID, branchID)

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(detail)
	case OutputFormatYAML:
		return StandardYAMLRenderer(detail)
	default:
		renderIssueDetail(detail)
	}

	if withEvents {
		printEventsSummary(ctx, client, envelope)
	}

	return nil
}

// issueDetail is the resolved, display-ready form of a single issue.
type issueDetail struct {
	ID            string `json:"id"             yaml:"id"`
	IssueKey      string `json:"issue-key"      yaml:"issue-key"`
	FindingKey    string `json:"finding-key"    yaml:"finding-key"`
	Severity      string `json:"severity"       yaml:"severity"`
	IssueType     string `json:"issue-type"     yaml:"issue-type"`
	Checker       string `json:"checker"        yaml:"checker"`
	Tool          string `json:"tool"           yaml:"tool"`
	Path          string `json:"path"           yaml:"path"`
	FirstDetected string `json:"first-detected" yaml:"first-detected"`
	URL           string `json:"url"            yaml:"url"`
}

func resolveIssueDetail(envelope *polaris.SingleEnvelope, baseURL, projectID, branchID string) issueDetail {
	data := envelope.Data
	index := polaris.BuildIncludedIndex(envelope.Included)

	detail := issueDetail{
		ID:            data.ID,
		IssueKey:      stringAttribute(data, "issue-key"),
		FindingKey:    stringAttribute(data, "finding-key"),
		Checker:       stringAttribute(data, "sub-tool"),
		FirstDetected: stringAttribute(data, "first-detected-on"),
		Severity:      polaris.ResolveIncluded(data.Relationships, severityRelPath, severityType, index),
		IssueType:     polaris.ResolveIncluded(data.Relationships, issueTypeRelPath, issueTypeType, index),
		Tool:          polaris.ResolveIncluded(data.Relationships, toolRelPath, toolType, index),
	}

	pathSegments := resolvePathSegments(data, index)
	detail.Path = NotAvailable

	if len(pathSegments) > 0 {
		detail.Path = strings.Join(pathSegments, "/")
	}

	detail.URL = issueWebURL(baseURL, projectID, branchID, data.ID, revisionFromTransitions(envelope.Included), pathSegments)

	return detail
}

func stringAttribute(res polaris.Resource, name string) string {
	value, ok := res.Attributes[name].(string)
	if !ok {
		return NotAvailable
	}

	return value
}

// resolvePathSegments recovers the file path of the issue from the included
// path resource, whose path attribute is an array of segments.
func resolvePathSegments(data polaris.Resource, index map[string]polaris.Resource) []string {
	value, ok := polaris.LookupPath(data.Relationships, pathRelPath)
	if !ok {
		return nil
	}

	pathID, ok := value.(string)
	if !ok {
		return nil
	}

	res, ok := index[polaris.IncludedKey(pathType, pathID)]
	if !ok {
		return nil
	}

	raw, ok := res.Attributes["path"].([]any)
	if !ok {
		return nil
	}

	segments := make([]string, 0, len(raw))

	for _, segment := range raw {
		if s, ok := segment.(string); ok {
			segments = append(segments, s)
		}
	}

	return segments
}

// revisionFromTransitions picks the revision id off the first included
// transition resource, used to deep-link the web URL.
func revisionFromTransitions(included []polaris.Resource) string {
	for _, res := range included {
		if res.Type != "transition" {
			continue
		}

		if revisionID, ok := res.Attributes["revision-id"].(string); ok {
			return revisionID
		}
	}

	return ""
}

// issueWebURL builds the Polaris web UI link for an issue.
func issueWebURL(baseURL, projectID, branchID, issueID, revisionID string, pathSegments []string) string {
	webURL := fmt.Sprintf("%s/projects/%s/branches/%s", strings.TrimSuffix(baseURL, "/"), projectID, branchID)
	if revisionID != "" {
		webURL += "/revisions/" + revisionID
	}

	webURL += fmt.Sprintf("/issues/%s?pagingOffset=0", issueID)

	if len(pathSegments) > 0 {
		quoted := make([]string, 0, len(pathSegments))
		for _, segment := range pathSegments {
			quoted = append(quoted, `"`+segment+`"`)
		}

		webURL += "&path=" + url.QueryEscape("["+strings.Join(quoted, ",")+"]")
	}

	return webURL
}

func renderIssueDetail(detail issueDetail) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	_ = table.Append("Issue", detail.IssueKey)
	_ = table.Append("ID", detail.ID)
	_ = table.Append("Severity", detail.Severity)
	_ = table.Append("Type", detail.IssueType)
	_ = table.Append("Checker", detail.Checker)
	_ = table.Append("Tool", detail.Tool)
	_ = table.Append("Path", detail.Path)
	_ = table.Append("Finding key", detail.FindingKey)
	_ = table.Append("First detected", detail.FirstDetected)
	_ = table.Append("URL", detail.URL)
	_ = table.Render()
}

// printEventsSummary fetches and prints the event trail of the issue's
// latest observed run. Failures here are reported but do not fail the
// command; the issue itself was already shown.
func printEventsSummary(ctx context.Context, client polaris.Client, envelope *polaris.SingleEnvelope) {
	runID, ok := lookupString(envelope.Data.Relationships, "/latest-observed-on-run/data/id")
	if !ok {
		return
	}

	findingKey := stringAttribute(envelope.Data, "finding-key")
	if findingKey == NotAvailable {
		return
	}

	events, err := client.CodeAnalysis().EventsWithSource(ctx, polaris.EventsOptions{
		FindingKey: findingKey,
		RunID:      runID,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "\n(Could not fetch events: %v)\n", err)

		return
	}

	renderEventsSummary(events)
}

func lookupString(tree map[string]any, path string) (string, bool) {
	value, ok := polaris.LookupPath(tree, path)
	if !ok {
		return "", false
	}

	s, ok := value.(string)

	return s, ok
}
