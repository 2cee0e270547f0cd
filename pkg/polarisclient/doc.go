// Package polarisclient provides the primary entry point for constructing a
// BlackDuck Polaris API client that implements the polaris.Client interface.
//
// It layers configuration, HTTP transport, and the API-token-to-JWT exchange
// on top of the resource interfaces and types defined in the polaris package.
// Most applications should import polarisclient to build a client, then use
// the returned polaris.Client to access resource-specific clients, for
// example Projects(), Issues(), Triage(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/polaris/pkg/polaris"
//	  "github.com/fivetwenty-io/polaris/pkg/polarisclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := polarisclient.New(&polaris.Config{
//	    APIEndpoint: "https://company.polaris.blackduck.com",
//	    APIToken:    "...", // long-lived token from the Polaris UI
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  issues, err := cli.Issues().ListAll(ctx, polaris.IssueListOptions{
//	    ProjectID: "project-uuid",
//	    BranchID:  "branch-uuid",
//	  }, 25)
//	  if err != nil { log.Fatal(err) }
//	  _ = issues
//	}
//
// The API token is exchanged lazily for a short-lived JWT on the first
// request and the JWT is cached for the client's lifetime. Use
// cli.Authenticate(ctx) to force a fresh exchange, for example to verify
// credentials at login time.
package polarisclient
