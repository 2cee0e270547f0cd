// Package polaris provides types, interfaces, and helpers for working with
// the BlackDuck Polaris static-analysis API.
//
// # Overview
//
// The polaris package defines the JSON:API-flavored domain types (Project,
// Branch, Run, Issue, TriageCurrent), the generic page envelope and
// auto-pagination helper, the included-resource index used to resolve sparse
// relationship references, and the interfaces for resource-oriented clients.
// A concrete implementation is provided by the polarisclient package, which
// wires configuration, transport, and the token exchange. Most consumers
// should import polarisclient to construct a client and then work with the
// interfaces exposed here.
//
// Getting a client
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
//	  cli, err := polarisclient.New(&polaris.Config{
//	    APIEndpoint: "https://company.polaris.blackduck.com",
//	    APIToken:    "...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  projects, err := cli.Projects().ListAll(ctx, "", 25)
//	  if err != nil { log.Fatal(err) }
//	  _ = projects
//	}
//
// # Pagination
//
// Collection endpoints use offset/limit cursors. Each resource client exposes
// a List (one page) and a ListAll (drain to completion) method; ListAll is
// built on the generic FetchAllPages, which merges data and side-loaded
// resources across pages and terminates on a short page or when the reported
// total is reached.
//
// # Included resources
//
// Issues reference severity, issue type, and similar display values by
// relationship id only; the referenced resources travel side-loaded in the
// envelope's Included set. BuildIncludedIndex and ResolveIncluded recover the
// display names, degrading to "-" whenever a reference cannot be resolved.
//
// # Errors
//
// Failures are represented by a closed set of typed errors: TransportError,
// AuthenticationError, APIError (with IsNotFound for the 404 case), and
// DeserializationError. The client performs no automatic retries and no
// silent fallbacks.
package polaris
