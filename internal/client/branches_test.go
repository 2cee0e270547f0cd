package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool {
	return &v
}

func TestBranchesClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/common/v0/branches", r.URL.Path)
		assert.Equal(t, "p1", r.URL.Query().Get("filter[branch][project][id][$eq]"))
		assert.Equal(t, "25", r.URL.Query().Get("page[limit]"))

		response := polaris.PageEnvelope[polaris.Branch]{
			Data: []polaris.Branch{
				{Type: "branch", ID: "b1", Attributes: polaris.BranchAttributes{Name: "main", MainForProject: boolPtr(true)}},
				{Type: "branch", ID: "b2", Attributes: polaris.BranchAttributes{Name: "develop"}},
			},
		}

		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	branches := NewBranchesClient(newTestHTTPClient(server.URL))

	page, err := branches.List(context.Background(), "p1", 25, 0)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "main", page.Data[0].Attributes.Name)
}

func TestBranchesClient_Main(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := polaris.PageEnvelope[polaris.Branch]{
			Data: []polaris.Branch{
				{Type: "branch", ID: "b1", Attributes: polaris.BranchAttributes{Name: "develop", MainForProject: boolPtr(false)}},
				{Type: "branch", ID: "b2", Attributes: polaris.BranchAttributes{Name: "main", MainForProject: boolPtr(true)}},
			},
		}

		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	branches := NewBranchesClient(newTestHTTPClient(server.URL))

	branch, err := branches.Main(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "b2", branch.ID)
	assert.Equal(t, "main", branch.Attributes.Name)
}

func TestBranchesClient_Main_NoneMarked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := polaris.PageEnvelope[polaris.Branch]{
			Data: []polaris.Branch{
				// The flag can be false or absent entirely; neither counts.
				{Type: "branch", ID: "b1", Attributes: polaris.BranchAttributes{Name: "develop", MainForProject: boolPtr(false)}},
				{Type: "branch", ID: "b2", Attributes: polaris.BranchAttributes{Name: "feature"}},
			},
		}

		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	branches := NewBranchesClient(newTestHTTPClient(server.URL))

	_, err := branches.Main(context.Background(), "p1")
	require.ErrorIs(t, err, polaris.ErrNoMainBranch)
}
