package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uint32Ptr(v uint32) *uint32 {
	return &v
}

func TestCodeAnalysisClient_EventsWithSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/code-analysis/v0/events-with-source", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "finding-1", query.Get("finding-key"))
		assert.Equal(t, "run-1", query.Get("run-id"))
		assert.Equal(t, "2", query.Get("occurrence-number"))
		assert.Equal(t, "5", query.Get("max-depth"))

		// The events endpoint speaks plain JSON with localized text.
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "en", r.Header.Get("Accept-Language"))

		_, _ = w.Write([]byte(`{
			"data": [{
				"finding-key": "finding-1",
				"main-event-file-path": ["src", "main.c"],
				"main-event-line-number": 42,
				"language": "C",
				"events": [{
					"event-description": "tainted data enters here",
					"event-type": "main",
					"filePath": "src/main.c",
					"line-number": 42,
					"source-before": {"source-code": "int x = read();", "start-line": 40}
				}]
			}]
		}`))
	}))
	defer server.Close()

	codeAnalysis := NewCodeAnalysisClient(newTestHTTPClient(server.URL))

	events, err := codeAnalysis.EventsWithSource(context.Background(), polaris.EventsOptions{
		FindingKey:       "finding-1",
		RunID:            "run-1",
		OccurrenceNumber: uint32Ptr(2),
		MaxDepth:         uint32Ptr(5),
	})
	require.NoError(t, err)
	require.Len(t, events.Data, 1)

	tree := events.Data[0]
	assert.Equal(t, "finding-1", tree.FindingKey)
	assert.Equal(t, []string{"src", "main.c"}, tree.MainEventFilePath)
	require.NotNil(t, tree.MainEventLineNumber)
	assert.Equal(t, uint64(42), *tree.MainEventLineNumber)
	require.Len(t, tree.Events, 1)
	assert.Equal(t, "main", tree.Events[0].EventType)
	require.NotNil(t, tree.Events[0].SourceBefore)
	assert.Equal(t, "int x = read();", tree.Events[0].SourceBefore.SourceCode)
}

func TestCodeAnalysisClient_EventsWithSource_OptionalParamsOmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.False(t, query.Has("occurrence-number"))
		assert.False(t, query.Has("max-depth"))

		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	codeAnalysis := NewCodeAnalysisClient(newTestHTTPClient(server.URL))

	events, err := codeAnalysis.EventsWithSource(context.Background(), polaris.EventsOptions{
		FindingKey: "finding-1",
		RunID:      "run-1",
	})
	require.NoError(t, err)
	assert.Empty(t, events.Data)
}

func TestCodeAnalysisClient_SourceCode(t *testing.T) {
	source := "#include <stdio.h>\nint main(void) { return 0; }\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/code-analysis/v0/source-code", r.URL.Path)
		assert.Equal(t, "run-1", r.URL.Query().Get("run-id"))
		assert.Equal(t, "src/main.c", r.URL.Query().Get("path"))
		assert.Equal(t, "text/plain", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(source))
	}))
	defer server.Close()

	codeAnalysis := NewCodeAnalysisClient(newTestHTTPClient(server.URL))

	got, err := codeAnalysis.SourceCode(context.Background(), "run-1", "src/main.c")
	require.NoError(t, err)
	assert.Equal(t, source, got)
}

func TestCodeAnalysisClient_SourceCode_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such file"))
	}))
	defer server.Close()

	codeAnalysis := NewCodeAnalysisClient(newTestHTTPClient(server.URL))

	_, err := codeAnalysis.SourceCode(context.Background(), "run-1", "missing.c")
	require.Error(t, err)

	apiErr := &polaris.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
