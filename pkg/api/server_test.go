package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modscope/modscope/pkg/observability"
	"github.com/modscope/modscope/pkg/storage"
)

func writeDescriptor(t *testing.T, root, module, content string) {
	t.Helper()
	dir := filepath.Join(root, module)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle"), []byte(content), 0644))
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "build.gradle"), []byte("// root"), 0644))
	writeDescriptor(t, root, "admin", "dependencies {\n    compile project(':common')\n    compile project(':service')\n}\n")
	writeDescriptor(t, root, "service", "dependencies {\n    compile project(':common')\n}\n")
	writeDescriptor(t, root, "common", "dependencies {\n}\n")

	store, err := storage.NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)

	logger := observability.NewLoggerWithOutput("error", os.Stderr)
	s, err := NewServer(Options{ProjectRoot: root}, store, nil, logger)
	require.NoError(t, err)
	return s
}

func TestSnapshotOnRescan(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "build.gradle"), []byte("// root"), 0644))
	writeDescriptor(t, root, "admin", "dependencies {\n    compile project(':common')\n}\n")
	writeDescriptor(t, root, "common", "dependencies {\n}\n")

	store, err := storage.NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)

	logger := observability.NewLoggerWithOutput("error", os.Stderr)
	s, err := NewServer(Options{ProjectRoot: root, SnapshotOnRescan: true}, store, nil, logger)
	require.NoError(t, err)

	require.NoError(t, s.Rescan(context.Background(), "startup"))

	infos, err := store.ListSnapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 2, infos[0].ModuleCount)
}

func doJSON(t *testing.T, s *Server, method, path string, want int) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestReadinessBeforeScan(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, s.Rescan(context.Background(), "startup"))

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListModules(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.Rescan(context.Background(), "startup"))

	body := doJSON(t, s, http.MethodGet, "/api/v1/modules", http.StatusOK)
	assert.Equal(t, float64(3), body["count"])

	modules := body["modules"].([]interface{})
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, m.(map[string]interface{})["name"].(string))
	}
	assert.Equal(t, []string{"admin", "common", "service"}, names)
}

func TestGetDependencies(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.Rescan(context.Background(), "startup"))

	body := doJSON(t, s, http.MethodGet, "/api/v1/modules/admin/dependencies", http.StatusOK)
	assert.Equal(t, "admin", body["module"])

	deps := body["dependencies"].([]interface{})
	statuses := map[string]string{}
	for _, d := range deps {
		entry := d.(map[string]interface{})
		statuses[entry["name"].(string)] = entry["status"].(string)
	}
	assert.Equal(t, "root", statuses["admin"])
	assert.Equal(t, "direct", statuses["common"])
	assert.Equal(t, "direct", statuses["service"])

	doJSON(t, s, http.MethodGet, "/api/v1/modules/nope/dependencies", http.StatusNotFound)
}

func TestGetPaths(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.Rescan(context.Background(), "startup"))

	body := doJSON(t, s, http.MethodGet, "/api/v1/modules/admin/paths/common", http.StatusOK)
	assert.Equal(t, "common", body["name"])
	assert.Equal(t, "direct", body["status"])

	paths := body["paths"].([]interface{})
	assert.Len(t, paths, 2) // [common] and [service, common]

	doJSON(t, s, http.MethodGet, "/api/v1/modules/admin/paths/zlib", http.StatusNotFound)
}

func TestGetGraph(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.Rescan(context.Background(), "startup"))

	body := doJSON(t, s, http.MethodGet, "/api/v1/modules/admin/graph", http.StatusOK)
	nodes := body["nodes"].([]interface{})
	assert.Len(t, nodes, 3)

	doJSON(t, s, http.MethodGet, "/api/v1/modules/zlib/graph", http.StatusNotFound)
}

func TestGetReport(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.Rescan(context.Background(), "startup"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/mindmap", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "@startmindmap"))

	// Second request should come from cache and render identically.
	rec2 := httptest.NewRecorder()
	s.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/api/v1/reports/mindmap", nil))
	assert.Equal(t, rec.Body.String(), rec2.Body.String())

	doJSON(t, s, http.MethodGet, "/api/v1/reports/bogus", http.StatusBadRequest)
	doJSON(t, s, http.MethodGet, "/api/v1/reports/paths", http.StatusBadRequest)

	rec3 := httptest.NewRecorder()
	s.ServeHTTP(rec3, httptest.NewRequest(http.MethodGet, "/api/v1/reports/paths?root=admin&target=common", nil))
	require.Equal(t, http.StatusOK, rec3.Code)
	assert.Contains(t, rec3.Body.String(), "-- common")
}

func TestSnapshotLifecycle(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.Rescan(context.Background(), "startup"))

	created := doJSON(t, s, http.MethodPost, "/api/v1/snapshots", http.StatusCreated)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	listed := doJSON(t, s, http.MethodGet, "/api/v1/snapshots", http.StatusOK)
	assert.Equal(t, float64(1), listed["count"])

	// Identical state diffs clean against the stored snapshot.
	diff := doJSON(t, s, http.MethodGet, "/api/v1/snapshots/diff?old="+id, http.StatusOK)
	assert.Nil(t, diff["added_modules"])
	assert.Nil(t, diff["removed_modules"])

	doJSON(t, s, http.MethodGet, "/api/v1/snapshots/diff?old=missing", http.StatusNotFound)
	doJSON(t, s, http.MethodGet, "/api/v1/snapshots/diff", http.StatusBadRequest)
}

func TestDiffAgainstChangedTree(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.Rescan(context.Background(), "startup"))

	created := doJSON(t, s, http.MethodPost, "/api/v1/snapshots", http.StatusCreated)
	id := created["id"].(string)

	// Grow the tree and rescan.
	writeDescriptor(t, s.opts.ProjectRoot, "reports", "dependencies {\n    compile project(':common')\n}\n")
	require.NoError(t, s.Rescan(context.Background(), "test"))

	diff := doJSON(t, s, http.MethodGet, "/api/v1/snapshots/diff?old="+id, http.StatusOK)
	added := diff["added_modules"].([]interface{})
	require.Len(t, added, 1)
	assert.Equal(t, "reports", added[0])
}

func TestTriggerRescan(t *testing.T) {
	s := newTestServer(t)

	body := doJSON(t, s, http.MethodPost, "/api/v1/rescan", http.StatusOK)
	assert.Equal(t, "rescanned", body["status"])

	// The rescan populated state, so reads work now.
	doJSON(t, s, http.MethodGet, "/api/v1/modules", http.StatusOK)
}

func TestEndpointsBeforeScan(t *testing.T) {
	s := newTestServer(t)

	doJSON(t, s, http.MethodGet, "/api/v1/modules", http.StatusServiceUnavailable)
	doJSON(t, s, http.MethodGet, "/api/v1/modules/admin/dependencies", http.StatusServiceUnavailable)
	doJSON(t, s, http.MethodGet, "/api/v1/reports/table", http.StatusServiceUnavailable)
	doJSON(t, s, http.MethodPost, "/api/v1/snapshots", http.StatusServiceUnavailable)
}
