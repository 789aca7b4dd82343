package remote

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osdpack/osdpack/internal/pkg/log"
)

func mockedApi(t *testing.T) (*DashboardsApi, *httpmock.MockTransport, log.DebugLogger) {
	t.Helper()
	logger := log.NewDebugLogger()
	api := NewDashboardsApi("https://dash.example.com", context.Background(), logger, false)

	resty := api.HttpClient().GetRestyClient()
	resty.RetryWaitTime = 1 * time.Millisecond
	resty.RetryMaxWaitTime = 1 * time.Millisecond

	transport := httpmock.NewMockTransport()
	resty.GetClient().Transport = transport
	return api, transport, logger
}

func TestExport(t *testing.T) {
	t.Parallel()
	api, transport, _ := mockedApi(t)
	api = api.WithBearer("secret123").WithTenant("ops")

	transport.RegisterResponder("POST", "https://dash.example.com/api/saved_objects/_export", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "true", req.Header.Get("osd-xsrf"))
		assert.Equal(t, "Bearer secret123", req.Header.Get("Authorization"))
		assert.Equal(t, "ops", req.Header.Get("securitytenant"))
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		body, err := io.ReadAll(req.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"type":["dashboard","query"],"includeReferencesDeep":true,"excludeExportDetails":true}`, string(body))

		return httpmock.NewStringResponse(200, "{\"id\":\"a\"}\n{\"id\":\"b\"}"), nil
	})

	reader, err := api.Export(ExportFilter{Types: []string{"dashboard", "query"}, IncludeReferencesDeep: true})
	require.NoError(t, err)
	defer reader.Close()

	bundle, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":\"a\"}\n{\"id\":\"b\"}", string(bundle))
}

func TestExportNoAuth(t *testing.T) {
	t.Parallel()
	api, transport, _ := mockedApi(t)

	transport.RegisterResponder("POST", "https://dash.example.com/api/saved_objects/_export", func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Empty(t, req.Header.Get("securitytenant"))
		return httpmock.NewStringResponse(200, "{}"), nil
	})

	reader, err := api.Export(ExportFilter{Types: []string{"dashboard"}})
	require.NoError(t, err)
	assert.NoError(t, reader.Close())
}

func TestExportInvalidFilter(t *testing.T) {
	t.Parallel()
	api, _, _ := mockedApi(t)

	_, err := api.Export(ExportFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid export filter")
}

func TestExportHttpError(t *testing.T) {
	t.Parallel()
	api, transport, _ := mockedApi(t)
	transport.RegisterResponder("POST", `=~.+`, httpmock.NewStringResponder(401, `Unauthorized`))

	_, err := api.Export(ExportFilter{Types: []string{"dashboard"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot export saved objects")
	assert.Contains(t, err.Error(), "returned http code 401")
}

func TestImport(t *testing.T) {
	t.Parallel()
	api, transport, _ := mockedApi(t)
	ndjson := "{\"id\":\"a\"}\n{\"id\":\"b\"}"

	transport.RegisterResponder("POST", "https://dash.example.com/api/saved_objects/_import", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "true", req.Header.Get("osd-xsrf"))
		assert.Equal(t, "true", req.URL.Query().Get("overwrite"))

		reader, err := req.MultipartReader()
		require.NoError(t, err)
		part, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "file", part.FormName())
		assert.Equal(t, "export.ndjson", part.FileName())
		assert.Equal(t, "application/ndjson", part.Header.Get("Content-Type"))
		content, err := io.ReadAll(part)
		assert.NoError(t, err)
		assert.Equal(t, ndjson, string(content))

		return httpmock.NewJsonResponse(200, map[string]interface{}{
			"success":      true,
			"successCount": 2,
			"successResults": []interface{}{
				map[string]interface{}{"type": "dashboard", "id": "a", "meta": map[string]interface{}{"title": "My Dashboard"}},
				map[string]interface{}{"type": "query", "id": "b", "meta": map[string]interface{}{"title": "My Query"}},
			},
		})
	})

	result, err := api.Import(ndjson, true)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.SuccessCount)
	assert.NoError(t, result.Err())

	reportLogger := log.NewDebugLogger()
	result.Log(reportLogger)
	expected := "INFO  2 objects imported successfully.\n" +
		"INFO    " + color.CyanString("dashboard") + ": My Dashboard\n" +
		"INFO    " + color.CyanString("query") + ": My Query\n"
	assert.Equal(t, expected, reportLogger.AllMessages())
}

func TestImportErrors(t *testing.T) {
	t.Parallel()
	api, transport, _ := mockedApi(t)

	transport.RegisterResponder("POST", "https://dash.example.com/api/saved_objects/_import", func(req *http.Request) (*http.Response, error) {
		// Objects are kept unless overwrite is requested
		assert.Empty(t, req.URL.Query().Get("overwrite"))
		return httpmock.NewJsonResponse(200, map[string]interface{}{
			"success":      false,
			"successCount": 0,
			"errors": []interface{}{
				map[string]interface{}{"type": "query", "id": "q1", "meta": map[string]interface{}{"title": "Old Query"}, "error": map[string]interface{}{"type": "conflict"}},
				map[string]interface{}{"type": "dashboard", "id": "d1", "meta": map[string]interface{}{"title": "Old Dashboard"}},
			},
		})
	})

	result, err := api.Import("{}", false)
	require.NoError(t, err)
	assert.False(t, result.Success)

	batchErr := result.Err()
	require.Error(t, batchErr)
	assert.Equal(t, "2 objects failed to import", batchErr.Error())

	reportLogger := log.NewDebugLogger()
	result.Log(reportLogger)
	expected := "INFO  0 objects imported successfully.\n" +
		"ERROR  " + color.RedString("ERROR: 2 objects failed to import:") + "\n" +
		"ERROR    conflict with query: Old Query\n" +
		"ERROR    error with dashboard: Old Dashboard\n"
	assert.Equal(t, expected, reportLogger.AllMessages())
}

func TestImportHttpError(t *testing.T) {
	t.Parallel()
	api, transport, _ := mockedApi(t)
	transport.RegisterResponder("POST", `=~.+`, httpmock.NewStringResponder(413, `too large`))

	_, err := api.Import("{}", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot import saved objects")
	assert.Contains(t, err.Error(), "returned http code 413")
}
