package client

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/keboola/go-utils/pkg/wildcards"
	"github.com/stretchr/testify/assert"

	"github.com/osdpack/osdpack/internal/pkg/log"
)

func TestNew(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	c := New(context.Background(), logger, false)
	assert.NotNil(t, c)
}

func TestWithHostUrl(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	c := New(context.Background(), logger, false).WithHostUrl("https://dashboards.example.com")
	assert.Equal(t, "https://dashboards.example.com", c.HostUrl())
}

func TestSimpleRequest(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	c := New(context.Background(), logger, false)

	transport := httpmock.NewMockTransport()
	c.GetRestyClient().GetClient().Transport = transport
	transport.RegisterResponder("GET", `=~.+`, httpmock.NewStringResponder(200, `test`))

	res, err := c.R().Get("https://example.com")
	assert.NoError(t, err)
	assert.Equal(t, "test", res.String())
	wildcards.Assert(t, "DEBUG  HTTP\tGET https://example.com | 200 | %s\n", logger.AllMessages())
}

func TestRetry(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	c := New(context.Background(), logger, false)

	// Short retry delay in tests
	c.GetRestyClient().RetryWaitTime = 1 * time.Millisecond
	c.GetRestyClient().RetryMaxWaitTime = 1 * time.Millisecond

	transport := httpmock.NewMockTransport()
	c.GetRestyClient().GetClient().Transport = transport
	transport.RegisterResponder("GET", `=~.+`, httpmock.NewStringResponder(504, `test`))

	res, err := c.R().Get("https://example.com")
	assert.NoError(t, err)
	assert.Equal(t, 504, res.StatusCode())

	expected := `
DEBUG  HTTP-WARN	GET https://example.com | 504 | %s | Retrying 1x ..
DEBUG  HTTP-WARN	GET https://example.com | 504 | %s | Retrying 2x ..
DEBUG  HTTP-WARN	GET https://example.com | 504 | %s | Retrying 3x ..
DEBUG  HTTP-WARN	GET https://example.com | 504 | %s | Retrying 4x ..
DEBUG  HTTP-WARN	GET https://example.com | 504 | %s | Retrying 5x ..
`
	wildcards.Assert(t, strings.TrimLeft(expected, "\n"), logger.AllMessages())
}

func TestVerboseHideSecret(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	c := New(context.Background(), logger, true)

	transport := httpmock.NewMockTransport()
	c.GetRestyClient().GetClient().Transport = transport
	transport.RegisterResponder("GET", `=~.+`, httpmock.NewStringResponder(200, `test`))

	res, err := c.R().SetHeader("Authorization", "Bearer my-secret-token").Get("https://example.com")
	assert.NoError(t, err)
	assert.Equal(t, "test", res.String())

	logs := logger.AllMessages()
	assert.Contains(t, logs, "Bearer *****")
	assert.NotContains(t, logs, "my-secret-token")
}
