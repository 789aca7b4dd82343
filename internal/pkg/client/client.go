// Package client wraps the resty HTTP client with retries and request logging
// shared by all API calls.
package client

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/osdpack/osdpack/internal/pkg/build"
	"github.com/osdpack/osdpack/internal/pkg/log"
)

const (
	RequestTimeout        = 30 * time.Second
	HttpTimeout           = 30 * time.Second
	IdleConnTimeout       = 30 * time.Second
	TLSHandshakeTimeout   = 10 * time.Second
	ResponseHeaderTimeout = 20 * time.Second
	ExpectContinueTimeout = 2 * time.Second
	KeepAlive             = 20 * time.Second
	MaxIdleConns          = 32
	RetryCount            = 5
	RetryWaitTime         = 100 * time.Millisecond
	RetryWaitTimeMax      = 3 * time.Second
)

type Client struct {
	parentCtx context.Context // context for all requests
	logger    *Logger
	resty     *resty.Client
	retries   map[*resty.Request]uint // retry attempts per request -> for logs
}

func New(ctx context.Context, logger log.Logger, verbose bool) *Client {
	c := &Client{}
	c.parentCtx = ctx
	c.logger = &Logger{logger: logger}
	c.resty = createHttpClient(c.logger)
	c.retries = make(map[*resty.Request]uint)
	setupLogs(c, verbose)
	return c
}

func (c Client) WithHostUrl(hostUrl string) *Client {
	c.resty.SetBaseURL(hostUrl)
	return &c
}

func (c *Client) HostUrl() string {
	return c.resty.BaseURL
}

func (c *Client) R() *resty.Request {
	return c.resty.R().SetContext(c.parentCtx)
}

func (c *Client) GetRestyClient() *resty.Client {
	return c.resty
}

func (c *Client) SetHeader(header, value string) *Client {
	c.resty.SetHeader(header, value)
	return c
}

func createHttpClient(logger *Logger) *resty.Client {
	r := resty.New()
	r.SetLogger(logger)
	r.SetHeader("User-Agent", fmt.Sprintf("osdpack/%s", build.BuildVersion))
	r.SetTimeout(RequestTimeout)
	r.SetTransport(createTransport())
	r.SetRetryCount(RetryCount)
	r.SetRetryWaitTime(RetryWaitTime)
	r.SetRetryMaxWaitTime(RetryWaitTimeMax)
	r.AddRetryCondition(createRetry())
	return r
}

// createRetry - retry on defined network and HTTP errors.
func createRetry() func(response *resty.Response, err error) bool {
	return func(response *resty.Response, err error) bool {
		// On network errors - except hostname not found
		if err != nil && (response == nil || response.StatusCode() == 0) {
			return !strings.Contains(err.Error(), "No address associated with hostname")
		}

		// On HTTP status codes
		switch response.StatusCode() {
		case
			http.StatusRequestTimeout,
			http.StatusConflict,
			http.StatusLocked,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
}

// createTransport with custom timeouts.
func createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   HttpTimeout,
		KeepAlive: KeepAlive,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          MaxIdleConns,
		IdleConnTimeout:       IdleConnTimeout,
		TLSHandshakeTimeout:   TLSHandshakeTimeout,
		ResponseHeaderTimeout: ResponseHeaderTimeout,
		ExpectContinueTimeout: ExpectContinueTimeout,
		MaxIdleConnsPerHost:   MaxIdleConns,
	}
}

func setupLogs(c *Client, verbose bool) {
	// Debug full request and response if verbose = true
	// Secrets are hidden, see Logger
	if verbose {
		c.resty.SetDebug(true)
		c.resty.SetDebugBodyLimit(32 * 1024)
		return
	}

	// Log only a simple message if verbose = false
	c.resty.AddRetryHook(func(response *resty.Response, err error) {
		c.retries[response.Request]++
		attempt := c.retries[response.Request]
		if int(attempt) <= c.resty.RetryCount {
			c.logger.Warnf("%s | Retrying %dx ..", responseToLog(response), attempt)
		}
	})
	c.resty.OnAfterResponse(func(_ *resty.Client, response *resty.Response) error {
		if response.IsSuccess() {
			c.logger.Debugf("%s", responseToLog(response))
			delete(c.retries, response.Request)
		}
		return nil
	})
	c.resty.OnError(func(request *resty.Request, err error) {
		var msg string
		if v, ok := err.(*resty.ResponseError); ok { // nolint: errorlint
			msg = responseToLog(v.Response)
		} else {
			msg = requestToLog(request, err)
		}

		if attempt, retried := c.retries[request]; retried {
			msg = fmt.Sprintf("%s | Retried %dx", msg, attempt)
		}

		c.logger.Errorf("%s", msg)
		delete(c.retries, request)
	})
}

func requestToLog(req *resty.Request, err error) string {
	return fmt.Sprintf("%s %s | %s", req.Method, req.URL, err)
}

func responseToLog(res *resty.Response) string {
	req := res.Request
	return fmt.Sprintf("%s %s | %d | %s", req.Method, req.URL, res.StatusCode(), res.Time())
}
