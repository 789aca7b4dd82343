// Package remote implements calls to the OpenSearch Dashboards saved objects API.
package remote

import (
	"context"

	"github.com/osdpack/osdpack/internal/pkg/client"
	"github.com/osdpack/osdpack/internal/pkg/log"
)

type DashboardsApi struct {
	http    *client.Client
	hostUrl string
	bearer  string
	tenant  string
}

func NewDashboardsApi(hostUrl string, ctx context.Context, logger log.Logger, verbose bool) *DashboardsApi {
	http := client.New(ctx, logger, verbose).WithHostUrl(hostUrl)
	return &DashboardsApi{http: http, hostUrl: hostUrl}
}

// WithBearer returns a copy of the API authenticated by the token.
func (a DashboardsApi) WithBearer(token string) *DashboardsApi {
	a.bearer = token
	return &a
}

// WithTenant returns a copy of the API scoped to the security tenant.
func (a DashboardsApi) WithTenant(tenant string) *DashboardsApi {
	a.tenant = tenant
	return &a
}

func (a *DashboardsApi) HostUrl() string {
	return a.hostUrl
}

func (a *DashboardsApi) HttpClient() *client.Client {
	return a.http
}

// headers required by the saved objects API, the xsrf header is mandatory
// for all write operations.
func (a *DashboardsApi) headers() map[string]string {
	headers := map[string]string{"osd-xsrf": "true"}
	if a.bearer != "" {
		headers["Authorization"] = "Bearer " + a.bearer
	}
	if a.tenant != "" {
		headers["securitytenant"] = a.tenant
	}
	return headers
}
