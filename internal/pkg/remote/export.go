package remote

import (
	"io"

	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
	"github.com/osdpack/osdpack/internal/pkg/validator"
)

type ExportFilter struct {
	Types                 []string `json:"types" validate:"required,min=1,dive,required"`
	IncludeReferencesDeep bool     `json:"includeReferencesDeep"`
}

// Export downloads saved objects of the given types as an NDJSON bundle.
// The export details summary is excluded, the bundle contains documents only.
// The caller must close the returned stream.
func (a *DashboardsApi) Export(filter ExportFilter) (io.ReadCloser, error) {
	if err := validator.Validate(filter); err != nil {
		return nil, errors.PrefixError(err, "invalid export filter")
	}

	response, err := a.http.R().
		SetHeaders(a.headers()).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"type":                  filter.Types,
			"includeReferencesDeep": filter.IncludeReferencesDeep,
			"excludeExportDetails":  true,
		}).
		SetDoNotParseResponse(true).
		Post("/api/saved_objects/_export")
	if err != nil {
		return nil, errors.PrefixError(err, "cannot export saved objects")
	}
	if response.IsError() {
		_ = response.RawBody().Close()
		return nil, errors.Errorf("cannot export saved objects: %s %s | returned http code %d", response.Request.Method, response.Request.URL, response.StatusCode())
	}
	return response.RawBody(), nil
}
