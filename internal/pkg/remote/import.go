package remote

import (
	"strings"

	"github.com/fatih/color"

	"github.com/osdpack/osdpack/internal/pkg/log"
	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
)

type ImportResult struct {
	Success        bool           `json:"success"`
	SuccessCount   int            `json:"successCount"`
	SuccessResults []ObjectResult `json:"successResults"`
	Errors         []ImportError  `json:"errors"`
}

type ObjectResult struct {
	Type string     `json:"type"`
	Id   string     `json:"id"`
	Meta ObjectMeta `json:"meta"`
}

type ObjectMeta struct {
	Title string `json:"title"`
}

type ImportError struct {
	Type  string      `json:"type"`
	Id    string      `json:"id"`
	Meta  ObjectMeta  `json:"meta"`
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Type string `json:"type"`
}

// Import uploads the NDJSON bundle to the saved objects API.
// Existing objects with the same id are kept unless overwrite is set.
func (a *DashboardsApi) Import(ndjson string, overwrite bool) (*ImportResult, error) {
	request := a.http.R().
		SetHeaders(a.headers()).
		SetMultipartField("file", "export.ndjson", "application/ndjson", strings.NewReader(ndjson)).
		SetResult(&ImportResult{})
	if overwrite {
		request.SetQueryParam("overwrite", "true")
	}

	response, err := request.Post("/api/saved_objects/_import")
	if err != nil {
		return nil, errors.PrefixError(err, "cannot import saved objects")
	}
	if response.IsError() {
		return nil, errors.Errorf("cannot import saved objects: %s %s | returned http code %d", response.Request.Method, response.Request.URL, response.StatusCode())
	}

	result, ok := response.Result().(*ImportResult)
	if !ok || result == nil {
		return nil, errors.New("cannot import saved objects: unexpected response")
	}
	return result, nil
}

// Log writes the per-object import report, successes to the info level,
// failures to the error level.
func (r *ImportResult) Log(logger log.Logger) {
	writer := logger.InfoWriter()
	writer.Writef("%d objects imported successfully.", r.SuccessCount)
	for _, object := range r.SuccessResults {
		writer.Writef("  %s: %s", color.CyanString("%s", object.Type), object.Meta.Title)
	}

	if len(r.Errors) > 0 {
		errWriter := logger.ErrorWriter()
		errWriter.WriteString(color.RedString("ERROR: %d objects failed to import:", len(r.Errors)))
		for _, object := range r.Errors {
			errType := object.Error.Type
			if errType == "" {
				errType = "error"
			}
			errWriter.Writef("  %s with %s: %s", errType, object.Type, object.Meta.Title)
		}
	}
}

// Err returns an error if the batch import as a whole was not successful.
func (r *ImportResult) Err() error {
	if r.Success {
		return nil
	}
	return errors.Errorf("%d objects failed to import", len(r.Errors))
}
