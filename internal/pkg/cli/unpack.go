package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/osdpack/osdpack/internal/pkg/remote"
	"github.com/osdpack/osdpack/internal/pkg/unpack"
	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
)

const unpackShortDescription = `Unpack an export bundle into individual JSON files`
const unpackLongDescription = `Command "unpack"

Unpack an OpenSearch Dashboards saved objects export
into individual JSON files in the working directory.

The bundle is read from a local NDJSON file ("--file")
or exported directly from a running instance ("--url").

Values embedded as JSON strings, for example dashboard panels,
are extracted to "<id>_<field path>.json" side files
and replaced by {"$ref": "<file name>"} in the parent document.
`

func unpackCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack",
		Short: unpackShortDescription,
		Long:  unpackLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := root.options.GetString("file")
			url := root.options.GetString("url")

			o := unpack.DefaultOptions()
			o.PrettyPrint = !root.options.GetBool("no-format")
			o.WithReferences = !root.options.GetBool("no-ref")

			switch {
			case file != "" && url != "":
				return errors.New("--file and --url are mutually exclusive")
			case file != "":
				reader, err := root.fs.Open(file)
				if err != nil {
					return err
				}
				defer reader.Close()
				_, err = unpack.Run(reader, o, root)
				return err
			case url != "":
				api := remote.NewDashboardsApi(url, root.ctx, root.logger, root.options.GetBool("verbose-api"))
				if bearer := root.options.GetString("bearer"); bearer != "" {
					api = api.WithBearer(bearer)
				}
				if tenant := root.options.GetString("tenant"); tenant != "" {
					api = api.WithTenant(tenant)
				}

				stream, err := api.Export(remote.ExportFilter{
					Types:                 strings.Split(root.options.GetString("types"), ","),
					IncludeReferencesDeep: !root.options.GetBool("no-references"),
				})
				if err != nil {
					return err
				}
				defer stream.Close()
				_, err = unpack.Run(stream, o, root)
				return err
			default:
				return errors.New("one of --file or --url must be specified")
			}
		},
	}

	// Flags
	cmd.Flags().SortFlags = true
	cmd.Flags().Bool("no-format", false, "do not pretty-print the JSON files")
	cmd.Flags().Bool("no-ref", false, "do not replace extracted values with references")
	cmd.Flags().StringP("file", "f", "", "path to the NDJSON file to unpack")
	cmd.Flags().String("url", "", "base URL of the instance to export saved objects from, eg. http://localhost:5601")
	cmd.Flags().String("bearer", "", "bearer token for the authorization, can also be set by OPENSEARCH_BEARER")
	cmd.Flags().String("types", "dashboard,query", "comma-separated list of saved object types to export")
	cmd.Flags().Bool("no-references", false, "do not include referenced objects in the export")
	cmd.Flags().String("tenant", "", "security tenant to export from, default is the global tenant")
	return cmd
}
