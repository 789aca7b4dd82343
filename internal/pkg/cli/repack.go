package cli

import (
	"github.com/spf13/cobra"

	"github.com/osdpack/osdpack/internal/pkg/filesystem"
	"github.com/osdpack/osdpack/internal/pkg/remote"
	"github.com/osdpack/osdpack/internal/pkg/repack"
	"github.com/osdpack/osdpack/internal/pkg/utils/errors"
)

const repackShortDescription = `Repack unpacked JSON files into an export bundle`
const repackLongDescription = `Command "repack"

Repack JSON files produced by the "unpack" command
back into an OpenSearch Dashboards saved objects export.

Side files are merged into their parent documents,
a directory argument stands for all "*.json" files in it.

The NDJSON bundle is written to a file ("--output"),
imported into a running instance ("--url"),
or printed to the standard output.
`

func repackCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repack <json-file-or-directory>...",
		Short: repackShortDescription,
		Long:  repackLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := root.options.GetString("output")
			url := root.options.GetString("url")
			if output != "" && url != "" {
				return errors.New("--output and --url are mutually exclusive")
			}

			result, err := repack.Run(repack.Options{Paths: args}, root)
			if err != nil {
				return err
			}

			switch {
			case output != "":
				if err := root.fs.WriteFile(filesystem.NewFile(output, result.NDJSON)); err != nil {
					return err
				}
				root.logger.Debugf(`Written %d documents to "%s"`, result.Documents, output)
				return nil
			case url != "":
				api := remote.NewDashboardsApi(url, root.ctx, root.logger, root.options.GetBool("verbose-api"))
				if bearer := root.options.GetString("bearer"); bearer != "" {
					api = api.WithBearer(bearer)
				}
				if tenant := root.options.GetString("tenant"); tenant != "" {
					api = api.WithTenant(tenant)
				}

				importResult, err := api.Import(result.NDJSON, root.options.GetBool("overwrite"))
				if err != nil {
					return err
				}
				importResult.Log(root.logger)
				return importResult.Err()
			default:
				// The bundle goes to the original stdout, the logger would prefix each line
				_, err := root.stdout.Write([]byte(result.NDJSON))
				return err
			}
		},
	}

	// Flags
	cmd.Flags().SortFlags = true
	cmd.Flags().StringP("output", "o", "", "write the NDJSON bundle to the file")
	cmd.Flags().String("url", "", "base URL of the instance to import saved objects into, eg. http://localhost:5601")
	cmd.Flags().String("bearer", "", "bearer token for the authorization, can also be set by OPENSEARCH_BEARER")
	cmd.Flags().String("tenant", "", "security tenant to import into, default is the global tenant")
	cmd.Flags().Bool("overwrite", false, "overwrite existing saved objects with the same ID")
	return cmd
}
