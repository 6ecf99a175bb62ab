package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/cmd/quillctl/cmdutil"
	"github.com/quillhq/quill/internal/cli/output"
	"github.com/quillhq/quill/pkg/apiclient"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Long: `Check the health of the quill server.

Reports both liveness (the process is serving) and readiness (storage is
assembled and articles can be served).

Examples:
  # Check server health
  quillctl health

  # Check a remote server
  quillctl health --server http://quill.example.com:8080`,
	RunE: runHealth,
}

// healthReport combines the liveness and readiness probe results.
type healthReport struct {
	Live   string `json:"live"`
	Ready  string `json:"ready"`
	Detail string `json:"detail,omitempty"`
}

// Headers implements TableRenderer.
func (h healthReport) Headers() []string {
	return []string{"LIVE", "READY", "DETAIL"}
}

// Rows implements TableRenderer.
func (h healthReport) Rows() [][]string {
	return [][]string{{h.Live, h.Ready, cmdutil.EmptyOr(h.Detail, "-")}}
}

func runHealth(cmd *cobra.Command, args []string) error {
	client := cmdutil.GetClient()

	report := healthReport{Live: "no", Ready: "no"}

	if _, err := client.Health(cmd.Context()); err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	report.Live = "yes"

	if _, err := client.Ready(cmd.Context()); err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.IsUnavailable() {
			report.Detail = apiErr.Detail
		} else {
			return fmt.Errorf("readiness check failed: %w", err)
		}
	} else {
		report.Ready = "yes"
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, report)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, report)
	default:
		return output.PrintTable(os.Stdout, report)
	}
}
