package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a script of bindings and triggers",
		Long: `Register the bindings of a YAML script on a fresh dispatcher, then fire its
triggers in order. For each trigger the result (or error) is printed together
with a diff of the parameter bag before and after the handlers ran.
Use "-" to read the script from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			script, err := LoadScript(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			d := a.newDispatcher()
			if err := script.Run(d, out); err != nil {
				return err
			}
			if showMetrics {
				fmt.Fprintln(out, "== metrics")
				return printMetrics(out, d.Stats())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false,
		"print dispatcher counters in Prometheus text format after the run")
	return cmd
}
