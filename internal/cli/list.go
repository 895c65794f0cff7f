package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mcm-labs/mcm/internal/notify"
	"github.com/mcm-labs/mcm/internal/registry"
)

// listEntry represents a repository entry for display.
type listEntry struct {
	Index      int    `json:"index"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	Name       string `json:"name,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the repositories of the root composer.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.openRegistry(cmd)
			if err != nil {
				return err
			}
			members, err := r.Members()
			if err != nil {
				return err
			}

			entries := make([]listEntry, 0, len(members))
			for _, m := range members {
				e := listEntry{
					Index:      m.Index,
					Type:       m.Type,
					URL:        m.URL,
					Name:       m.Name,
					Constraint: m.Constraint,
					Status:     string(m.Status),
				}
				if m.Err != nil {
					e.Error = m.Err.Error()
				}
				entries = append(entries, e)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling members: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(entries) == 0 {
				notify.Infof(out, "no members registered in %s", r.ManifestPath())
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tSTATUS\tPACKAGE\tCONSTRAINT\tURL")
			for _, e := range entries {
				name := e.Name
				if name == "" {
					name = "-"
				}
				constraint := e.Constraint
				if constraint == "" {
					constraint = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.Index, e.Status, name, constraint, e.URL)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			for _, e := range entries {
				if e.Status == string(registry.StatusMissing) || e.Status == string(registry.StatusUnreadable) {
					notify.Warningf(cmd.ErrOrStderr(), "repository %d (%s): %s", e.Index, e.URL, e.Error)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
