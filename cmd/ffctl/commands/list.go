package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/DukeRupert/futureforward/internal/client"
	"github.com/DukeRupert/futureforward/internal/domain"
	"github.com/spf13/cobra"
)

// services: print the service catalog.
func servicesCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List consulting services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, opts)
			defer cancel()

			services, err := opts.api.Services().Wait(ctx)
			if err != nil {
				return describe(err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), services)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSERVICE\tPRICE\tFEATURES")
			for _, s := range services {
				price := s.Price
				if price == "" {
					price = "-"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.Title, price, strings.Join(s.Features, ", "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// industries: print the industries served.
func industriesCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "industries",
		Short: "List industries served",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, opts)
			defer cancel()

			industries, err := opts.api.Industries().Wait(ctx)
			if err != nil {
				return describe(err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), industries)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tINDUSTRY\tSOLUTIONS\tCASE STUDIES")
			for _, i := range industries {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", i.ID, i.Name, len(i.Solutions), len(i.CaseStudies))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// status: fetch both catalogs concurrently and report their sizes.
func statusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the API serves both catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, opts)
			defer cancel()

			if err := opts.api.Prefetch(ctx, client.TagServices, client.TagIndustries); err != nil {
				return describe(err)
			}

			// Both resources are cached now; these snapshots never block.
			services := opts.api.Services().Snapshot()
			industries := opts.api.Industries().Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d services, %d industries\n", len(services.Data), len(industries.Data))
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe turns client errors into the message a user should see.
func describe(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		var b strings.Builder
		b.WriteString("invalid contact details:")
		for _, f := range ve.Order {
			fmt.Fprintf(&b, "\n  %s: %s", f, ve.Fields[f])
		}
		return fmt.Errorf("%s", b.String())
	}
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			return fmt.Errorf("%s (%v)", apiErr.Message, apiErr.Err)
		}
		return fmt.Errorf("%s (HTTP %d)", apiErr.Message, apiErr.Status)
	}
	return err
}
