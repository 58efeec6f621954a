// Package commands implements ffctl, a command line client for the site's
// public API.
package commands

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/DukeRupert/futureforward/internal"
	"github.com/DukeRupert/futureforward/internal/client"
	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:8080/api"

// options are the persistent flags shared by every command.
type options struct {
	baseURL string
	timeout time.Duration
	verbose bool

	api *client.Client
}

// Execute runs ffctl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "ffctl",
		Short:         "Query the Future Forward API and send contact messages",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logOut := io.Discard
			if opts.verbose {
				logOut = cmd.ErrOrStderr()
			}
			logger := internal.NewLogger(logOut, "development", "debug")

			opts.api = client.New(opts.baseURL,
				client.WithHTTPClient(&http.Client{Timeout: opts.timeout}),
				client.WithLogger(logger),
			)
			return nil
		},
	}

	baseURL := os.Getenv("FFCTL_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", baseURL, "API base URL (env FFCTL_BASE_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		servicesCmd(opts),
		industriesCmd(opts),
		statusCmd(opts),
		contactCmd(opts),
	)
	return root
}

// commandContext bounds a command by the request timeout.
func commandContext(cmd *cobra.Command, opts *options) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), opts.timeout)
}
