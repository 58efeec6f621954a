package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/DukeRupert/futureforward/internal/client"
	"github.com/DukeRupert/futureforward/internal/domain"
	"github.com/spf13/cobra"
)

// contact: validate and send one contact message.
func contactCmd(opts *options) *cobra.Command {
	var sub domain.ContactSubmission
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact API",
		Long: "Send a message through the contact API. The message is checked with the " +
			"same rules as the site's form before anything is sent. Pass --message - to read it from stdin.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sub.Message == "-" {
				body, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read message: %w", err)
				}
				sub.Message = strings.TrimSpace(string(body))
			}

			ctx, cancel := commandContext(cmd, opts)
			defer cancel()

			msg, err := opts.api.Submit(ctx, sub)
			status := client.NewStatus(msg, err, time.Now())
			if status.Kind == client.StatusSuccess {
				fmt.Fprintln(cmd.OutOrStdout(), status.Message)
				return nil
			}
			return describe(err)
		},
	}
	cmd.Flags().StringVar(&sub.Name, "name", "", "your full name")
	cmd.Flags().StringVar(&sub.Email, "email", "", "reply address")
	cmd.Flags().StringVar(&sub.Subject, "subject", "", "what the message is about")
	cmd.Flags().StringVarP(&sub.Message, "message", "m", "", "message body, or - for stdin")
	return cmd
}
