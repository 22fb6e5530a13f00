package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hancock/internal/model"
)

func newCallbacksCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "callbacks",
		Short: "Manage the account's event callbacks",
	}
	cmd.AddCommand(newCallbacksListCommand(ctx))
	cmd.AddCommand(newCallbacksSaveCommand(ctx))
	return cmd
}

func newCallbacksListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured callbacks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			callbacks, err := svc.callbacks.All(cmd.Context())
			if err != nil {
				return fmt.Errorf("list callbacks: %w", err)
			}

			asJSON, err := wantJSON(cmd, ctx.output)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, callbacks)
			}
			if len(callbacks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No callbacks configured")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCallbacks(callbacks))
			return nil
		},
	}
}

func newCallbacksSaveCommand(ctx *commandContext) *cobra.Command {
	var cb model.Callback
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create a callback, or update the one with the same name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.callbacks.Save(cmd.Context(), &cb); err != nil {
				return fmt.Errorf("save callback: %w", err)
			}

			asJSON, err := wantJSON(cmd, ctx.output)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, cb)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCallbacks([]model.Callback{cb}))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cb.Name, "name", "", "Callback name (required)")
	flags.StringVar(&cb.URL, "url", "", "URL events are published to")
	flags.BoolVar(&cb.Active, "active", true, "Publish events to this callback")
	flags.BoolVar(&cb.Logging, "logging", false, "Keep a delivery log on the remote side")
	flags.StringSliceVar(&cb.EnvelopeEvents, "envelope-events", nil, "Envelope events to publish, e.g. Sent,Completed")
	flags.StringSliceVar(&cb.RecipientEvents, "recipient-events", nil, "Recipient events to publish, e.g. Signed,Declined")
	flags.BoolVar(&cb.IncludeDocuments, "include-documents", false, "Attach documents to completed-event payloads")
	flags.BoolVar(&cb.AllUsers, "all-users", true, "Publish events for envelopes of every user on the account")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func renderCallbacks(callbacks []model.Callback) string {
	rows := make([][]string, 0, len(callbacks))
	for _, cb := range callbacks {
		rows = append(rows, []string{
			cb.ID,
			cb.Name,
			cb.URL,
			yesNo(cb.Active),
			strings.Join(cb.EnvelopeEvents, ", "),
			strings.Join(cb.RecipientEvents, ", "),
		})
	}
	return renderTable(
		[]string{"ID", "Name", "URL", "Active", "Envelope events", "Recipient events"},
		rows,
		nil,
	)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
