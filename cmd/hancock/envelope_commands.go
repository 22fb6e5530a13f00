package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hancock/internal/manifest"
	"hancock/internal/model"
)

const (
	actionSave = "save"
	actionSend = "send"
)

type envelopeView struct {
	ID         string             `json:"id"`
	State      string             `json:"state"`
	Status     string             `json:"status"`
	Email      model.Email        `json:"email"`
	Documents  []*model.Document  `json:"documents"`
	Recipients []*model.Recipient `json:"recipients"`
}

func newSubmitCommand(ctx *commandContext, action string) *cobra.Command {
	short := "Save an envelope as a draft from a manifest file"
	if action == actionSend {
		short = "Send an envelope described by a manifest file to its recipients"
	}
	return &cobra.Command{
		Use:   action + " <manifest>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}

			path := args[0]
			m, err := manifest.Load(path)
			if err != nil {
				return err
			}
			env, err := manifest.Build(m, manifest.Sources{
				BaseDir: filepath.Dir(path),
				Store:   svc.store,
			})
			if err != nil {
				return err
			}

			if action == actionSend {
				err = svc.envelopes.Send(cmd.Context(), env)
			} else {
				err = svc.envelopes.Save(cmd.Context(), env)
			}
			if err != nil {
				return fmt.Errorf("%s envelope: %w", action, err)
			}
			return printEnvelope(cmd, ctx.output, env)
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <envelope-id>",
		Short: "Show an envelope with its documents and recipients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			env, err := svc.envelopes.Find(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("find envelope: %w", err)
			}
			return printEnvelope(cmd, ctx.output, env)
		},
	}
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the configured credentials against the signature service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			if !svc.cfg.DocuSign.Configured() {
				return fmt.Errorf("docusign is not fully configured")
			}
			if err := svc.pinger.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("check: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func printEnvelope(cmd *cobra.Command, mode string, env *model.Envelope) error {
	asJSON, err := wantJSON(cmd, mode)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(cmd, envelopeView{
			ID:         env.ID,
			State:      env.State(),
			Status:     string(env.Status),
			Email:      env.Email,
			Documents:  env.Documents,
			Recipients: env.Recipients,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Envelope %s (%s)\n", env.ID, env.State())
	if env.Email.Subject != "" {
		fmt.Fprintf(out, "Subject: %s\n", env.Email.Subject)
	}
	fmt.Fprintln(out)

	docs := make([][]string, 0, len(env.Documents))
	for _, d := range env.Documents {
		docs = append(docs, []string{strconv.Itoa(d.ID), d.Name, d.Extension})
	}
	fmt.Fprintln(out, renderTable([]string{"ID", "Document", "Extension"}, docs, []columnAlignment{alignRight}))

	recipients := make([][]string, 0, len(env.Recipients))
	for _, r := range env.Recipients {
		order := ""
		if r.RoutingOrder > 0 {
			order = strconv.Itoa(r.RoutingOrder)
		}
		recipients = append(recipients, []string{
			strconv.Itoa(r.ID), r.Name, r.Email, strings.ReplaceAll(string(r.Type), "_", " "), order, r.Status,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Name", "Email", "Type", "Order", "Status"},
		recipients,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	))
	return nil
}
