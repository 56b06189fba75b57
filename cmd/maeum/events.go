package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/service"
	"github.com/sefazor/maeum-backend/pkg/qrcode"
	"github.com/spf13/cobra"
)

func newEventsCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage your events",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your events",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a := get()
				userID, err := a.currentUserID(cmd.Context())
				if err != nil {
					return err
				}
				events, err := a.events.GetUserEvents(cmd.Context(), userID)
				if err != nil {
					return err
				}
				if len(events) == 0 {
					fmt.Fprintln(a.out, "아직 만든 이벤트가 없습니다")
					return nil
				}
				w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tDATE\tVIEWS\tTITLE\tPATH")
				for _, e := range events {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
						e.ID, e.Type, e.Status, e.Date, e.Views, e.Title, service.PublicPath(&e))
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print an event as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := get()
				event, err := ownedEvent(cmd, a, args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(event)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete an event",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := get()
				userID, err := a.currentUserID(cmd.Context())
				if err != nil {
					return err
				}
				if err := a.events.DeleteOwnedEvent(cmd.Context(), userID, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "삭제되었습니다")
				return nil
			},
		},
	)
	return cmd
}

func newShareCmd(get func() *app) *cobra.Command {
	var (
		qrPath string
		size   int
	)
	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Print share links and optionally save a QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			event, err := ownedEvent(cmd, a, args[0])
			if err != nil {
				return err
			}
			links := a.share.Links(event)
			fmt.Fprintf(a.out, "링크: %s\n수정: %s\n\n%s\n", links.URL, links.EditPath, links.ShareText)
			if event.Status != models.StatusPublished {
				fmt.Fprintln(a.out, "\n(초안 상태입니다. 게시해야 다른 사람이 볼 수 있습니다)")
			}

			if qrPath == "" {
				return nil
			}
			png, filename, err := a.share.QRCode(event, size)
			if err != nil {
				return err
			}
			if qrPath == "-" {
				qrPath = filename
			}
			if err := os.WriteFile(qrPath, png, 0o644); err != nil {
				return fmt.Errorf("write qr code: %w", err)
			}
			fmt.Fprintf(a.out, "QR 코드 저장: %s\n", qrPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&qrPath, "qr", "", "write the QR code PNG to this file (\"-\" for qr-code-{type}.png)")
	cmd.Flags().IntVar(&size, "size", qrcode.DefaultSize, "QR code size in pixels")
	return cmd
}

// ownedEvent loads id for the signed-in user.
func ownedEvent(cmd *cobra.Command, a *app, id string) (*models.Event, error) {
	userID, err := a.currentUserID(cmd.Context())
	if err != nil {
		return nil, err
	}
	event, err := a.events.GetEventByID(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, models.ErrForbidden
	}
	return event, nil
}
