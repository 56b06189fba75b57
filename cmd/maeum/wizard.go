package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/service"
	"github.com/sefazor/maeum-backend/internal/wizard"
	"github.com/spf13/cobra"
)

// back is typed at any prompt to return to the previous step.
const back = "<"

var errAborted = errors.New("저장하지 않고 종료했습니다")

func newNewCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an event with the step-by-step form",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "wedding",
			Short: "New wedding invitation",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a := get()
				return runWizard(cmd.Context(), a, wizard.NewWedding(a.events))
			},
		},
		&cobra.Command{
			Use:   "funeral",
			Short: "New funeral notice",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a := get()
				return runWizard(cmd.Context(), a, wizard.NewFuneral(a.events))
			},
		},
	)
	return cmd
}

func newEditCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an event with the step-by-step form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			event, err := ownedEvent(cmd, a, args[0])
			if err != nil {
				return err
			}
			switch event.Type {
			case models.EventTypeWedding:
				w := wizard.NewWedding(a.events)
				if err := w.Load(event); err != nil {
					return err
				}
				return runWizard(cmd.Context(), a, w)
			case models.EventTypeFuneral:
				w := wizard.NewFuneral(a.events)
				if err := w.Load(event); err != nil {
					return err
				}
				return runWizard(cmd.Context(), a, w)
			}
			return models.ValidationError("unknown event type %q", event.Type)
		},
	}
}

// runWizard walks the steps on the terminal. An empty answer keeps the
// current value; "<" goes back one step.
func runWizard[D models.EventData](ctx context.Context, a *app, w *wizard.Wizard[D]) error {
	if _, err := a.currentUserID(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "빈 칸으로 두면 현재 값을 유지합니다. %q 를 입력하면 이전 단계로 돌아갑니다.\n", back)

	for {
		step := w.Current()
		fmt.Fprintf(a.out, "\n[%d/%d] %s\n", w.Step(), len(w.Steps()), step.Title)

		wentBack, err := fillStep(a, w, step)
		if err != nil {
			return err
		}
		if wentBack {
			continue
		}

		if !w.IsLast() {
			_ = w.Next()
			continue
		}

		answer, err := a.prompt("저장하고 게시할까요? (y/n) ")
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case back:
			_ = w.Prev()
			continue
		case "n", "no":
			return errAborted
		}
		event, err := w.Save(ctx, a.session)
		if err != nil {
			// Stay on the last step so nothing typed is lost.
			fmt.Fprintf(a.out, "저장 실패: %v\n", err)
			continue
		}
		fmt.Fprintf(a.out, "\n게시되었습니다: %s\nID: %s\n", service.PublicURL(a.share.BaseURL(), event), event.ID)
		return nil
	}
}

// fillStep prompts every field of step and reports whether the user asked
// to go back.
func fillStep[D models.EventData](a *app, w *wizard.Wizard[D], step wizard.Step[D]) (bool, error) {
	for _, field := range step.Fields {
		for {
			label := field.Label
			if current := field.Get(w.Draft()); current != "" {
				label += " [" + current + "]"
			}
			answer, err := a.prompt(label + ": ")
			if err != nil {
				return false, err
			}
			if answer == back {
				if err := w.Prev(); errors.Is(err, wizard.ErrFirstStep) {
					fmt.Fprintln(a.out, "첫 단계입니다")
					continue
				}
				return true, nil
			}
			if answer == "" {
				break
			}
			if err := field.Set(w.Draft(), answer); err != nil {
				fmt.Fprintf(a.out, "  %v\n", err)
				continue
			}
			break
		}
	}
	return false, nil
}
