package main

import (
	"fmt"
	"os"

	"github.com/archmine/archmine-go/internal/models"
	"github.com/archmine/archmine-go/internal/output"
	"github.com/archmine/archmine-go/internal/store"
	"github.com/spf13/cobra"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored decisions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var status models.DecisionStatus
		if listStatus != "" {
			status = models.DecisionStatus(listStatus)
			switch status {
			case models.StatusDraft, models.StatusConfirmed, models.StatusRejected, models.StatusSuperseded:
			default:
				return fmt.Errorf("unknown status %q", listStatus)
			}
		}

		s, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()

		decisions, err := s.ListDecisions(status)
		if err != nil {
			return err
		}

		output.WriteList(os.Stdout, decisions)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (draft, confirmed, rejected, superseded)")
}
