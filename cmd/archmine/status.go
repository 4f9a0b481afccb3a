package main

import (
	"fmt"

	"github.com/archmine/archmine-go/internal/models"
	"github.com/archmine/archmine-go/internal/store"
	"github.com/spf13/cobra"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <decision-id>",
	Short: "Mark a draft decision as confirmed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(args[0], models.StatusConfirmed)
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <decision-id>",
	Short: "Mark a draft decision as rejected",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(args[0], models.StatusRejected)
	},
}

var supersedeCmd = &cobra.Command{
	Use:   "supersede <decision-id>",
	Short: "Mark a draft decision as superseded",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(args[0], models.StatusSuperseded)
	},
}

func setStatus(id string, status models.DecisionStatus) error {
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.UpdateStatus(id, status); err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", id, status)
	return nil
}
