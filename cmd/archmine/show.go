package main

import (
	"encoding/json"
	"os"

	"github.com/archmine/archmine-go/internal/output"
	"github.com/archmine/archmine-go/internal/store"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <decision-id>",
	Short: "Render one decision as an ADR document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()

		decision, err := s.GetDecision(args[0])
		if err != nil {
			return err
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(decision)
		}
		return output.WriteADR(os.Stdout, decision)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "emit the decision as JSON")
}
