package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryferguson/cornwand/internal/errors"
)

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [CODE]",
		Short: "Describe an error code",
		Long: `Describe the error with the given code, or list every code.

Examples:
  wand explain
  wand explain W201`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, code := range errors.GetAllCodes() {
					t, _ := errors.GetTemplate(code)
					fmt.Fprintf(out, "%s  %-9s %s\n", code, t.Category, t.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			t, ok := errors.GetTemplate(code)
			if !ok {
				return errors.New("W502").
					WithDetail("No error has the code " + args[0] + ".").
					WithSuggestion("Run wand explain to list the codes")
			}
			fmt.Fprintf(out, "%s: %s\n\n", code, t.Message)
			fmt.Fprintf(out, "  Category: %s\n", t.Category)
			if t.Detail != "" {
				fmt.Fprintf(out, "  %s\n", t.Detail)
			}
			return nil
		},
	}
}
