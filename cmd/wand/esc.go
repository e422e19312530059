package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryferguson/cornwand/pkg/wand"
)

func escCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "esc [TEXT...]",
		Short: "Escape text for HTML",
		Long: `Escape & " ' < and > in TEXT, or in standard input when no TEXT
is given. Arguments are joined with spaces.

Examples:
  wand esc "Tom & Jerry"
  cat notes.txt | wand esc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				fmt.Fprintln(out, wand.EscapeString(strings.Join(args, " ")))
				return nil
			}

			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, wand.EscapeString(string(data)))
			return err
		},
	}
}
