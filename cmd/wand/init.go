package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ryferguson/cornwand/internal/config"
	"github.com/ryferguson/cornwand/internal/errors"
	"github.com/ryferguson/cornwand/internal/preview"
)

const sampleDocument = `{
  "doctype": true,
  "root": {
    "tag": "html",
    "attrs": {"lang": "en"},
    "content": [
      {"tag": "head", "content": [
        {"tag": "meta", "attrs": {"charset": "utf-8"}},
        {"tag": "title", "text": "Hello"}
      ]},
      {"tag": "body", "content": [
        {"tag": "h1", "text": "Hello"},
        {"tag": "p", "text": "Edit this file and the page reloads."}
      ]}
    ]
  }
}
`

func initCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create wand.json and a sample document",
		Long: `Write a wand.json with default settings to the config directory and,
unless it already exists, a sample index.json in the document directory.

Examples:
  wand init
  wand init -C mysite
  wand init --force`,
		Args: cobra.NoArgs,
		// The existing wand.json may be the reason for running init.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupOutput()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(a.configDir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("W106").
					WithLocation(path, "").
					WithSuggestion("Pass --force to replace it with the defaults")
			}

			cfg := config.New()
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			success(out, "Wrote %s", cfg.Path())

			dir := cfg.DocumentDir()
			sample := filepath.Join(dir, "index"+preview.DocumentExt)
			if _, err := os.Stat(sample); err == nil {
				return nil
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.New("W203").WithLocation(dir, "").Wrap(err)
			}
			if err := os.WriteFile(sample, []byte(sampleDocument), 0644); err != nil {
				return errors.New("W203").WithLocation(sample, "").Wrap(err)
			}
			success(out, "Wrote %s", sample)
			info(out, "Run wand serve to preview it")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing wand.json")

	return cmd
}
