package main

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryferguson/cornwand/internal/errors"
	"github.com/ryferguson/cornwand/pkg/page"
)

func renderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a JSON document to HTML",
		Long: `Render a JSON document to HTML. FILE "-" reads standard input.

Examples:
  wand render site/index.json
  wand render site/index.json -o public/index.html
  echo '{"root":{"tag":"br"}}' | wand render -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := doc.WriteTo(cmd.OutOrStdout())
				return err
			}

			if err := os.WriteFile(output, []byte(doc.Render()), 0644); err != nil {
				return errors.New("W203").
					WithLocation(output, "").
					Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of standard output")

	return cmd
}

// loadDocument parses the document at path, or stdin when path is "-".
func loadDocument(path string, stdin io.Reader) (*page.Document, error) {
	var (
		doc *page.Document
		err error
	)
	if path == "-" {
		doc, err = page.Parse(stdin)
	} else {
		doc, err = page.ParseFile(path)
	}
	if err == nil {
		return doc, nil
	}

	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("W202").
			WithLocation(path, "").
			Wrap(err)
	}

	we := errors.New("W201").WithLocation(path, "").Wrap(err)
	var pe *page.ParseError
	if stderrors.As(err, &pe) {
		we.WithLocation(path, pe.Path).
			WithSuggestion(`Each node needs a "tag"; content items are strings or nodes`).
			WithExample(`{"doctype": true, "root": {"tag": "html", "content": ["..."]}}`)
	}
	return nil, we
}
