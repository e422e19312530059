package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryferguson/cornwand/internal/errors"
	"github.com/ryferguson/cornwand/pkg/wand"
)

func tagCmd() *cobra.Command {
	var escape bool

	cmd := &cobra.Command{
		Use:   "tag NAME [ATTR...] [-- CONTENT...]",
		Short: "Print a single tag",
		Long: `Print one tag built from its arguments.

Before "--", key=value arguments are named attributes and any other argument
is a bare flag attribute. Arguments after "--" are content, concatenated
without separators; quote content that contains spaces. Without "--" the tag
is self-closing.

Examples:
  wand tag br
  wand tag input type=checkbox checked
  wand tag a href=/docs -- "Read the docs"
  wand tag p --escape -- "a < b"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			if dash == 0 {
				return errors.New("W501").
					WithDetail("The tag name must come before --.").
					WithExample("wand tag p -- hello")
			}
			if dash > 0 {
				dash--
			}

			rest := tagArgs(args[1:], dash, escape)
			fmt.Fprintln(cmd.OutOrStdout(), wand.Tag(args[0], rest...))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&escape, "escape", "e", false, "Escape content arguments")

	return cmd
}

// tagArgs turns command-line tokens into Tag arguments. dash is the index of
// the first content token, or -1 when there is no content.
func tagArgs(tokens []string, dash int, escape bool) []any {
	head, content := tokens, []string(nil)
	if dash >= 0 {
		head, content = tokens[:dash], tokens[dash:]
	}

	var rest []any
	if len(head) > 0 {
		var attrs wand.Attrs
		for _, tok := range head {
			if name, value, ok := strings.Cut(tok, "="); ok && name != "" {
				attrs = attrs.Set(name, value)
				continue
			}
			attrs = append(attrs, wand.Flag(tok))
		}
		rest = append(rest, attrs)
	}

	if dash < 0 {
		return rest
	}
	// "--" with nothing after it still makes an element with a closing tag.
	if len(content) == 0 {
		return append(rest, "")
	}
	for _, c := range content {
		if escape {
			c = wand.EscapeString(c)
		}
		rest = append(rest, c)
	}
	return rest
}
