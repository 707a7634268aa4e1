package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewMdCmd создаёт группу команд для markdown документации.
func NewMdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "md",
		Short: "Markdown related commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "docs",
		Short: "Generate markdown documentation for the CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			root.DisableAutoGenTag = true
			return GenMarkdown(root, cmd.OutOrStdout())
		},
	})

	return cmd
}

// GenMarkdown пишет документацию всего дерева команд одним документом.
// Ссылки между командами ведут на якоря внутри документа.
func GenMarkdown(root *cobra.Command, w io.Writer) error {
	link := func(name string) string {
		// bh_job_delete.md -> #bh-job-delete
		return "#" + strings.ReplaceAll(strings.TrimSuffix(name, ".md"), "_", "-")
	}

	var walk func(c *cobra.Command) error
	walk = func(c *cobra.Command) error {
		if c != root && (!c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand()) {
			return nil
		}

		c.DisableAutoGenTag = true
		if err := doc.GenMarkdownCustom(c, w, link); err != nil {
			return fmt.Errorf("generate docs for %s: %w", c.CommandPath(), err)
		}

		for _, sub := range c.Commands() {
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}

	return walk(root)
}
