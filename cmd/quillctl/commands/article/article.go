// Package article implements the quillctl article management commands.
package article

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/cmd/quillctl/cmdutil"
	"github.com/quillhq/quill/pkg/models"
)

// Cmd is the parent command for article management.
var Cmd = &cobra.Command{
	Use:     "article",
	Aliases: []string{"articles"},
	Short:   "Manage articles",
	Long: `Create, list, fetch, and delete articles on the quill server.

Examples:
  quillctl article create --author alice --content "hello" --tags go,web
  quillctl article list --author alice
  quillctl article get <id>
  quillctl article delete <id>`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(deleteCmd)
}

// createdAtFormat is the display format for article timestamps.
const createdAtFormat = "2006-01-02 15:04:05"

// ArticleList is a list of articles for table rendering.
type ArticleList []models.Article

// Headers implements TableRenderer.
func (al ArticleList) Headers() []string {
	return []string{"ID", "AUTHOR", "TAGS", "CREATED", "CONTENT"}
}

// Rows implements TableRenderer.
func (al ArticleList) Rows() [][]string {
	rows := make([][]string, 0, len(al))
	for _, a := range al {
		rows = append(rows, articleRow(&a))
	}
	return rows
}

// ArticleView renders a single article as a table row.
type ArticleView struct {
	Article *models.Article
}

// Headers implements TableRenderer.
func (v ArticleView) Headers() []string {
	return ArticleList(nil).Headers()
}

// Rows implements TableRenderer.
func (v ArticleView) Rows() [][]string {
	return [][]string{articleRow(v.Article)}
}

func articleRow(a *models.Article) []string {
	tags := cmdutil.EmptyOr(strings.Join(a.Tags, ", "), "-")
	created := "-"
	if !a.CreatedAt.IsZero() {
		created = a.CreatedAt.Local().Format(createdAtFormat)
	}
	return []string{a.ID, a.Author, tags, created, cmdutil.Truncate(a.Content, 60)}
}
