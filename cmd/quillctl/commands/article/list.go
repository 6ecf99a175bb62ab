package article

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/cmd/quillctl/cmdutil"
	"github.com/quillhq/quill/pkg/apiclient"
)

var (
	listAuthor string
	listTag    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles",
	Long: `List articles on the quill server, optionally filtered by author and tag.

Examples:
  # List all articles as table
  quillctl article list

  # Filter by author
  quillctl article list --author alice

  # Filter by tag, as JSON
  quillctl article list --tag go -o json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listAuthor, "author", "", "Filter by author")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter by tag")
}

func runList(cmd *cobra.Command, args []string) error {
	client := cmdutil.GetClient()

	articles, err := client.ListArticles(cmd.Context(), apiclient.ListArticlesOptions{
		Author: listAuthor,
		Tag:    listTag,
	})
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, articles, len(articles) == 0, "No articles found.", ArticleList(articles))
}
