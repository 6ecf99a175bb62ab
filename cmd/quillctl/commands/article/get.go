package article

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/cmd/quillctl/cmdutil"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a single article",
	Long: `Fetch a single article by id.

Examples:
  # Fetch as table
  quillctl article get 9f0c1c1e-8f7a-4a3e-b7a1-2f4dce1f0b6d

  # Fetch as JSON
  quillctl article get 9f0c1c1e-8f7a-4a3e-b7a1-2f4dce1f0b6d -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client := cmdutil.GetClient()

	article, err := client.GetArticle(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get article: %w", err)
	}

	return cmdutil.PrintResource(os.Stdout, article, ArticleView{Article: article})
}
