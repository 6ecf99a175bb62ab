package article

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/cmd/quillctl/cmdutil"
	"github.com/quillhq/quill/internal/cli/prompt"
	"github.com/quillhq/quill/pkg/apiclient"
)

var (
	createAuthor  string
	createContent string
	createTags    string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new article",
	Long: `Create a new article on the quill server.

Author and content are required. When omitted, they are prompted for
interactively.

Examples:
  # Create with flags
  quillctl article create --author alice --content "hello world" --tags go,web

  # Create interactively
  quillctl article create`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createAuthor, "author", "", "Article author (required)")
	createCmd.Flags().StringVar(&createContent, "content", "", "Article content (required)")
	createCmd.Flags().StringVar(&createTags, "tags", "", "Comma-separated tags")
}

func runCreate(cmd *cobra.Command, args []string) error {
	author := createAuthor
	content := createContent

	// Prompt for missing required fields
	var err error
	if author == "" {
		author, err = prompt.InputRequired("Author")
		if err != nil {
			if prompt.IsAborted(err) {
				fmt.Println("\nAborted.")
				return nil
			}
			return err
		}
	}
	if content == "" {
		content, err = prompt.InputRequired("Content")
		if err != nil {
			if prompt.IsAborted(err) {
				fmt.Println("\nAborted.")
				return nil
			}
			return err
		}
	}

	client := cmdutil.GetClient()

	created, err := client.CreateArticle(cmd.Context(), apiclient.CreateArticleRequest{
		Author:  author,
		Content: content,
		Tags:    cmdutil.ParseCommaSeparatedList(createTags),
	})
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Article '%s' created", created.ID))
	return cmdutil.PrintResource(os.Stdout, created, ArticleView{Article: created})
}
