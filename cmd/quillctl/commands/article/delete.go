package article

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/cmd/quillctl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an article",
	Long: `Delete an article by id.

Prompts for confirmation unless --force is given.

Examples:
  # Delete with confirmation
  quillctl article delete 9f0c1c1e-8f7a-4a3e-b7a1-2f4dce1f0b6d

  # Delete without confirmation
  quillctl article delete 9f0c1c1e-8f7a-4a3e-b7a1-2f4dce1f0b6d --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	client := cmdutil.GetClient()

	return cmdutil.RunDeleteWithConfirmation("article", id, deleteForce, func() error {
		if err := client.DeleteArticle(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete article: %w", err)
		}
		return nil
	})
}
