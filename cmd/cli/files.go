package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/filebeam/filebeam/internal/domain"
	"github.com/filebeam/filebeam/internal/managers"

	"github.com/spf13/cobra"
)

// NewFilesCommand inspects the metadata store offline. The store allows a
// single writer process, so these commands must not run while the bot is up.
func NewFilesCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "files",
		Short: "Inspect the file metadata store (run while the bot is stopped)",
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory holding the metadata document")

	cmd.AddCommand(newFilesListCommand(&dataDir))
	cmd.AddCommand(newFilesDeleteCommand(&dataDir))

	return cmd
}

func newFilesListCommand(dataDir *string) *cobra.Command {
	var ownerID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored file records",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := managers.NewFileStore(managers.FileStoreDependencies{DataDir: *dataDir})
			if err != nil {
				return err
			}

			records, err := store.ListByOwner(ownerID)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Printf("No records for owner %d\n", ownerID)
				return nil
			}

			printRecords(records)
			return nil
		},
	}

	cmd.Flags().Int64Var(&ownerID, "owner", 0, "Owner user id to list records for")
	cmd.MarkFlagRequired("owner")

	return cmd
}

func newFilesDeleteCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file-key>",
		Short: "Delete a file record by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := managers.NewFileStore(managers.FileStoreDependencies{DataDir: *dataDir})
			if err != nil {
				return err
			}

			if err := store.Delete(args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func printRecords(records []domain.FileRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tSIZE\tPROTECTED\tCREATED")
	for _, record := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n",
			record.Key, record.DisplayName, record.SizeBytes,
			record.PasswordProtected, record.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()
}
