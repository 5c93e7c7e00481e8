package cmd

import (
	"fmt"
	"runtime"

	"github.com/KostasZigo/gogit-odb/internal/objects"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object [-w] [--stdin] <filepath>...",
	Short: "Compute object hash and optionally create and store a blob from a file",
	Long: `Compute the object hash (SHA-1 hash) for each file's content.
File content is read as raw bytes and may be binary.
Optionally write the resulting blob objects into the objects folder.

Examples:
  # Compute hash without storing
  gogit hash-object myfile.txt

  # Compute hash and store in .gogit/objects
  gogit hash-object -w myfile.txt

  # Hash standard input, then two files
  echo hi | gogit hash-object --stdin a.txt b.txt`,
	SilenceUsage: true,
	Args:         hashObjectArgs,
	RunE:         runHashObject,
}

var (
	writeFlag bool
	stdinFlag bool
)

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the objects folder")
	hashObjectCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read the object from standard input")
}

// hashObjectArgs requires at least one file unless --stdin is given.
// enables usage printing in case of error
func hashObjectArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !stdinFlag {
		cmd.SilenceUsage = false
		return fmt.Errorf("%s command requires at least 1 argument (filepath), received 0", cmd.Name())
	}
	return nil
}

// runHashObject computes hashes and optionally stores blob objects.
// Files are processed concurrently; hashes are printed in argument order.
func runHashObject(cmd *cobra.Command, args []string) error {
	var store *objects.ObjectStore
	if writeFlag {
		var err error
		if store, err = openObjectStore(); err != nil {
			return err
		}
	}

	blobs := make([]*objects.Blob, 0, len(args)+1)
	if stdinFlag {
		blob, err := objects.NewBlobFromReader(cmd.InOrStdin())
		if err != nil {
			return err
		}
		blobs = append(blobs, blob)
	}

	fileBlobs := make([]*objects.Blob, len(args))
	group := new(errgroup.Group)
	group.SetLimit(runtime.NumCPU())

	for i, path := range args {
		group.Go(func() error {
			blob, err := objects.NewBlobFromFile(path)
			if err != nil {
				return err
			}
			fileBlobs[i] = blob
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	blobs = append(blobs, fileBlobs...)

	if store != nil {
		if err := storeBlobs(store, blobs); err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
	}

	for _, blob := range blobs {
		fmt.Fprintln(cmd.OutOrStdout(), blob.Hash())
	}

	return nil
}

// storeBlobs writes blobs concurrently. Puts of identical content are idempotent.
func storeBlobs(store *objects.ObjectStore, blobs []*objects.Blob) error {
	group := new(errgroup.Group)
	group.SetLimit(runtime.NumCPU())

	for _, blob := range blobs {
		group.Go(func() error {
			_, err := store.Put(blob.Kind(), blob.Content())
			return err
		})
	}

	return group.Wait()
}
