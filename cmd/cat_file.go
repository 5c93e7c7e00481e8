package cmd

import (
	"fmt"

	"github.com/KostasZigo/gogit-odb/internal/objects"
	"github.com/spf13/cobra"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-p | -t | -s | -e) <object>",
	Short: "Provide content, type or size information for a stored object",
	Long: `Read an object from the objects folder by its 40 character hash.

  -p  write the blob content to standard output, byte for byte
  -t  print the object type
  -s  print the object size in bytes
  -e  exit with zero status if the object exists and is valid, print nothing

Examples:
  gogit cat-file -p 45b983be36b73c0788dc9cbcb76cbb80fc7bb057
  gogit cat-file -s 45b983be36b73c0788dc9cbcb76cbb80fc7bb057`,
	SilenceUsage: true,
	Args:         exactArgs(1, "object hash"),
	RunE:         runCatFile,
}

var (
	prettyPrintFlag bool
	typeFlag        bool
	sizeFlag        bool
	existsFlag      bool
)

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&prettyPrintFlag, "pretty-print", "p", false, "Print the object content")
	catFileCmd.Flags().BoolVarP(&typeFlag, "type", "t", false, "Print the object type")
	catFileCmd.Flags().BoolVarP(&sizeFlag, "size", "s", false, "Print the object size")
	catFileCmd.Flags().BoolVarP(&existsFlag, "exists", "e", false, "Check that the object exists and is valid")

	catFileCmd.MarkFlagsMutuallyExclusive("pretty-print", "type", "size", "exists")
	catFileCmd.MarkFlagsOneRequired("pretty-print", "type", "size", "exists")
}

// runCatFile reads the object named by args[0] in the selected mode.
func runCatFile(cmd *cobra.Command, args []string) error {
	address := args[0]
	if _, err := objects.ParseAddress(address); err != nil {
		return err
	}

	store, err := openObjectStore()
	if err != nil {
		return err
	}

	switch {
	case prettyPrintFlag:
		_, payload, err := store.Get(address)
		if err != nil {
			return err
		}
		// Payload bytes are written unmodified, no newline added
		_, err = cmd.OutOrStdout().Write(payload)
		return err

	case typeFlag:
		kind, _, err := store.Stat(address)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), kind)

	case sizeFlag:
		_, size, err := store.Stat(address)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), size)

	case existsFlag:
		if _, _, err := store.Get(address); err != nil {
			return err
		}
	}

	return nil
}
