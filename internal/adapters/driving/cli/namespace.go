package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var namespacesCmd = &cobra.Command{
	Use:         "namespaces",
	Aliases:     []string{"ns"},
	Short:       "List namespaces",
	Args:        cobra.NoArgs,
	Annotations: storeAnnotation,
	RunE:        runNamespaces,
}

var keysCmd = &cobra.Command{
	Use:         "keys [namespace]",
	Short:       "List the keys of a namespace",
	Args:        cobra.ExactArgs(1),
	Annotations: storeAnnotation,
	RunE:        runKeys,
}

var dumpCmd = &cobra.Command{
	Use:         "dump [namespace]",
	Short:       "Print every key and value of a namespace as JSON",
	Args:        cobra.ExactArgs(1),
	Annotations: storeAnnotation,
	RunE:        runDump,
}

var dropCmd = &cobra.Command{
	Use:   "drop [namespace]",
	Short: "Permanently delete a namespace",
	Long: `Drops the namespace table and all of its data.

This cannot be undone; pass --yes to confirm.`,
	Args:        cobra.ExactArgs(1),
	Annotations: storeAnnotation,
	RunE:        runDrop,
}

func init() {
	dropCmd.Flags().BoolP("yes", "y", false, "confirm the drop")
	rootCmd.AddCommand(namespacesCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(dropCmd)
}

func runNamespaces(cmd *cobra.Command, _ []string) error {
	svc, err := requireService()
	if err != nil {
		return err
	}
	names, err := svc.Namespaces(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing namespaces: %w", err)
	}
	return printLines(cmd.OutOrStdout(), names)
}

func runKeys(cmd *cobra.Command, args []string) error {
	svc, err := requireService()
	if err != nil {
		return err
	}
	keys, err := svc.Keys(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}
	return printLines(cmd.OutOrStdout(), keys)
}

func runDump(cmd *cobra.Command, args []string) error {
	svc, err := requireService()
	if err != nil {
		return err
	}
	items, err := svc.Items(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("reading namespace: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), items)
}

func runDrop(cmd *cobra.Command, args []string) error {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("getting yes flag: %w", err)
	}
	if !yes {
		return fmt.Errorf("refusing to drop namespace %q without --yes", args[0])
	}

	svc, err := requireService()
	if err != nil {
		return err
	}
	if err := svc.DropNamespace(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("dropping namespace: %w", err)
	}
	cmd.Printf("Dropped namespace %s\n", args[0])
	return nil
}
