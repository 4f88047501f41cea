package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

var getCmd = &cobra.Command{
	Use:   "get [namespace] [key]",
	Short: "Print the value stored under a key",
	Long: `Print the value stored under a key.

Strings are printed verbatim; other values are printed as JSON.`,
	Args:        cobra.ExactArgs(2),
	Annotations: storeAnnotation,
	RunE:        runGet,
}

var setCmd = &cobra.Command{
	Use:   "set [namespace] [key] [value]",
	Short: "Store a value under a key",
	Long: `Store a value under a key, creating the namespace if needed.

The value is stored as a string unless --json is given, in which case it is
parsed as JSON and stored as a structured value.`,
	Args:        cobra.ExactArgs(3),
	Annotations: storeAnnotation,
	RunE:        runSet,
}

var delCmd = &cobra.Command{
	Use:         "del [namespace] [key]",
	Aliases:     []string{"delete", "rm"},
	Short:       "Delete a key",
	Args:        cobra.ExactArgs(2),
	Annotations: storeAnnotation,
	RunE:        runDel,
}

func init() {
	getCmd.Flags().String("default", "", "print this instead of failing when the key is missing")
	setCmd.Flags().Bool("json", false, "parse the value as JSON")
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(delCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	svc, err := requireService()
	if err != nil {
		return err
	}

	v, err := svc.Get(cmd.Context(), args[0], args[1])
	if errors.Is(err, domain.ErrKeyNotFound) && cmd.Flags().Changed("default") {
		def, _ := cmd.Flags().GetString("default")
		return printValue(cmd.OutOrStdout(), def)
	}
	if err != nil {
		return err
	}
	return printValue(cmd.OutOrStdout(), v)
}

func runSet(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("getting json flag: %w", err)
	}

	var value any = args[2]
	if asJSON {
		var parsed any
		if err := json.Unmarshal([]byte(args[2]), &parsed); err != nil {
			return fmt.Errorf("%w: value is not valid JSON: %w", domain.ErrInvalidInput, err)
		}
		value = parsed
	}

	svc, err := requireService()
	if err != nil {
		return err
	}
	return svc.Set(cmd.Context(), args[0], args[1], value)
}

func runDel(cmd *cobra.Command, args []string) error {
	svc, err := requireService()
	if err != nil {
		return err
	}
	return svc.Delete(cmd.Context(), args[0], args[1])
}
