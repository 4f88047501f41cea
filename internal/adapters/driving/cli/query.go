package cli

import (
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [table] [sql] [args...]",
	Short: "Run a read statement and print rows as JSON objects",
	Long: `Run a statement and print each row as a JSON object keyed by the column
names of table.

Columns are labelled by position, so the statement must select them in the
table's declared order (SELECT * always does).

Example:
  sqlitedb query db_users 'SELECT * FROM db_users WHERE key = ?' alice`,
	Args:        cobra.MinimumNArgs(2),
	Annotations: storeAnnotation,
	RunE:        runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	svc, err := requireService()
	if err != nil {
		return err
	}

	params := make([]any, 0, len(args)-2)
	for _, a := range args[2:] {
		params = append(params, a)
	}

	rows, err := svc.Query(cmd.Context(), args[0], args[1], params...)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), rows)
}
