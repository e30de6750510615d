package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	// database drivers selectable via db.driver
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/sqlseed/sqlseed"
	"github.com/sqlseed/sqlseed/internal/config"
	"github.com/sqlseed/sqlseed/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	configPath string
	verbosity  int

	setArgs   []string
	whereArgs []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sqlseed",
		Short: "sqlseed - SQL test-fixture data manager",
		Long:  `sqlseed inserts, retrieves, updates and deletes test data in arbitrary tables of a relational database.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "sqlseed.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	insertCmd := &cobra.Command{
		Use:   "insert TABLE COLUMN=VALUE...",
		Short: "Insert a row and print its generated key",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runInsert,
	}

	getCmd := &cobra.Command{
		Use:   "get TABLE [COLUMN=VALUE...]",
		Short: "Retrieve rows matching the given equality conditions",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runGet,
	}

	updateCmd := &cobra.Command{
		Use:   "update TABLE --set COLUMN=VALUE --where COLUMN=VALUE",
		Short: "Update matching rows and print the affected-row count",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}
	updateCmd.Flags().StringArrayVar(&setArgs, "set", nil, "Column to set (repeatable, order preserved)")
	updateCmd.Flags().StringArrayVar(&whereArgs, "where", nil, "Condition column (repeatable, order preserved)")

	deleteCmd := &cobra.Command{
		Use:   "delete TABLE [COLUMN=VALUE...]",
		Short: "Delete matching rows and print the deleted-row count",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDelete,
	}

	applyCmd := &cobra.Command{
		Use:   "apply FIXTURES",
		Short: "Insert every row of a YAML fixtures file",
		Args:  cobra.ExactArgs(1),
		RunE:  runApply,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sqlseed %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}

	rootCmd.AddCommand(insertCmd, getCmd, updateCmd, deleteCmd, applyCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withManager loads configuration, configures logging, connects, runs fn
// and disconnects.
func withManager(fn func(*sqlseed.Manager) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Apply(effectiveLevel(cfg.Log.Level), cfg.Log.File)

	m := sqlseed.New(sqlseed.Config{
		Driver:   cfg.DB.Driver,
		URL:      cfg.DB.URL,
		Username: cfg.DB.Username,
		Password: cfg.DB.Password,
	})
	if err := m.Connect(); err != nil {
		return err
	}
	defer m.Disconnect()

	return fn(m)
}

func effectiveLevel(configured string) string {
	switch {
	case verbosity >= 2:
		return "trace"
	case verbosity == 1:
		return "debug"
	default:
		return configured
	}
}

func runInsert(cmd *cobra.Command, args []string) error {
	values, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	return withManager(func(m *sqlseed.Manager) error {
		key, err := m.Insert(args[0], values)
		if err != nil {
			return err
		}
		if key == sqlseed.NoGeneratedKey {
			fmt.Println("inserted (no generated key)")
		} else {
			fmt.Println(key)
		}
		return nil
	})
}

func runGet(cmd *cobra.Command, args []string) error {
	conditions, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	return withManager(func(m *sqlseed.Manager) error {
		rows, err := m.Retrieve(args[0], conditions)
		if err != nil {
			return err
		}
		for _, row := range rows {
			parts := make([]string, 0, row.Len())
			for _, f := range row.Fields() {
				parts = append(parts, fmt.Sprintf("%s=%s", f.Column, f.Value))
			}
			fmt.Println(strings.Join(parts, " "))
		}
		return nil
	})
}

func runUpdate(cmd *cobra.Command, args []string) error {
	values, err := parseAssignments(setArgs)
	if err != nil {
		return err
	}
	conditions, err := parseAssignments(whereArgs)
	if err != nil {
		return err
	}
	return withManager(func(m *sqlseed.Manager) error {
		affected, err := m.Update(args[0], values, conditions)
		if err != nil {
			return err
		}
		fmt.Println(affected)
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	conditions, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	return withManager(func(m *sqlseed.Manager) error {
		affected, err := m.Delete(args[0], conditions)
		if err != nil {
			return err
		}
		fmt.Println(affected)
		return nil
	})
}

func runApply(cmd *cobra.Command, args []string) error {
	fixtures, err := sqlseed.LoadFixtures(args[0])
	if err != nil {
		return err
	}
	return withManager(func(m *sqlseed.Manager) error {
		applied, err := m.Apply(fixtures)
		if err != nil {
			return err
		}
		fmt.Println(applied)
		return nil
	})
}

// parseAssignments turns COLUMN=VALUE arguments into a Row, preserving
// argument order as binding order.
func parseAssignments(args []string) (*sqlseed.Row, error) {
	row := sqlseed.NewRow()
	for _, arg := range args {
		column, raw, ok := strings.Cut(arg, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid assignment %q (want COLUMN=VALUE)", arg)
		}
		row.Set(column, parseValue(raw))
	}
	return row, nil
}

// parseValue maps a literal onto the narrowest value kind: null, bool,
// integer, float, then text.
func parseValue(raw string) sqlseed.Value {
	switch raw {
	case "null":
		return sqlseed.Null()
	case "true":
		return sqlseed.Bool(true)
	case "false":
		return sqlseed.Bool(false)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return sqlseed.Int(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return sqlseed.Float(f)
	}
	return sqlseed.Text(raw)
}
