// Command forumdb manages the medical forum SQLite database: it creates the
// schema, loads the fixture data, empties or removes the database and prints
// row counts.
package main

import (
	"fmt"
	"os"

	"github.com/ariebrainware/medical-forum/config"
	"github.com/ariebrainware/medical-forum/model"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type engineFunc func(cmd *cobra.Command, engine *model.Engine) error

func newRootCmd() *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:          "forumdb",
		Short:        "Manage the medical forum database",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", config.LoadConfig().DBPath, "path of the SQLite database file")

	withEngine := func(fn engineFunc) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			engine := model.NewEngine(dbPath)
			defer func() { _ = engine.Close() }()
			return fn(cmd, engine)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "create",
			Short: "Create the forum tables",
			Args:  cobra.NoArgs,
			RunE:  withEngine(runCreate),
		},
		&cobra.Command{
			Use:   "populate",
			Short: "Create the tables and load the fixture data",
			Args:  cobra.NoArgs,
			RunE:  withEngine(runPopulate),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every row, keeping the schema",
			Args:  cobra.NoArgs,
			RunE:  withEngine(runClear),
		},
		&cobra.Command{
			Use:   "remove",
			Short: "Delete the database file",
			Args:  cobra.NoArgs,
			RunE:  withEngine(runRemove),
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Print the number of rows per table",
			Args:  cobra.NoArgs,
			RunE:  withEngine(runStats),
		},
	)
	return root
}

func runCreate(cmd *cobra.Command, engine *model.Engine) error {
	if err := engine.CreateTables(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created tables in %s\n", engine.Path())
	return nil
}

func runPopulate(cmd *cobra.Command, engine *model.Engine) error {
	if err := engine.CreateTables(); err != nil {
		return err
	}
	if err := engine.PopulateTables(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "populated %s\n", engine.Path())
	return nil
}

func runClear(cmd *cobra.Command, engine *model.Engine) error {
	if err := engine.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", engine.Path())
	return nil
}

func runRemove(cmd *cobra.Command, engine *model.Engine) error {
	if err := engine.RemoveDatabase(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", engine.Path())
	return nil
}

func runStats(cmd *cobra.Command, engine *model.Engine) error {
	for _, table := range []string{model.UsersTable, model.UsersProfileTable, model.MessagesTable, model.DiagnosisTable} {
		n, err := engine.CountRows(table)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d\n", table, n)
	}
	return nil
}
