// Package cli implements notesctl, the offline administration tool for the
// gratitude notes database.
package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"gratitude-bot/internal/config"
	"gratitude-bot/internal/storage"
)

const defaultDBPath = "data/gratitude.db"

var now = time.Now

type options struct {
	dbPath   string
	timezone string
}

// NewRootCmd builds the notesctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "notesctl",
		Short:         "Inspect and maintain the gratitude notes database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.dbPath, "db", "d", "", "Database path (default: $DB_PATH or "+defaultDBPath+")")
	root.PersistentFlags().StringVar(&opts.timezone, "tz", "", "Zone whose calendar day is today (default: $TIMEZONE or Local)")

	root.AddCommand(newExportCmd(opts), newPruneCmd(opts), newCleanCmd(opts))
	return root
}

func (o *options) path() string {
	if o.dbPath != "" {
		return o.dbPath
	}
	if env := os.Getenv("DB_PATH"); env != "" {
		return env
	}
	return defaultDBPath
}

// today is the current calendar date in the same zone the bot uses.
func (o *options) today() (time.Time, error) {
	name := o.timezone
	if name == "" {
		name = os.Getenv("TIMEZONE")
	}
	loc, err := config.LoadLocation(name)
	if err != nil {
		return time.Time{}, err
	}
	return storage.DateOf(now().In(loc)), nil
}

func (o *options) openStore() (*storage.SQLiteStore, error) {
	return storage.NewSQLiteStore(o.path())
}
