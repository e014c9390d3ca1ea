package command

// root.go defines the import-csv command: it loads CSV fixtures into the
// tables, prints them back or clears them.

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"

	"reviewhub/internal/config"
	"reviewhub/internal/importer"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

var (
	dataDir string // directory holding the CSV files
	opts    importer.Options
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "import-csv <file.csv>...",
	Short: "import-csv - load CSV fixtures into the reviewhub database",
	Long: `import-csv applies CSV files to the table named by the file:
titles, category, genre, genre_title, review, comments and users.

At least one of --read, --write or --delete is required. With several flags
each file is written first, then read, then deleted.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func run(cmd *cobra.Command, args []string) error {
	if !opts.Read && !opts.Write && !opts.Delete {
		return importer.ErrNoAction
	}

	cfg, err := config.LoadToolConfig()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)
	if dataDir == "" {
		dataDir = cfg.CSVDataDir
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	im := importer.New(importer.SQLStore{DB: db}, dataDir, cmd.OutOrStdout(), logger)
	return im.Run(cmd.Context(), args, opts)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&opts.Read, "read", false, "print the table contents")
	rootCmd.Flags().BoolVar(&opts.Write, "write", false, "insert the file rows into the table")
	rootCmd.Flags().BoolVar(&opts.Delete, "delete", false, "delete every row of the table")
	rootCmd.Flags().StringVar(&dataDir, "dir", "", "CSV directory (default CSV_DATA_DIR)")
}
