package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lab-checkout/config"
	"lab-checkout/lab"
)

var (
	configPath string
	dbOverride string
	logLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "labcheckout",
		Short:         "Lab equipment checkout policy engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.ConfigPath, "path to config file")
	root.PersistentFlags().StringVar(&dbOverride, "db", "", "SQLite database path (overrides config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newDemoCmd(), newCheckoutCmd(), newBatchCmd(), newListCmd())
	return root
}

// loadConfig resolves config file, environment and flags, then installs the logger.
func loadConfig() (config.FileConfig, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	if dbOverride != "" {
		cfg.DatabasePath = dbOverride
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, config.InitLogger(cfg.LogLevel, cfg.LogFormat), nil
}

func openManager(cfg config.FileConfig, logger *slog.Logger, out io.Writer) (*lab.LabManager, error) {
	opts := []lab.ManagerOption{lab.WithManagerLogger(logger)}
	if cfg.AuditStdout {
		opts = append(opts, lab.WithAuditWriter(out))
	}
	mgr, err := lab.NewLabManager(cfg.DatabasePath, opts...)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DatabasePath, err)
	}
	return mgr, nil
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the sample batch against the built-in lab roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			roster, store := lab.DemoRoster().Build()
			svc := lab.NewCheckoutService(roster, store,
				lab.WithAuditLogger(lab.NewWriterAuditLogger(out)),
				lab.WithLogger(logger))
			lab.RunBatch(svc, lab.DemoBatch().Requests, printResult(out))
			return nil
		},
	}
}

func newCheckoutCmd() *cobra.Command {
	var (
		uid     string
		assetID string
		hours   int
	)
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Check out one asset for a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			mgr, err := openManager(cfg, logger, out)
			if err != nil {
				return err
			}
			defer mgr.Close()

			receipt, err := mgr.Checkout(uid, assetID, hours)
			printResult(out)(lab.BatchResult{
				Request: lab.RequestRecord{UID: uid, AssetID: assetID, Hours: hours},
				Receipt: &receipt,
				Err:     err,
			})
			if err != nil {
				return fmt.Errorf("checkout refused (%s)", lab.KindOf(err))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "student UID")
	cmd.Flags().StringVar(&assetID, "asset", "", "asset ID (LAB-<digits>)")
	cmd.Flags().IntVar(&hours, "hours", 1, "loan duration in hours (1-6)")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("asset")
	return cmd
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Run a YAML batch of checkout requests in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			batch, err := lab.LoadBatchFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			mgr, err := openManager(cfg, logger, out)
			if err != nil {
				return err
			}
			defer mgr.Close()

			ok, failed := mgr.RunBatch(batch.Requests, printResult(out))
			fmt.Fprintf(out, "\nBatch complete: %d succeeded, %d failed\n", ok, failed)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List the lab roster",
	}
	list.AddCommand(&cobra.Command{
		Use:   "assets",
		Short: "List assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, func(out io.Writer, mgr *lab.LabManager) {
				handleListAssets(out, mgr.Assets())
			})
		},
	}, &cobra.Command{
		Use:   "students",
		Short: "List students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, func(out io.Writer, mgr *lab.LabManager) {
				handleListStudents(out, mgr.Students())
			})
		},
	})
	return list
}

func withManager(cmd *cobra.Command, fn func(io.Writer, *lab.LabManager)) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.AuditStdout = false
	mgr, err := openManager(cfg, logger, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer mgr.Close()
	fn(cmd.OutOrStdout(), mgr)
	return nil
}

// printResult writes the notes and outcome of one request.
func printResult(out io.Writer) func(lab.BatchResult) {
	return func(res lab.BatchResult) {
		if res.Err != nil {
			fmt.Fprintf(out, "ERROR: %v\n", res.Err)
			return
		}
		for _, note := range res.Receipt.Notes {
			fmt.Fprintln(out, note)
		}
		fmt.Fprintf(out, "SUCCESS: %s\n", res.Receipt)
	}
}

func handleListAssets(out io.Writer, assets []*lab.Asset) {
	if len(assets) == 0 {
		fmt.Fprintln(out, "No assets in the lab.")
		return
	}
	fmt.Fprintf(out, "%-10s %-25s %-10s %s\n", "ID", "Name", "Available", "Security")
	fmt.Fprintln(out, strings.Repeat("-", 56))
	for _, a := range assets {
		availStr := "Yes"
		if !a.Available {
			availStr = "No"
		}
		fmt.Fprintf(out, "%-10s %-25s %-10s %d\n", a.AssetID, truncateString(a.AssetName, 25), availStr, a.SecurityLevel)
	}
}

func handleListStudents(out io.Writer, students []*lab.Student) {
	if len(students) == 0 {
		fmt.Fprintln(out, "No students registered.")
		return
	}
	fmt.Fprintf(out, "%-12s %-25s %-8s %s\n", "UID", "Name", "Fine", "Borrows")
	fmt.Fprintln(out, strings.Repeat("-", 55))
	for _, s := range students {
		fmt.Fprintf(out, "%-12s %-25s %-8d %d\n", s.UID, truncateString(s.Name, 25), s.FineAmount, s.CurrentBorrowCount)
	}
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
