package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/workboard-api/internal/catalog"
	"github.com/yukikurage/workboard-api/internal/config"
	"github.com/yukikurage/workboard-api/internal/export"
	"github.com/yukikurage/workboard-api/internal/logging"
	"github.com/yukikurage/workboard-api/internal/services"
)

var (
	port         string
	embedBase    string
	exportFormat string
	exportOutput string
)

var rootCmd = &cobra.Command{
	Use:   "workboard",
	Short: "Task board, time tracking and embedded reports API",
	Long:  `Workboard serves a seeded task board, a time log and a catalog of embeddable reports over HTTP.`,
	RunE:  runServe,
}

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}

	resolveCmd = &cobra.Command{
		Use:   "resolve <url>...",
		Short: "Print the embeddable form of one or more report URLs",
		Args:  cobra.MinimumNArgs(1),
		Run:   runResolve,
	}

	reportsCmd = &cobra.Command{
		Use:   "reports",
		Short: "List the report catalog with embed URLs",
		RunE:  runReports,
	}

	timesheetCmd = &cobra.Command{
		Use:   "timesheet",
		Short: "Export the seeded time log to a file",
		RunE:  runTimesheet,
	}
)

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, resolveCmd, reportsCmd, timesheetCmd)

	rootCmd.PersistentFlags().StringVar(&embedBase, "embed-base", "", "Embed base URL (overrides EMBED_BASE_URL)")

	rootCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	timesheetCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatXLSX), "Export format (xlsx, csv)")
	timesheetCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (defaults to a timestamped name)")
}

// loadConfig applies command line overrides on top of the environment
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if port != "" {
		cfg.Port = port
	}
	if embedBase != "" {
		cfg.EmbedBaseURL = embedBase
	}

	if err := logging.Init(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	}); err != nil {
		return nil, err
	}

	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return serve(cmd.Context(), cfg)
}

func runResolve(cmd *cobra.Command, args []string) {
	resolver := catalog.NewResolver(resolveBase())
	for _, raw := range args {
		fmt.Fprintln(cmd.OutOrStdout(), resolver.Resolve(raw))
	}
}

func runReports(cmd *cobra.Command, args []string) error {
	reports, err := catalog.New(catalog.NewResolver(resolveBase()), catalog.DefaultDefinitions())
	if err != nil {
		return err
	}

	for _, report := range reports.List() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-24s %s\n", report.ID, report.Title, report.EmbedURL)
	}
	return nil
}

func runTimesheet(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := newApp(cfg)
	if err != nil {
		return err
	}

	entries, err := app.TimeLogs.ListEntries(services.ListTimeLogsInput{})
	if err != nil {
		return err
	}

	return writeTimesheet(cmd, format, entries)
}

func resolveBase() string {
	if embedBase != "" {
		return embedBase
	}
	return config.Load().EmbedBaseURL
}
