package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/getdriver/internal/cli"
	"github.com/glorpus-work/getdriver/pkg/platform"
)

var (
	configPath    string
	verbose       bool
	noColor       bool
	platformLabel string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-chrome-driver",
		Short: "Resolve and download ChromeDriver releases",
		Long: `get-chrome-driver resolves ChromeDriver versions and downloads them:
- Versions: latest stable and beta, every known version, the match for the installed browser
- URLs: validated download links from Chrome for Testing or the legacy storage
- Downloads: fetch, extract and put the driver on PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&platformLabel, "platform", "",
		fmt.Sprintf("target platform, one of %v (default: detect)", platform.ValidLabels()))
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: $GETDRIVER_CONFIG or user config dir)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor
	cli.Platform = &platformLabel

	// Add subcommands
	cmd.AddCommand(
		cli.NewStableVersionCmd(),
		cli.NewBetaVersionCmd(),
		cli.NewLatestURLsCmd(),
		cli.NewVersionURLCmd(),
		cli.NewStableURLCmd(),
		cli.NewBetaURLCmd(),
		cli.NewDownloadCmd(),
		cli.NewDownloadStableCmd(),
		cli.NewDownloadBetaCmd(),
		cli.NewAutoDownloadCmd(),
		cli.NewInstallCmd(),
		cli.NewMatchingVersionCmd(),
		cli.NewAllVersionsCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
