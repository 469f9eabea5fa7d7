package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/orchestrator"
)

type downloadFlags struct {
	extract bool
	output  string
}

func (f *downloadFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.extract, "extract", false, "extract the archive and keep only the driver binary")
	cmd.Flags().StringVar(&f.output, "output", "", "output directory (default: chromedriver/<version>/bin)")
}

func (f *downloadFlags) options() orchestrator.DownloadOptions {
	return orchestrator.DownloadOptions{OutputDir: f.output, Extract: f.extract}
}

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "download VERSION",
		Short: "Download a driver version",
		Args:  requireRelease,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, func(ctx context.Context, orch *orchestrator.Orchestrator) (string, error) {
				return orch.DownloadVersion(ctx, args[0], flags.options())
			})
		},
	}
	flags.register(cmd)

	return cmd
}

// NewDownloadStableCmd creates the download-stable command.
func NewDownloadStableCmd() *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "download-stable",
		Short: "Download the latest stable driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDownload(cmd, func(ctx context.Context, orch *orchestrator.Orchestrator) (string, error) {
				return orch.DownloadStableVersion(ctx, flags.options())
			})
		},
	}
	flags.register(cmd)

	return cmd
}

// NewDownloadBetaCmd creates the download-beta command.
func NewDownloadBetaCmd() *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "download-beta",
		Short: "Download the latest beta driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDownload(cmd, func(ctx context.Context, orch *orchestrator.Orchestrator) (string, error) {
				return orch.DownloadBetaVersion(ctx, flags.options())
			})
		},
	}
	flags.register(cmd)

	return cmd
}

// NewAutoDownloadCmd creates the auto-download command.
func NewAutoDownloadCmd() *cobra.Command {
	var (
		flags    downloadFlags
		chromium bool
	)

	cmd := &cobra.Command{
		Use:   "auto-download",
		Short: "Download the driver matching the installed browser",
		Long: `Detect the installed Chrome (or Chromium with --chromium) and download
the newest driver sharing its major.minor.build prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDownload(cmd, func(ctx context.Context, orch *orchestrator.Orchestrator) (string, error) {
				return orch.AutoDownload(ctx, orchestrator.AutoOptions{
					OutputDir: flags.output,
					Extract:   flags.extract,
					Chromium:  chromium,
				})
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&chromium, "chromium", false, "match the installed Chromium instead of Chrome")

	return cmd
}

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		output   string
		chromium bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download and extract the matching driver and add it to PATH",
		Long: `Download and extract the driver matching the installed browser and append
its directory to PATH. The PATH change applies to this process and the
processes it starts; the absolute directory is printed for shell use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, output, chromium)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output directory (default: chromedriver/<version>/bin)")
	cmd.Flags().BoolVar(&chromium, "chromium", false, "match the installed Chromium instead of Chrome")

	return cmd
}

func runDownload(cmd *cobra.Command, fetch func(context.Context, *orchestrator.Orchestrator) (string, error)) error {
	orch, err := newOrchestrator("")
	if err != nil {
		return err
	}

	dir, err := fetch(cmd.Context(), orch)
	if err != nil {
		return report(cmd, MsgDownloadError, err)
	}

	logger.Debug("driver stored", logger.Fields{"dir": dir})
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, render(w, successStyle, MsgDownloadFinished))
	return nil
}

func runInstall(cmd *cobra.Command, output string, chromium bool) error {
	orch, err := newOrchestrator("")
	if err != nil {
		return err
	}

	dir, err := orch.Install(cmd.Context(), output, chromium)
	if err != nil {
		return report(cmd, MsgDownloadError, err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}
