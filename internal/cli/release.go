package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/orchestrator"
	"github.com/glorpus-work/getdriver/pkg/platform"
)

// NewStableVersionCmd creates the stable-version command.
func NewStableVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stable-version",
		Short: "Print the latest stable driver version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChannelVersion(cmd, (*orchestrator.Orchestrator).StableVersion, MsgStableVersionError)
		},
	}
}

// NewBetaVersionCmd creates the beta-version command.
func NewBetaVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "beta-version",
		Short: "Print the latest beta driver version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChannelVersion(cmd, (*orchestrator.Orchestrator).BetaVersion, MsgBetaVersionError)
		},
	}
}

// NewStableURLCmd creates the stable-url command.
func NewStableURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stable-url",
		Short: "Print the download URL of the latest stable driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChannelVersion(cmd, (*orchestrator.Orchestrator).StableVersionURL, MsgReleaseURLError)
		},
	}
}

// NewBetaURLCmd creates the beta-url command.
func NewBetaURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "beta-url",
		Short: "Print the download URL of the latest beta driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChannelVersion(cmd, (*orchestrator.Orchestrator).BetaVersionURL, MsgReleaseURLError)
		},
	}
}

// NewVersionURLCmd creates the version-url command.
func NewVersionURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version-url VERSION",
		Short: "Print the download URL of a driver version",
		Args:  requireRelease,
		RunE:  runVersionURL,
	}
}

// NewLatestURLsCmd creates the latest-urls command.
func NewLatestURLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest-urls",
		Short: "Print the latest stable and beta URLs for every platform family",
		Args:  cobra.NoArgs,
		RunE:  runLatestURLs,
	}
}

func requireRelease(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%s: %w", MsgRequiredRelease, errutils.ErrUnknownVersion)
	}
	return nil
}

func runChannelVersion(cmd *cobra.Command, get func(*orchestrator.Orchestrator, context.Context) (string, error), failure string) error {
	orch, err := newOrchestrator("")
	if err != nil {
		return err
	}

	v, err := get(orch, cmd.Context())
	if err != nil {
		return report(cmd, failure, err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runVersionURL(cmd *cobra.Command, args []string) error {
	orch, err := newOrchestrator("")
	if err != nil {
		return err
	}

	url, err := orch.VersionURL(cmd.Context(), args[0])
	if err != nil {
		return report(cmd, MsgReleaseURLError, err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}

var latestURLFamilies = []struct {
	label string
	title string
}{
	{platform.AliasWin, "Windows"},
	{platform.AliasLinux, "Linux"},
	{platform.AliasMac, "macOS"},
}

func runLatestURLs(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	for i, family := range latestURLFamilies {
		orch, err := newOrchestrator(family.label)
		if err != nil {
			return err
		}

		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w, render(w, headerStyle, fmt.Sprintf(latestURLsHeaderFormat, family.title)))
		printLatestURL(w, "stable : ", MsgStableNotFound, func() (string, error) { return orch.StableVersionURL(cmd.Context()) })
		printLatestURL(w, "beta   : ", MsgBetaNotFound, func() (string, error) { return orch.BetaVersionURL(cmd.Context()) })
	}
	return cmd.Context().Err()
}

func printLatestURL(w io.Writer, prefix, missing string, get func() (string, error)) {
	url, err := get()
	if err != nil {
		logger.Debug("latest url not resolved", logger.Fields{"error": err})
		_, _ = fmt.Fprintln(w, prefix+render(w, errorStyle, missing))
		return
	}
	_, _ = fmt.Fprintln(w, prefix+url)
}
