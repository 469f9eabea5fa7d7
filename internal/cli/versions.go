package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/getdriver/pkg/detect"
	"github.com/glorpus-work/getdriver/pkg/errutils"
)

// NewMatchingVersionCmd creates the matching-version command.
func NewMatchingVersionCmd() *cobra.Command {
	var chromium bool

	cmd := &cobra.Command{
		Use:   "matching-version",
		Short: "Print the driver version matching the installed browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatchingVersion(cmd, chromium)
		},
	}
	cmd.Flags().BoolVar(&chromium, "chromium", false, "match the installed Chromium instead of Chrome")

	return cmd
}

// NewAllVersionsCmd creates the all-versions command.
func NewAllVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all-versions",
		Short: "Print every known driver version",
		Args:  cobra.NoArgs,
		RunE:  runAllVersions,
	}
}

func runMatchingVersion(cmd *cobra.Command, chromium bool) error {
	orch, err := newOrchestrator("")
	if err != nil {
		return err
	}

	v, ok, err := orch.MatchingVersion(cmd.Context(), detect.TargetFor(chromium))
	if err != nil {
		return report(cmd, MsgMatchingError, err)
	}
	if !ok {
		return report(cmd, MsgMatchingError, errutils.ErrVersion)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runAllVersions(cmd *cobra.Command, _ []string) error {
	orch, err := newOrchestrator("")
	if err != nil {
		return err
	}

	versions, err := orch.AllVersions(cmd.Context())
	if err != nil {
		return report(cmd, MsgAllVersionsError, err)
	}
	w := cmd.OutOrStdout()
	for _, v := range versions {
		_, _ = fmt.Fprintln(w, v)
	}
	return nil
}
