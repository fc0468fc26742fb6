package commands

import (
	"fmt"
	"strconv"

	"github.com/de-tools/report-flatten/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	profilesPath string
}

func NewProfilesCmd() *cobra.Command {
	pc := &ProfilesCmd{}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the output profiles defined in a profiles file",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profilesPath, "profiles", "", "Path to the output profiles file")

	_ = cmd.MarkFlagRequired("profiles")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	registry, err := config.NewProfileRegistry(pc.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to open profiles %s: %w", pc.profilesPath, err)
	}

	names, err := registry.GetProfiles(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", pc.profilesPath)
		return nil
	}

	for _, name := range names {
		p, err := registry.GetProfile(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tdelimiter=%s\textension=%s\n",
			p.Name, strconv.Quote(p.Delimiter), p.Extension)
	}

	return nil
}
