package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fieldlens/fieldlens/internal/models"
	"github.com/fieldlens/fieldlens/internal/profile"
	"github.com/fieldlens/fieldlens/internal/ui"
)

var (
	profilesStance    string
	profilesInfluence string
)

var profilesCmd = &cobra.Command{
	Use:   "profiles [name]",
	Short: "Browse stakeholder profiles from the latest discovery run",
	Long: `Profiles lists the stakeholder profiles saved by the last
'fieldlens discover' run. Pass a name to see one profile in detail.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)

	profilesCmd.Flags().StringVar(&profilesStance, "stance", "", "filter by stance (champion, supporter, neutral, skeptic, blocker)")
	profilesCmd.Flags().StringVar(&profilesInfluence, "influence", "", "filter by influence level (decision_maker, key_influencer, contributor, informed)")
}

func loadRegistry() (*profile.Registry, error) {
	path := filepath.Join(GetConfig().Output.Dir, "profiles.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no saved profiles at %s; run 'fieldlens discover' first", path)
		}
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	reg := profile.NewRegistry()
	if _, err := reg.Import(data); err != nil {
		return nil, err
	}
	return reg, nil
}

func runProfiles(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		p := reg.GetByName(args[0])
		if p == nil {
			return fmt.Errorf("no profile found for %q", args[0])
		}
		fmt.Print(ui.RenderProfile(p))
		return nil
	}

	profiles := reg.All()
	if profilesStance != "" {
		profiles = reg.ByStance(models.ParseStance(profilesStance))
	}
	if profilesInfluence != "" {
		filtered := profiles[:0:0]
		level := models.ParseInfluenceLevel(profilesInfluence)
		for _, p := range profiles {
			if p.InfluenceLevel == level {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
	}

	fmt.Print(ui.RenderProfileList(profiles))
	return nil
}
