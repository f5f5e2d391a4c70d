package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/substyle/substyle/internal/application/usecase"
	"github.com/substyle/substyle/internal/domain/entity"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage saved style profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles, most recently updated first",
	RunE: func(_ *cobra.Command, _ []string) error {
		uc := usecase.NewListProfilesUseCase(app.Profiles)
		profiles, err := uc.Execute(app.Context())
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("no profiles saved")
			return nil
		}
		for _, p := range profiles {
			fmt.Printf("%s  %-24s %s@%d  updated %s\n",
				p.ID, p.Name, p.Style.FontFamily, p.Style.FontWeight,
				p.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var profilesSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the default style under a new profile name",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		uc := usecase.NewSaveProfileUseCase(app.Profiles)
		profile, err := uc.Execute(app.Context(), usecase.SaveProfileInput{
			Name:  args[0],
			Style: entity.DefaultSubtitleStyle(),
		})
		if err != nil {
			return err
		}
		fmt.Printf("saved profile %s (%s)\n", profile.Name, profile.ID)
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		uc := usecase.NewDeleteProfileUseCase(app.Profiles)
		return uc.Execute(app.Context(), entity.ProfileID(args[0]))
	},
}

var profilesRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a saved profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		uc := usecase.NewUpdateProfileUseCase(app.Profiles)
		profile, err := uc.Execute(app.Context(), usecase.UpdateProfileInput{
			ID:   entity.ProfileID(args[0]),
			Name: args[1],
		})
		if err != nil {
			return err
		}
		fmt.Printf("renamed profile %s to %q\n", profile.ID, profile.Name)
		return nil
	},
}

var profilesExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all profiles as JSON (stdout when no file given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		uc := usecase.NewExportProfilesUseCase(app.Profiles)
		data, err := uc.Execute(app.Context())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Println(string(data))
			return nil
		}
		return os.WriteFile(args[0], data, 0o644)
	},
}

var profilesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import profiles from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		uc := usecase.NewImportProfilesUseCase(app.Profiles)
		count, err := uc.Execute(app.Context(), data)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d profile(s)\n", count)
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(
		profilesListCmd, profilesSaveCmd, profilesDeleteCmd,
		profilesRenameCmd, profilesExportCmd, profilesImportCmd,
	)
	rootCmd.AddCommand(profilesCmd)
}
