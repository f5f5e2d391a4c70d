package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/substyle/substyle/internal/domain/entity"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "Inspect the font catalog and drive the web font loader",
}

var fontsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog fonts by source",
	RunE: func(_ *cobra.Command, _ []string) error {
		printTable := func(header string, table []entity.FontDescriptor) {
			fmt.Printf("%s:\n", header)
			for _, d := range table {
				weights := d.AvailableWeights()
				fmt.Printf("  %-24s %v\n", d.Family, weights)
			}
		}
		printTable("Builtin", app.Catalog.BuiltinFonts())
		printTable("Web", app.Catalog.WebFonts())
		if system := app.Catalog.SystemFonts(); len(system) > 0 {
			printTable("System", system)
		}
		return nil
	},
}

var fontsResolveCmd = &cobra.Command{
	Use:   "resolve <family-or-css-value>",
	Short: "Resolve a family name or CSS stack to its catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		d := app.Catalog.Resolve(args[0])
		if d == nil {
			fmt.Printf("no catalog entry; display name %q\n", app.Catalog.DisplayName(args[0]))
			return nil
		}
		fmt.Printf("family:  %s\nsource:  %s\ncss:     %s\nweights: %v\n",
			d.Family, d.Source, d.CSSValue, d.AvailableWeights())
		return nil
	},
}

var fontsWeightsCmd = &cobra.Command{
	Use:   "weights <family-or-css-value>",
	Short: "Show the available weights for a value",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		fmt.Println(app.Catalog.AvailableWeights(args[0]))
		return nil
	},
}

var fontsLoadCmd = &cobra.Command{
	Use:   "load <family> [weight...]",
	Short: "Fetch and register a web font family",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		family := args[0]
		weights := make([]int, 0, len(args)-1)
		for _, arg := range args[1:] {
			w, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid weight %q", arg)
			}
			weights = append(weights, w)
		}

		ctx := app.Context()
		if err := app.Loader.LoadFamily(ctx, family, weights...); err != nil {
			return err
		}
		fmt.Printf("loaded %s, weights %v\n", family, app.Loader.LoadedWeights(family))
		return nil
	},
}

var fontsEnsureCmd = &cobra.Command{
	Use:   "ensure <family> <weight>",
	Short: "Guarantee a specific weight is registered, reloading if needed",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		weight, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid weight %q", args[1])
		}

		face, err := app.Loader.EnsureWeightLoaded(app.Context(), args[0], weight)
		if err != nil {
			return err
		}
		fmt.Printf("ready: %s@%d (%s)\n", face.Family, face.Weight, face.Status)
		return nil
	},
}

func init() {
	fontsCmd.AddCommand(fontsListCmd, fontsResolveCmd, fontsWeightsCmd, fontsLoadCmd, fontsEnsureCmd)
	rootCmd.AddCommand(fontsCmd)
}
