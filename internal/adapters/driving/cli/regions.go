package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

var regionsJSON bool

var regionsCmd = &cobra.Command{
	Use:     "regions",
	Aliases: []string{"region"},
	Short:   "Look up brain region information",
}

var regionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known region keys",
	Args:  cobra.NoArgs,
	RunE:  runRegionsList,
}

var regionsInfoCmd = &cobra.Command{
	Use:   "info [region]",
	Short: "Show what a region does and how it relates to music",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegionsInfo,
}

func init() {
	regionsListCmd.Flags().BoolVar(&regionsJSON, "json", false, "output as JSON")
	regionsInfoCmd.Flags().BoolVar(&regionsJSON, "json", false, "output as JSON")
	regionsCmd.AddCommand(regionsListCmd, regionsInfoCmd)
	rootCmd.AddCommand(regionsCmd)
}

func runRegionsList(cmd *cobra.Command, _ []string) error {
	if regionDirectory == nil {
		return errors.New("region directory not configured")
	}

	keys := regionDirectory.Keys()
	if regionsJSON {
		if keys == nil {
			keys = []domain.RegionKey{}
		}
		return printJSON(cmd, keys)
	}
	if len(keys) == 0 {
		cmd.Println("The configured region source cannot list regions.")
		return nil
	}
	for _, k := range keys {
		cmd.Println(k)
	}
	return nil
}

func runRegionsInfo(cmd *cobra.Command, args []string) error {
	if regionDirectory == nil {
		return errors.New("region directory not configured")
	}

	info, err := regionDirectory.Info(commandContext(cmd), domain.RegionKey(args[0]))
	if err != nil {
		return fmt.Errorf("region lookup failed: %w", err)
	}
	if regionsJSON {
		return printJSON(cmd, info)
	}

	cmd.Println(info.Name)
	cmd.Println(strings.Repeat("=", len(info.Name)))
	cmd.Println(info.Description)
	cmd.Println()
	if len(info.Functions) > 0 {
		cmd.Println("Functions:")
		for _, fn := range info.Functions {
			cmd.Printf("  - %s\n", fn)
		}
		cmd.Println()
	}
	if info.MusicRelation != "" {
		cmd.Println("Music:")
		cmd.Printf("  %s\n", info.MusicRelation)
		cmd.Println()
	}
	if emotions := info.DisplayEmotions(); len(emotions) > 0 {
		names := make([]string, len(emotions))
		for i, e := range emotions {
			names[i] = string(e)
		}
		cmd.Printf("Emotions: %s\n", strings.Join(names, ", "))
	}
	return nil
}
