package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

var (
	analysisJSON bool
	importName   string
)

var analysisCmd = &cobra.Command{
	Use:     "analysis",
	Aliases: []string{"analyses"},
	Short:   "Manage the analysis library",
	Long: `Import, list, inspect and delete stored analyses.

An analysis is the JSON document produced by the music emotion pipeline:
emotion scores, per-plane brain slices and optional voxel activation data.`,
}

var analysisImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import an analysis file into the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysisImport,
}

var analysisListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses",
	Args:  cobra.NoArgs,
	RunE:  runAnalysisList,
}

var analysisShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show details of a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysisShow,
}

var analysisDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysisDelete,
}

func init() {
	analysisImportCmd.Flags().StringVar(&importName, "name", "", "display name (default: file name)")
	for _, c := range []*cobra.Command{analysisImportCmd, analysisListCmd, analysisShowCmd} {
		c.Flags().BoolVar(&analysisJSON, "json", false, "output as JSON")
	}
	analysisCmd.AddCommand(analysisImportCmd, analysisListCmd, analysisShowCmd, analysisDeleteCmd)
	rootCmd.AddCommand(analysisCmd)
}

func runAnalysisImport(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	name := importName
	if name == "" {
		name = datasetName(path)
	}
	result, err := analysisService.Import(commandContext(cmd), f, name)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if analysisJSON {
		return printJSON(cmd, result)
	}
	cmd.Printf("Imported %s (%s)\n", result.Summary.Name, result.Summary.ID)
	if result.SkippedVoxels > 0 || result.SkippedSlices > 0 {
		cmd.Printf("  Skipped %d malformed voxels, %d malformed slices\n", result.SkippedVoxels, result.SkippedSlices)
	}
	return nil
}

func runAnalysisList(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	summaries, err := analysisService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}
	if analysisJSON {
		if summaries == nil {
			summaries = []domain.AnalysisSummary{}
		}
		return printJSON(cmd, summaries)
	}

	if len(summaries) == 0 {
		cmd.Println("No analyses imported.")
		cmd.Println("Use 'brainview analysis import <file>' to add one.")
		return nil
	}

	cmd.Println("Analyses:")
	cmd.Println()
	for i := range summaries {
		s := summaries[i]
		cmd.Printf("  %s  %-24s %s  %6s %6d voxels", s.ID, s.Name, s.CreatedAt.Format(time.DateOnly), s.Shape, s.VoxelCount)
		if s.Dominant != "" {
			cmd.Printf("  %s %.0f%%", s.Dominant, s.DominantPct*100)
		}
		cmd.Println()
	}
	return nil
}

func runAnalysisShow(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	result, err := analysisService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get analysis: %w", err)
	}
	summary := result.Summarise()
	stats := analysisService.Summarise(result)

	if analysisJSON {
		return printJSON(cmd, map[string]any{
			"summary":    summary,
			"emotions":   result.Emotions,
			"activation": stats,
		})
	}

	cmd.Printf("Analysis: %s\n", summary.Name)
	cmd.Printf("  ID:       %s\n", summary.ID)
	if summary.Source != "" {
		cmd.Printf("  Source:   %s\n", summary.Source)
	}
	cmd.Printf("  Created:  %s\n", summary.CreatedAt.Format(time.RFC3339))
	cmd.Printf("  Shape:    %s\n", summary.Shape)
	if len(summary.Planes) > 0 {
		cmd.Printf("  Planes:   %v\n", summary.Planes)
	}
	cmd.Println()

	cmd.Println("Emotions:")
	labels := make([]domain.EmotionLabel, 0, len(result.Emotions))
	for label := range result.Emotions {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return result.Emotions[labels[i]] > result.Emotions[labels[j]] })
	for _, label := range labels {
		cmd.Printf("  %-10s %5.1f%%\n", label, result.Emotions[label]*100)
	}
	cmd.Println()

	cmd.Println("Activation:")
	if stats.Count == 0 {
		cmd.Println("  No voxel data")
		return nil
	}
	cmd.Printf("  Samples:     %d (%d significant)\n", stats.Count, stats.Significant)
	cmd.Printf("  Mean:        %.3f (sd %.3f)\n", stats.Mean, stats.StdDev)
	cmd.Printf("  Median:      %.3f\n", stats.Median)
	cmd.Printf("  P90 / Max:   %.3f / %.3f\n", stats.P90, stats.Max)
	return nil
}

func runAnalysisDelete(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}
	if err := analysisService.Delete(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	cmd.Printf("Deleted analysis %s\n", args[0])
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
