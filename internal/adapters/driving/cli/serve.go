package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/brainview-cli/internal/core/services"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis library and region info over HTTP",
	Long: `Start the HTTP API.

Endpoints:
  GET /health
  GET /api/info/regions?region=KEY
  GET /api/analyses
  GET /api/analyses/{id}
  GET /api/analyses/{id}/views/{mode}
  GET /api/analyses/{id}/views/{mode}/slices/{index}
  GET /api/analyses/{id}/export/{plane}
  GET /api/analyses/{id}/histogram.png
  GET /api/analyses/{id}/stream          (websocket, volumetric frames)

Another brainview can use this server as its remote region source by
setting regions.source to http and regions.base_url to this address.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", httpapi.DefaultAddr, "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if analysisService == nil || regionDirectory == nil {
		return errors.New("services not configured")
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Analysis: analysisService,
		Regions:  regionDirectory,
		Views:    viewResolver,
		Scenes:   streamScenes(),
	})
	if err != nil {
		return err
	}

	cmd.Printf("Listening on http://localhost%s\n", serveAddr)
	return server.Run(commandContext(cmd), serveAddr)
}

// streamScenes returns the scene builder for the frame stream, if any.
func streamScenes() *services.SceneBuilder {
	if viewConfig == nil {
		return nil
	}
	return viewConfig.Scenes
}
