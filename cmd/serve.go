package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"glossa/internal/apihandlers"
)

var (
	serveAddr string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run Glossa as an HTTP API server",
	Long: `Starts an HTTP server exposing the four analyses (language, lexical,
entities, sentiment) as a RESTful API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default()
		apihandlers.NewAPIHandler(appInstance.Analyzer).RegisterRoutes(router)

		addr := serveAddr
		if addr == "" {
			addr = appInstance.Config.Serve.Addr
		}
		port := servePort
		if port == "" {
			port = appInstance.Config.Serve.Port
		}
		listenAddr := fmt.Sprintf("%s:%s", addr, port)
		log.Infof("starting Glossa API server on http://%s", listenAddr)

		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
