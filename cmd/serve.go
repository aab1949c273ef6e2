package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edaqa/eda-cli/internal/server"
)

var (
	serveAddr    string
	serveEnvFile string
	serveLogLvl  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quality assessment over HTTP",
	Long: `Start an HTTP server exposing the quality engine:

  GET  /health                  service status
  POST /quality-from-csv        full assessment for an uploaded CSV
  POST /quality-flags-from-csv  just the five quality flags`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogging(serveLogLvl)

		if _, err := os.Stat(serveEnvFile); err == nil {
			if err := godotenv.Load(serveEnvFile); err != nil {
				logger.Warnf("error loading %s: %v", serveEnvFile, err)
			}
		}

		addr := serveAddr
		if addr == "" {
			addr = os.Getenv("LISTEN_ADDR")
		}
		if addr == "" {
			addr = ":8080"
		}

		return server.New(logger).ListenAndServe(addr)
	},
}

func setupLogging(level string) *logrus.Logger {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)

	return logger
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"Listen address (default: $LISTEN_ADDR or :8080)")
	serveCmd.Flags().StringVar(&serveEnvFile, "env-file", ".env",
		"Env file to load before starting")
	serveCmd.Flags().StringVar(&serveLogLvl, "log-level", "info",
		"Log level (debug, info, warn, error)")
}
