package main

import (
	"github.com/spf13/cobra"

	"svgserve/internal/config"
	"svgserve/internal/version"
)

var (
	bindFlag   string
	portFlag   int
	indexFlag  string
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "svgserve [flags] [path]",
	Short: "Serve a directory of SVG files over HTTP",
	Long: `svgserve exposes a single local directory of SVG files over HTTP.
Requests for / redirect to a configurable index route, every other path is
resolved read-only against the served directory, and /view/<page> renders
an HTML page embedding a width-normalized copy of an SVG.`,
	Args:         cobra.MaximumNArgs(1),
	Version:      version.Info(),
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.SetVersionTemplate("svgserve version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default: user config dir)")
	registerServeFlags(rootCmd)
}

// registerServeFlags binds the serving flags; split out so tests can build
// an equivalent command
func registerServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&bindFlag, "bind", "b", config.DefaultBindAddress, "Bind address to listen on")
	cmd.Flags().IntVarP(&portFlag, "port", "p", config.DefaultPort, "Port to listen on")
	cmd.Flags().StringVarP(&indexFlag, "index", "i", config.DefaultIndexRoute, "Route to redirect / to")
}

// buildConfig assembles the effective configuration for the process.
// Precedence per field: CLI flag (when set) > environment > config file >
// default. The returned config is validated and its root canonicalized, so
// it is ready to share read-only with every request handler.
func buildConfig(cmd *cobra.Command, args []string) (*config.ServerConfig, error) {
	result, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	cfg := result.Config

	if _, err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("bind") {
		cfg.BindAddress = bindFlag
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = portFlag
	}
	if cmd.Flags().Changed("index") {
		cfg.IndexRoute = indexFlag
	}
	if len(args) == 1 {
		cfg.RootDir = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.CanonicalizeRoot(); err != nil {
		return nil, err
	}

	return cfg, nil
}
