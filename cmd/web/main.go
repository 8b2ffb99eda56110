package main

import (
	"fmt"
	"net"
	"os"
	"os/user"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/gws-tools/scubacfg/pkg/server"
	"github.com/gws-tools/scubacfg/pkg/services/catalog"
	"github.com/gws-tools/scubacfg/pkg/services/profiles"
	"github.com/gws-tools/scubacfg/pkg/services/session"
	"github.com/gws-tools/scubacfg/pkg/services/settings"
)

var (
	baselinesDir string
	profilesPath string
	defaultsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the configuration builder web API",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultProfiles := fmt.Sprintf("%s/.scubacfg/profiles", usr.HomeDir)

	rootCmd.Flags().StringVarP(&baselinesDir, "baselines", "b", "",
		"Directory of baseline markdown documents (defaults to the embedded catalog)")
	rootCmd.Flags().StringVarP(&profilesPath, "profiles", "p", defaultProfiles,
		"Path to the auth profiles file (default is $HOME/.scubacfg/profiles)")
	rootCmd.Flags().StringVarP(&defaultsPath, "defaults", "d", "",
		"Path to a builder defaults file (yaml/toml/json, viper-style)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	var (
		registry catalog.Registry
		err      error
	)
	if baselinesDir != "" {
		registry, err = catalog.NewRegistry(ctx, baselinesDir)
		if err != nil {
			return fmt.Errorf("failed to load baselines: %w", err)
		}
		logger.Info().Msgf("Baselines loaded from `%s`.", baselinesDir)
	} else {
		registry, err = catalog.NewEmbeddedRegistry()
		if err != nil {
			return fmt.Errorf("failed to load embedded catalog: %w", err)
		}
		logger.Info().Msg("Using embedded baseline catalog.")
	}

	cat, err := registry.Catalog(ctx)
	if err != nil {
		return err
	}
	names, _ := registry.Baselines(ctx)
	for _, name := range names {
		logger.Info().Msgf("Baseline: `%s`, policies: %d", name, len(cat[name]))
	}

	var profileReg profiles.Registry
	profileReg, err = profiles.NewRegistry(profilesPath)
	if err != nil {
		logger.Warn().Msgf("No auth profiles loaded from `%s`: %v", profilesPath, err)
		profileReg = nil
	}

	var defaultOutput *domain.OutputSettings
	if defaultsPath != "" {
		defaults, err := settings.LoadDefaults(defaultsPath)
		if err != nil {
			return fmt.Errorf("failed to load defaults: %w", err)
		}
		output := defaults.Output()
		defaultOutput = &output
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Sessions: session.NewStore(cat, defaultOutput),
			Catalog:  registry,
			Profiles: profileReg,
		},
	})

	return api.Start()
}
