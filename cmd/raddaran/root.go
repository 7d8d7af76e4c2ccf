package main

import (
	"fmt"
	"os"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bobinette/raddaran/log"
	paperCmd "github.com/bobinette/raddaran/paper/cmd"
)

type Configuration struct {
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
	Paper paperCmd.Configuration `toml:"paper"`
}

var (
	// flags
	env        string
	configFile string

	// logger
	logger log.Logger
)

func init() {
	// Variables from .env are visible to the flag defaults below
	godotenv.Load()

	RootCmd.PersistentFlags().StringVar(&env, "env", envOr("RADDARAN_ENV", "dev"), "environment")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file")
}

var RootCmd = cobra.Command{
	Use:   "raddaran",
	Short: "Organize and share academic papers",
	Long:  "Raddaran keeps the papers of a session: upload, search, edit and generate them from templates",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = log.New(env)

		if configFile == "" {
			configFile = path.Join("configuration", fmt.Sprintf("config.%s.toml", env))
		}
	},
}

func loadConfiguration(filename string) (Configuration, error) {
	var conf Configuration
	conf.Server.Addr = ":1705"

	if _, err := toml.DecodeFile(filename, &conf); err != nil {
		return Configuration{}, err
	}

	if addr := os.Getenv("RADDARAN_ADDR"); addr != "" {
		conf.Server.Addr = addr
	}
	return conf, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
