package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bobinette/raddaran/gin"
	paperCmd "github.com/bobinette/raddaran/paper/cmd"
)

func init() {
	RootCmd.AddCommand(&ServeCommand)
}

var ServeCommand = cobra.Command{
	Use:   "serve",
	Short: "Start a session and serve it over HTTP",
	Long:  "Start a session and serve it over HTTP until interrupted. The papers of the session are lost when it stops.",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := loadConfiguration(configFile)
		if err != nil {
			logger.Fatal("could not load configuration:", err)
		}

		srv := gin.New(env, logger)

		session, err := paperCmd.Start(srv, config.Paper, logger)
		if err != nil {
			logger.Fatal("could not start session:", err)
		}
		defer session.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Run(ctx, config.Server.Addr); err != nil {
			logger.Errorf("server stopped: %v", err)
		}
	},
}
