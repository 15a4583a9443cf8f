package cmd

import (
	"github.com/spf13/cobra"

	"vod-packager/config"
	server2 "vod-packager/server"
)

func server(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "start event consumer and http server",
		Run: func(cmd *cobra.Command, args []string) {
			server2.RunHttp(config)
		},
	}
}
