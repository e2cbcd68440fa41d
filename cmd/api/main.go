package main

import (
	"fmt"
	"os"

	"bookstore-graphql/internal/config"
	"bookstore-graphql/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var v *viper.Viper

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v = config.NewViper()

	root := &cobra.Command{
		Use:           "bookstore",
		Short:         "Bookstore GraphQL API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the GraphQL HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			logger.Init(cfg.App.Environment, cfg.App.LogLevel)
			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			return Serve(cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("port", "", "HTTP port (APP_PORT)")
	flags.String("db-driver", "", "relational driver: postgres, pq, sqlite or memory (DB_DRIVER)")
	flags.String("doc-driver", "", "document driver: mongo or memory (DOC_DRIVER)")
	flags.Bool("playground", true, "serve the GraphQL playground at / (GRAPHQL_PLAYGROUND)")

	mustBind("APP_PORT", cmd, "port")
	mustBind("DB_DRIVER", cmd, "db-driver")
	mustBind("DOC_DRIVER", cmd, "doc-driver")
	mustBind("GRAPHQL_PLAYGROUND", cmd, "playground")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), v.GetString("APP_NAME"), v.GetString("APP_VERSION"))
		},
	}
}

// mustBind lets a flag override its environment key, only when set.
func mustBind(key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}
