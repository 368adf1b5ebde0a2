package cmd

import (
	"errors"
	"fmt"
	log2 "log"
	"net/http"
	"os"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/eximware/erp-data-api/config"
	"github.com/eximware/erp-data-api/endpoint"
	"github.com/eximware/erp-data-api/log"
	"github.com/eximware/erp-data-api/rest"
)

// Environment variables prefixed with "ERP_API_" can override settings
// e.g. "ERP_API_HOST"
const envVarPrefix = "erp_api"

var cfgFile string
var logger log.Logger
var cfg *endpoint.DataEndpointConfig

var serverCmd = &cobra.Command{
	Use:   os.Args[0] + " --host [HOST] --database [DATABASE] [OPTIONS]",
	Short: "Filter-driven search API for the ERP record store",
	Args: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("host") == "" {
			return errors.New("host is required")
		}
		if viper.GetString("database") == "" {
			return errors.New("database is required")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataEndpoint := createEndpoint()

		router := createRouter()
		for _, route := range rest.Routes(dataEndpoint, logger) {
			router.Handler(route.Method, route.Pattern, route.Handler)
		}

		listenAndServe(router, viper.GetInt("port"))
	},
}

// Execute starts the search API server.
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := serverCmd.PersistentFlags()

	flags.StringVarP(&cfgFile, "config", "c", "", "config file")
	flags.StringP("host", "t", "", "host for connecting to the record store")
	flags.StringP("username", "u", "", "connect with database username")
	flags.StringP("password", "p", "", "database user's password")
	flags.String("database", "", "database holding the record store tables")
	flags.Int("db-port", endpoint.DefaultDbPort, "record store port")
	flags.Int("port", 8080, "port to bind the endpoint to")
	flags.Int("default-limit", config.DefaultResultLimit, "result limit applied when a search does not specify one")
	flags.Int("max-limit", config.MaxResultLimit, "hard cap on the result limit")
	flags.Bool("reference-samples", true, "attach record identifiers to small count results")
	flags.Bool("request-logging", false, "enable request logging")
	flags.String("access-control-allow-origin", "", "Access-Control-Allow-Origin header value")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			_ = viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := serverCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createEndpoint() *endpoint.DataEndpoint {
	cfg = endpoint.NewEndpointConfigWithLogger(logger, viper.GetString("host"))

	cfg.
		WithDbUsername(viper.GetString("username")).
		WithDbPassword(viper.GetString("password")).
		WithDbName(viper.GetString("database")).
		WithDbPort(viper.GetInt("db-port")).
		WithDefaultLimit(viper.GetInt("default-limit")).
		WithMaxLimit(viper.GetInt("max-limit")).
		WithReferenceSamples(viper.GetBool("reference-samples"))

	dataEndpoint, err := cfg.NewEndpoint()
	if err != nil {
		logger.Fatal("unable to create new endpoint",
			"error", err)
	}

	return dataEndpoint
}

func maybeAddRequestLogging(handler http.Handler) http.Handler {
	if viper.GetBool("request-logging") {
		handler = log.NewLoggingHandler(handler, logger)
	}
	return handler
}

func maybeAddCORS(handler http.Handler) http.Handler {
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", value)
			handler.ServeHTTP(w, r)
		})
	}
	return handler
}

func initialize() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			logger.Info("using config file",
				"file", viper.ConfigFileUsed())
		}
	}
}

func createRouter() *httprouter.Router {
	router := httprouter.New()
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Access-Control-Request-Method") != "" {
				header := w.Header()
				header.Set("Access-Control-Allow-Method", r.Header.Get("Access-Control-Request-Method"))
				header.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
				header.Set("Access-Control-Allow-Origin", value)
			}

			w.WriteHeader(http.StatusNoContent)
		})
	}
	return router
}

func listenAndServe(handler http.Handler, port int) {
	logger.Info("server listening",
		"port", port)
	handler = maybeAddCORS(maybeAddRequestLogging(handler))
	err := http.ListenAndServe(fmt.Sprintf(":%d", port), handler)
	if err != nil {
		logger.Fatal("unable to start server",
			"port", port,
			"error", err)
	}
}
