package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"arbor/logging"
	"arbor/server"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

type serveCmdConfig struct {
	*rootCmdConfig
	treeSourceConfig
	addr string
}

func serveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &serveCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a classifier tree over HTTP",
		Long:  `Load a classifier tree and expose it as an HTTP service with a POST /classify endpoint that labels batches of samples`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if err := config.serve(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.addr), "addr", "a", "", "address to listen on (defaults to the ARBOR_ADDR environment variable)")
	config.treeSourceConfig.declareFlags(cmd.Flags())
	return cmd
}

func (scc *serveCmdConfig) serve() error {
	var cfg server.Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing server config: %v", err)
	}
	if scc.addr != "" {
		cfg.Addr = scc.addr
	}

	logger := logging.NewLogger(scc.verbose)
	defer logger.Sync()
	ctx := logging.WithLogger(context.Background(), logger)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Infof("shutdown signal received")
		cancel()
	}()

	t, err := scc.loadTree(ctx)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg.Addr)
	if err != nil {
		return fmt.Errorf("server.New: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/classify", server.NewClassifyHandler(&cfg, t))
	mux.Handle("/health", server.HandleHealth(ctx))

	logger.Infof("serving classifier on %s", srv.Addr())
	return srv.ServeHTTPHandler(ctx, mux)
}
