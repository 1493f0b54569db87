package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yourorg/sdkdoc/internal/config"
	"github.com/yourorg/sdkdoc/internal/docs"
	"github.com/yourorg/sdkdoc/internal/docs/hooks"
	"github.com/yourorg/sdkdoc/internal/generator"
	"github.com/yourorg/sdkdoc/internal/model"
	"github.com/yourorg/sdkdoc/internal/server"
	"github.com/yourorg/sdkdoc/internal/store"
)

const defaultConfigContent = `models:
  dir: "./models"

output:
  dir: "./output"

docs:
  # Parameters the client fills in by itself, e.g. idempotency tokens.
  auto_populated: []
  #  - service: myservice
  #    operation: SampleOperation
  #    param: ClientToken
  hidden: []
  appended: []

filter:
  include: []
  exclude: []

server:
  host: "127.0.0.1"
  port: 3000

log:
  level: "info"
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	cfgPath string
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "sdkdoc",
		Short:         "SDK reference documentation generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.cfgPath, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug output")

	root.AddCommand(newInitCmd())
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newServiceNameCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newDeleteCmd(opts))

	return root
}

// load reads the config and builds the logger every command shares.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if o.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

func (o *rootOptions) openStore(cmd *cobra.Command) (*config.Config, *slog.Logger, *store.SQLiteStore, error) {
	cfg, logger, err := o.load(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return nil, nil, nil, err
	}
	st, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	return cfg, logger, st, nil
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize ~/.sdkdoc directory and default config",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			baseDir := filepath.Join(home, ".sdkdoc")
			if err := os.MkdirAll(baseDir, 0o755); err != nil {
				return err
			}

			cfgFile := filepath.Join(baseDir, "config.yaml")
			if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
				if err := os.WriteFile(cfgFile, []byte(defaultConfigContent), 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "created", cfgFile)
			} else if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "exists", cfgFile)
			} else {
				return err
			}

			dbPath := filepath.Join(baseDir, "sdkdoc.db")
			s, err := store.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "database ready", dbPath)
			return nil
		},
	}
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var modelPath, outDir string
	var operations []string
	var trace bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render reference pages for a service model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			if outDir != "" {
				cfg.Output.Dir = outDir
			}
			if err := cfg.ValidateRender(); err != nil {
				return err
			}

			svc, err := model.Load(modelPath)
			if err != nil {
				return err
			}

			var emitter hooks.Emitter = generator.NewHooks(cfg.Docs, logger)
			var rec *hooks.Recorder
			if trace {
				rec = &hooks.Recorder{Next: emitter}
				emitter = rec
			}

			results, err := generator.Generate(svc, st, generator.Options{
				Operations: operations,
				Filter:     cfg.Filter,
				OutputDir:  cfg.Output.Dir,
				Emitter:    emitter,
				Logger:     logger,
			}, func(stage string) { logger.Info(stage, "service", svc.Name) })
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%s\t%s\tv%d\n", r.Operation, filepath.Join(cfg.Output.Dir, svc.Name, r.File), r.Version)
			}
			if rec != nil {
				for _, ev := range rec.Events() {
					fmt.Fprintln(out, ev)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "service model file (JSON or YAML)")
	cmd.Flags().StringSliceVar(&operations, "operation", nil, "operation to render (repeatable, default all)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides output.dir)")
	cmd.Flags().BoolVar(&trace, "trace", false, "print every documentation event")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func newServiceNameCmd() *cobra.Command {
	var modelPath string
	cmd := &cobra.Command{
		Use:   "service-name",
		Short: "Print the official display name of a service",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := model.Load(modelPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), docs.OfficialServiceName(svc.Metadata))
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "service model file")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func newQueryCmd() *cobra.Command {
	var modelPath string
	cmd := &cobra.Command{
		Use:   "query <jmespath>",
		Short: "Evaluate a JMESPath expression against a raw service model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := model.Query(modelPath, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "service model file")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var host string
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the documentation preview server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			services, err := model.LoadDir(cfg.Models.Dir)
			if err != nil {
				return err
			}
			srv, err := server.New(cfg, st, services, generator.NewHooks(cfg.Docs, logger), logger)
			if err != nil {
				return err
			}
			addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
			logger.Info("serving", "addr", addr, "services", len(services))
			return srv.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "server host")
	cmd.Flags().IntVar(&port, "port", 3000, "server port")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var service string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			renders, err := st.ListRenders(service)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range renders {
				fmt.Fprintf(out, "%s\t%s\tv%d\t%s\n", r.Service, r.Operation, r.Version, r.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&service, "service", "", "only list renders of this service")
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var service, operation string
	var version int
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a stored render",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			r, err := st.GetRender(service, operation, version)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), r.Body)
			return err
		},
	}
	cmd.Flags().StringVar(&service, "service", "", "service name")
	cmd.Flags().StringVar(&operation, "operation", "", "operation name")
	cmd.Flags().IntVar(&version, "version", 0, "version number (default latest)")
	_ = cmd.MarkFlagRequired("service")
	_ = cmd.MarkFlagRequired("operation")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	var service string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every stored render of a service",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.DeleteService(service); err != nil {
				return err
			}
			logger.Info("deleted renders", "service", service)
			return nil
		},
	}
	cmd.Flags().StringVar(&service, "service", "", "service name")
	_ = cmd.MarkFlagRequired("service")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
