package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/gallformers/internal/config"
	"github.com/kailas-cloud/gallformers/internal/db/driver"
	logpkg "github.com/kailas-cloud/gallformers/internal/logger"
	gallrepo "github.com/kailas-cloud/gallformers/internal/repository/gall"
	glossrepo "github.com/kailas-cloud/gallformers/internal/repository/glossary"
	"github.com/kailas-cloud/gallformers/internal/seed"
)

type seedOptions struct {
	file       string
	configPath string
	env        string
	force      bool
}

func newSeedCmd() *cobra.Command {
	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load glossary entries and galls into storage",
		Long: `Reads a YAML dataset and upserts every glossary entry and gall into the
store configured for the environment. A dataset identical to the last one
applied is skipped unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", DefaultDataFile, "YAML dataset")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: config/<env>.yaml)")
	cmd.Flags().StringVar(&opts.env, "env", config.GetEnv(), "environment name")
	cmd.Flags().BoolVar(&opts.force, "force", false, "apply even if the dataset is unchanged")
	return cmd
}

func runSeed(cmd *cobra.Command, opts seedOptions) error {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load(opts.env)
	}
	if err != nil {
		return err
	}

	logger, err := logpkg.NewLogger(opts.env, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	d, err := seed.LoadFile(opts.file)
	if err != nil {
		return err
	}

	store, err := driver.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	loader := seed.NewLoader(
		glossrepo.New(store, cfg.Storage.KeyPrefix),
		gallrepo.New(store, cfg.Storage.KeyPrefix),
		store,
		cfg.Storage.KeyPrefix,
		logger,
	)
	rep, err := loader.Load(ctx, d, opts.force)
	if err != nil {
		return err
	}

	if rep.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "Dataset unchanged (%s), nothing to do.\n", rep.Checksum[:12])
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Glossary: %d created, %d updated\n", rep.GlossaryCreated, rep.GlossaryUpdated)
	fmt.Fprintf(cmd.OutOrStdout(), "Galls:    %d created, %d updated\n", rep.GallsCreated, rep.GallsUpdated)
	return nil
}
