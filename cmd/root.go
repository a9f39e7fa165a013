package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/giantswarm/etcd-cleaner/internal/cleaner"
	"github.com/giantswarm/etcd-cleaner/internal/config"
	"github.com/giantswarm/etcd-cleaner/internal/kube"
	"github.com/giantswarm/etcd-cleaner/pkg/logging"
)

// Exit codes for the CLI.
const (
	// ExitCodeSuccess indicates a successful dry run or apply.
	ExitCodeSuccess = 0
	// ExitCodeError indicates any fatal condition.
	ExitCodeError = 1
)

// rootCmd is the only command. Its single optional argument selects the mode.
var rootCmd = &cobra.Command{
	Use:   "etcd-cleaner [apply]",
	Short: "Remove stale Calico node records from etcd",
	Long: `etcd-cleaner compares the nodes reported by the calico-node agents with
the host records Calico keeps in etcd and lists the records that belong to
nodes no longer in the cluster.

By default nothing is changed. Pass the literal argument "apply" to delete
the listed records:

  etcd-cleaner         # dry run, print the plan
  etcd-cleaner apply   # delete the stale records

Configuration is read from $ETCD_CLEANER_CONFIG or
~/.config/etcd-cleaner/config.yaml when present.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runClean,
}

// backend builds the Kubernetes boundary. Tests replace it.
var backend = func(cfg config.Config) (kube.Locator, kube.RemoteExecutor, error) {
	clientset, restConfig, err := kube.NewClientset()
	if err != nil {
		return nil, nil, err
	}
	return kube.NewPodLocator(clientset), kube.NewPodExecutor(clientset, restConfig, cfg.CommandTimeout), nil
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the root command and exits non-zero on failure.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "etcd-cleaner version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps an error returned by the root command to an exit code.
// Every fatal condition, whatever its kind, exits with ExitCodeError.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	return ExitCodeError
}

func runClean(cmd *cobra.Command, args []string) error {
	logging.InitForCLI(logging.LevelInfo, cmd.ErrOrStderr())

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Bootstrap", err, "invalid configuration")
		return err
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.InitForCLI(level, cmd.ErrOrStderr())

	opts, err := cleaner.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	locator, exec, err := backend(cfg)
	if err != nil {
		err = &cleaner.FatalError{Kind: cleaner.KindConnectivity, Op: "connect to cluster", Err: err}
		logging.Error("Bootstrap", err, "cannot reach the Kubernetes API")
		return err
	}

	mode := cleaner.ParseMode(args)
	c := cleaner.New(opts, locator, exec, cmd.OutOrStdout(), newProgress(cmd.ErrOrStderr()))
	if _, err := c.Run(cmd.Context(), mode); err != nil {
		logging.Error("Bootstrap", err, "%s pass failed", mode)
		return err
	}
	return nil
}
