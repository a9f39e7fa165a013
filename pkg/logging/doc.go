// Package logging provides the structured logger used across etcd-cleaner.
//
// It is a thin layer over Go's slog package. Every entry carries a subsystem
// attribute so output from the pod locator, the exec layer and the
// reconciliation engine can be told apart:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Registry", "listed %d keys under %s", n, prefix)
//	logging.Warn("Normalizer", "%s has no embedded address", name)
//	logging.Error("Applier", err, "delete of %s failed", key)
//
// InitForCLI also installs the same handler as the controller-runtime logger
// and as klog's backend, so client-go's own diagnostics (config discovery,
// SPDY exec) share one format and level.
//
// Levels are Debug, Info, Warn and Error; ParseLevel accepts their
// lower-case names for use in configuration files and environment variables.
package logging
