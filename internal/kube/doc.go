// Package kube is the Kubernetes I/O boundary of etcd-cleaner.
//
// It offers two operations and no business logic:
//
//   - PodLocator.Locate lists the pods of a namespace whose names match a
//     regular expression.
//   - PodExecutor.Exec runs a command inside a pod container and returns the
//     non-empty lines of its standard output.
//
// Both are reached through the Locator and RemoteExecutor interfaces so the
// listers and the applier can be exercised without a cluster.
//
// # Configuration discovery
//
// NewClientset uses controller-runtime's standard discovery: the KUBECONFIG
// environment variable, in-cluster service account credentials, then
// ~/.kube/config.
//
// # Errors
//
// Failures are typed so callers can classify them with errors.As:
//
//   - *APIError: the API server could not be reached or answered with an
//     unexpected status.
//   - *NoMatchError: no pod matched the requested pattern.
//   - *ExecError: the pod is gone or the command itself failed.
package kube
