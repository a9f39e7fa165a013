package kube

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
)

// NewClientset discovers the cluster configuration and builds a clientset.
func NewClientset() (kubernetes.Interface, *rest.Config, error) {
	config, err := ctrl.GetConfig()
	if err != nil {
		return nil, nil, &APIError{Op: "load config", Err: err}
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, &APIError{Op: "create client", Err: fmt.Errorf("failed to create Kubernetes client: %w", err)}
	}
	return clientset, config, nil
}
