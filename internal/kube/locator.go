package kube

import (
	"context"
	"regexp"
	"sort"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"

	"github.com/giantswarm/etcd-cleaner/pkg/logging"
)

// PodLocator finds pods by name through the core/v1 API.
type PodLocator struct {
	pods corev1client.PodsGetter
}

// NewPodLocator returns a PodLocator backed by clientset.
func NewPodLocator(clientset kubernetes.Interface) *PodLocator {
	return &PodLocator{pods: clientset.CoreV1()}
}

// Locate returns the sorted names of pods in namespace matching pattern. A
// NotFound answer from the API counts as an empty list. An empty result is
// reported as *NoMatchError.
func (l *PodLocator) Locate(ctx context.Context, namespace string, pattern *regexp.Regexp) ([]string, error) {
	list, err := l.pods.Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return nil, &APIError{Op: "list pods in " + namespace, Err: err}
	}

	var names []string
	if list != nil {
		for _, p := range list.Items {
			if pattern.MatchString(p.Name) {
				names = append(names, p.Name)
			}
		}
	}
	if len(names) == 0 {
		return nil, &NoMatchError{Namespace: namespace, Pattern: pattern.String()}
	}

	sort.Strings(names)
	logging.Debug("PodLocator", "%d pods in %s match /%s/", len(names), namespace, pattern)
	return names, nil
}
