package kube

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func pod(namespace, name string) *corev1.Pod {
	return &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name}}
}

var calicoNodePattern = regexp.MustCompile(`^calico-node-[a-zA-Z0-9]{5}$`)

func TestPodLocator_Locate(t *testing.T) {
	cs := fake.NewSimpleClientset(
		pod("kube-system", "calico-node-zz9x1"),
		pod("kube-system", "calico-node-ab12c"),
		pod("kube-system", "calico-node-ab12c-extra"),
		pod("kube-system", "calico-kube-controllers-7d4b9"),
		pod("default", "calico-node-qwert"),
	)
	locator := NewPodLocator(cs)

	names, err := locator.Locate(context.Background(), "kube-system", calicoNodePattern)
	require.NoError(t, err)
	assert.Equal(t, []string{"calico-node-ab12c", "calico-node-zz9x1"}, names)
}

func TestPodLocator_NoMatch(t *testing.T) {
	cs := fake.NewSimpleClientset(pod("kube-system", "coredns-5d78c"))
	locator := NewPodLocator(cs)

	_, err := locator.Locate(context.Background(), "kube-system", calicoNodePattern)
	require.Error(t, err)

	var noMatch *NoMatchError
	require.True(t, errors.As(err, &noMatch))
	assert.Equal(t, "kube-system", noMatch.Namespace)
	assert.Equal(t, calicoNodePattern.String(), noMatch.Pattern)
}

func TestPodLocator_NotFoundIsEmpty(t *testing.T) {
	cs := fake.NewSimpleClientset()
	cs.PrependReactor("list", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrors.NewNotFound(schema.GroupResource{Resource: "pods"}, "")
	})
	locator := NewPodLocator(cs)

	_, err := locator.Locate(context.Background(), "kube-system", calicoNodePattern)
	var noMatch *NoMatchError
	assert.True(t, errors.As(err, &noMatch), "expected NoMatchError, got %v", err)
}

func TestPodLocator_APIError(t *testing.T) {
	cs := fake.NewSimpleClientset()
	cs.PrependReactor("list", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrors.NewForbidden(schema.GroupResource{Resource: "pods"}, "", errors.New("rbac"))
	})
	locator := NewPodLocator(cs)

	_, err := locator.Locate(context.Background(), "kube-system", calicoNodePattern)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	assert.True(t, apierrors.IsForbidden(err))
}
