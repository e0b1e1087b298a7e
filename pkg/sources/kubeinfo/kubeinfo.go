// Package kubeinfo publishes live cluster health values for the kube tile:
// node readiness and pod phase counts from the current kubeconfig context.
// A read performs fresh List calls against the API server.
package kubeinfo

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
	"gitlab.com/tinyland/lab/tile-pulse/pkg/sources"
)

// Client abstracts the Kubernetes API calls this source needs, so tests
// can inject fixtures instead of a cluster.
type Client interface {
	ListNodes(ctx context.Context) ([]corev1.Node, error)
	ListPods(ctx context.Context, namespace string) ([]corev1.Pod, error)
}

// realClient wraps a kubernetes.Clientset.
type realClient struct {
	cs kubernetes.Interface
}

func (r *realClient) ListNodes(ctx context.Context) ([]corev1.Node, error) {
	list, err := r.cs.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (r *realClient) ListPods(ctx context.Context, namespace string) ([]corev1.Pod, error) {
	list, err := r.cs.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

// NewClient builds a Client from a kubeconfig path and context name. Empty
// values fall back to the default loading rules (KUBECONFIG env,
// ~/.kube/config, in-cluster).
func NewClient(kubeconfig, ctxName string) (Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}
	overrides := &clientcmd.ConfigOverrides{}
	if ctxName != "" {
		overrides.CurrentContext = ctxName
	}
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("kubeinfo: build client config: %w", err)
	}
	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("kubeinfo: create clientset: %w", err)
	}
	return &realClient{cs: cs}, nil
}

// Snapshot is one observation of cluster health, the unit the kube tile
// renders.
type Snapshot struct {
	NodesReady  int
	NodesTotal  int
	PodsRunning int
	PodsPending int
	PodsFailed  int
	PodsTotal   int
}

// Source builds kube values against a Client.
type Source struct {
	client    Client
	namespace string // empty = all namespaces
	timeout   time.Duration
}

// New returns a Source reading through client. An empty namespace queries
// all namespaces.
func New(client Client, namespace string) *Source {
	return &Source{client: client, namespace: namespace, timeout: 10 * time.Second}
}

// Snapshot performs one round of List calls and folds the results into
// counts.
func (s *Source) Snapshot(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	nodes, err := s.client.ListNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("kubeinfo: list nodes: %w", err)
	}
	pods, err := s.client.ListPods(ctx, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("kubeinfo: list pods: %w", err)
	}

	snap := &Snapshot{NodesTotal: len(nodes), PodsTotal: len(pods)}
	for _, n := range nodes {
		if nodeReady(n) {
			snap.NodesReady++
		}
	}
	for _, p := range pods {
		switch p.Status.Phase {
		case corev1.PodRunning:
			snap.PodsRunning++
		case corev1.PodPending:
			snap.PodsPending++
		case corev1.PodFailed:
			snap.PodsFailed++
		}
	}
	return snap, nil
}

func nodeReady(n corev1.Node) bool {
	for _, cond := range n.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

func (s *Source) snapshotValue(jit.Args) (any, error) {
	return s.Snapshot(context.Background())
}

// NodesReady is the count of Ready nodes.
func (s *Source) NodesReady() *jit.Command {
	return jit.MustCommand(s.snapshotValue, jit.WithField("NodesReady"))
}

// NodesTotal is the count of all nodes.
func (s *Source) NodesTotal() *jit.Command {
	return jit.MustCommand(s.snapshotValue, jit.WithField("NodesTotal"))
}

// PodsRunning is the count of Running pods in scope.
func (s *Source) PodsRunning() *jit.Command {
	return jit.MustCommand(s.snapshotValue, jit.WithField("PodsRunning"))
}

// PodsFailed is the count of Failed pods in scope.
func (s *Source) PodsFailed() *jit.Command {
	return jit.MustCommand(s.snapshotValue, jit.WithField("PodsFailed"))
}

// Catalog returns the named kube values.
func (s *Source) Catalog() sources.Catalog {
	return sources.Catalog{
		"nodes.ready":  s.NodesReady(),
		"nodes.total":  s.NodesTotal(),
		"pods.running": s.PodsRunning(),
		"pods.failed":  s.PodsFailed(),
	}
}
