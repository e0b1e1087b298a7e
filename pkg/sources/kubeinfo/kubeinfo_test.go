package kubeinfo

import (
	"context"
	"errors"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/jit"
)

// mockClient implements Client with configurable fixtures.
type mockClient struct {
	nodes    []corev1.Node
	nodesErr error
	pods     []corev1.Pod
	podsErr  error
	calls    int
}

func (m *mockClient) ListNodes(_ context.Context) ([]corev1.Node, error) {
	m.calls++
	return m.nodes, m.nodesErr
}

func (m *mockClient) ListPods(_ context.Context, _ string) ([]corev1.Pod, error) {
	return m.pods, m.podsErr
}

func node(name string, ready bool) corev1.Node {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: status},
			},
		},
	}
}

func pod(name string, phase corev1.PodPhase) corev1.Pod {
	return corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status:     corev1.PodStatus{Phase: phase},
	}
}

func fixtureClient() *mockClient {
	return &mockClient{
		nodes: []corev1.Node{
			node("cp-1", true),
			node("worker-1", true),
			node("worker-2", false),
		},
		pods: []corev1.Pod{
			pod("api-0", corev1.PodRunning),
			pod("api-1", corev1.PodRunning),
			pod("job-x", corev1.PodPending),
			pod("crashed", corev1.PodFailed),
			pod("done", corev1.PodSucceeded),
		},
	}
}

func TestSnapshotCounts(t *testing.T) {
	src := New(fixtureClient(), "")

	snap, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}

	if snap.NodesTotal != 3 || snap.NodesReady != 2 {
		t.Errorf("nodes = %d ready of %d, want 2 of 3", snap.NodesReady, snap.NodesTotal)
	}
	if snap.PodsTotal != 5 {
		t.Errorf("PodsTotal = %d, want 5", snap.PodsTotal)
	}
	if snap.PodsRunning != 2 {
		t.Errorf("PodsRunning = %d, want 2", snap.PodsRunning)
	}
	if snap.PodsPending != 1 {
		t.Errorf("PodsPending = %d, want 1", snap.PodsPending)
	}
	if snap.PodsFailed != 1 {
		t.Errorf("PodsFailed = %d, want 1", snap.PodsFailed)
	}
}

func TestSnapshotListErrorPropagates(t *testing.T) {
	sentinel := errors.New("forbidden")
	src := New(&mockClient{nodesErr: sentinel}, "")

	if _, err := src.Snapshot(context.Background()); !errors.Is(err, sentinel) {
		t.Errorf("Snapshot() error = %v, want wrapped list error", err)
	}
}

func TestNodeWithoutReadyConditionIsNotReady(t *testing.T) {
	n := corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "bare"}}
	if nodeReady(n) {
		t.Error("node without a Ready condition reported ready")
	}
}

func TestJitValuesReadFreshSnapshots(t *testing.T) {
	mc := fixtureClient()
	src := New(mc, "")

	ready := src.NodesReady()
	for i := 0; i < 2; i++ {
		n, err := jit.Int(ready)
		if err != nil {
			t.Fatalf("NodesReady read error: %v", err)
		}
		if n != 2 {
			t.Errorf("NodesReady = %d, want 2", n)
		}
	}
	if mc.calls != 2 {
		t.Errorf("API listed nodes %d times across 2 reads, want 2", mc.calls)
	}
}
