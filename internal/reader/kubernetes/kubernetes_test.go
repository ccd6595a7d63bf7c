package kubernetes

import (
	"testing"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/labels"
)

func TestShouldWatchPodSubstringOR(t *testing.T) {
	w := &podWatcher{
		selector:  labels.Everything(),
		podSubstr: []string{"api", "worker"},
	}
	pod := &corev1.Pod{Status: corev1.PodStatus{Phase: corev1.PodRunning}}

	pod.Name = "billing-worker-7f9"
	if !w.shouldWatchPod(pod) {
		t.Fatalf("expected pod matching 'worker' substring to be watched")
	}

	pod.Name = "frontend-web-1"
	if w.shouldWatchPod(pod) {
		t.Fatalf("expected pod matching no substring to be skipped")
	}
}

func TestShouldWatchPodRequiresRunningOrSucceeded(t *testing.T) {
	w := &podWatcher{selector: labels.Everything()}
	pod := &corev1.Pod{Status: corev1.PodStatus{Phase: corev1.PodPending}}
	pod.Name = "init-job"
	if w.shouldWatchPod(pod) {
		t.Fatalf("expected pending pod to be skipped")
	}
	pod.Status.Phase = corev1.PodSucceeded
	if !w.shouldWatchPod(pod) {
		t.Fatalf("expected succeeded pod to be watched")
	}
}

func TestShouldWatchPodLabelSelector(t *testing.T) {
	sel, err := labels.Parse("app=checkout")
	if err != nil {
		t.Fatalf("labels.Parse: %v", err)
	}
	w := &podWatcher{selector: sel}
	pod := &corev1.Pod{Status: corev1.PodStatus{Phase: corev1.PodRunning}}
	pod.Name = "checkout-1"
	pod.Labels = map[string]string{"app": "checkout"}
	if !w.shouldWatchPod(pod) {
		t.Fatalf("expected matching label selector to be watched")
	}
	pod.Labels = map[string]string{"app": "other"}
	if w.shouldWatchPod(pod) {
		t.Fatalf("expected non-matching label selector to be skipped")
	}
}

func TestStreamKeyIsStableAndUnique(t *testing.T) {
	pod := &corev1.Pod{}
	pod.Namespace = "prod"
	pod.Name = "api-1"
	if streamKey(pod, "app") == streamKey(pod, "sidecar") {
		t.Fatalf("expected distinct containers to produce distinct keys")
	}
	if streamKey(pod, "app") != streamKey(pod, "app") {
		t.Fatalf("expected streamKey to be deterministic")
	}
}

func TestSplitTimestampPrefix(t *testing.T) {
	line := "2024-01-15T10:30:45.123456789Z connection accepted from 10.0.0.5"
	ts, body := splitTimestampPrefix(line)
	if ts == nil {
		t.Fatalf("expected a parsed timestamp")
	}
	want := time.Date(2024, 1, 15, 10, 30, 45, 123456789, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", ts, want)
	}
	if body != "connection accepted from 10.0.0.5" {
		t.Fatalf("body = %q", body)
	}
}

func TestSplitTimestampPrefixNoTimestamp(t *testing.T) {
	ts, body := splitTimestampPrefix("just a plain line with no prefix")
	if ts != nil {
		t.Fatalf("expected no timestamp, got %v", ts)
	}
	if body != "just a plain line with no prefix" {
		t.Fatalf("body = %q", body)
	}
}
