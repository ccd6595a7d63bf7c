package kubernetes

import (
	"context"
	"fmt"
	"log"
	"sync"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/control-theory/woodchipper/internal/logentry"
	"github.com/control-theory/woodchipper/internal/reader"
)

// Reader is the Kubernetes variant of internal/reader.Reader: an inner
// pipeline that discovers pods, starts one log follower per matched
// container, and ends a follower when its pod disappears without ending
// the reader itself (spec §4.1).
type Reader struct {
	Client     ClientConfig
	Namespaces []string
	Selector   string
	PodSubstr  []string
	TailLines  int64
	Since      int64

	watcher *podWatcher
	out     chan<- logentry.LogEntry
	mu      sync.Mutex
}

// Start implements internal/reader.Reader. It honors ctx cancellation and
// exit, per spec §4.1/§5 (the informer-backed watcher and all its
// streamers stop when ctx is done).
func (r *Reader) Start(ctx context.Context, out chan<- logentry.LogEntry, exit *reader.ExitSignal) error {
	clientset, err := r.Client.BuildClientset()
	if err != nil {
		reader.SendInternal(out, logentry.InternalError, fmt.Sprintf("building kubernetes client: %v", err))
		reader.SendEOF(out)
		return nil
	}

	var tailLines *int64
	if r.TailLines >= 0 {
		t := r.TailLines
		tailLines = &t
	}
	var since *int64
	if r.Since > 0 {
		s := r.Since
		since = &s
	}

	watcher, err := newPodWatcher(clientset, r.Namespaces, r.Selector, r.PodSubstr, out, tailLines, since)
	if err != nil {
		reader.SendInternal(out, logentry.InternalError, fmt.Sprintf("starting pod watcher: %v", err))
		reader.SendEOF(out)
		return nil
	}
	if err := watcher.Start(); err != nil {
		reader.SendInternal(out, logentry.InternalError, fmt.Sprintf("watching pods: %v", err))
		reader.SendEOF(out)
		return nil
	}

	r.mu.Lock()
	r.watcher = watcher
	r.out = out
	r.mu.Unlock()

	if exit != nil && exit.Request != nil {
		go func() {
			<-exit.Request
			watcher.Stop()
			if exit.Ack != nil {
				close(exit.Ack)
			}
		}()
	}

	<-ctx.Done()
	watcher.Stop()
	reader.SendEOF(out)
	return nil
}

// UpdateFilter dynamically changes which namespaces/pods are watched —
// the entry point the interactive renderer's Kubernetes filter modal
// calls after the operator toggles namespace/pod selections (spec
// §4.4.3's per-source modal, adapted from the teacher's own
// modal_k8s_filter.go picker).
func (r *Reader) UpdateFilter(namespaces []string, selector string, podSubstr []string) error {
	r.mu.Lock()
	oldWatcher := r.watcher
	out := r.out
	r.mu.Unlock()
	if oldWatcher != nil {
		oldWatcher.Stop()
	}

	clientset, err := r.Client.BuildClientset()
	if err != nil {
		return fmt.Errorf("building kubernetes client: %w", err)
	}

	var tailLines *int64
	if r.TailLines >= 0 {
		t := r.TailLines
		tailLines = &t
	}
	var since *int64
	if r.Since > 0 {
		s := r.Since
		since = &s
	}

	watcher, err := newPodWatcher(clientset, namespaces, selector, podSubstr, out, tailLines, since)
	if err != nil {
		return fmt.Errorf("creating pod watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("starting pod watcher: %w", err)
	}

	r.Namespaces = namespaces
	r.Selector = selector
	r.PodSubstr = podSubstr

	r.mu.Lock()
	r.watcher = watcher
	r.mu.Unlock()

	log.Printf("updated kubernetes filter - namespaces: %v, selector: %s, pods: %d substrings", namespaces, selector, len(podSubstr))
	return nil
}

// ListNamespaces queries the cluster for namespace names, marking
// initially-configured namespaces as selected (used by the filter
// modal's namespace picker).
func (r *Reader) ListNamespaces() (map[string]bool, error) {
	clientset, err := r.Client.BuildClientset()
	if err != nil {
		return nil, fmt.Errorf("building kubernetes client: %w", err)
	}
	nsList, err := clientset.CoreV1().Namespaces().List(context.Background(), metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing namespaces: %w", err)
	}

	configured := make(map[string]bool)
	for _, ns := range r.Namespaces {
		if ns != "" {
			configured[ns] = true
		}
	}
	selectAll := len(configured) == 0

	result := make(map[string]bool)
	for _, ns := range nsList.Items {
		result[ns.Name] = selectAll || configured[ns.Name]
	}
	return result, nil
}

// ListPods queries the cluster for pods in the given namespaces (all
// namespaces if selectedNamespaces is empty), used by the filter modal's
// pod picker.
func (r *Reader) ListPods(selectedNamespaces map[string]bool) (map[string]bool, error) {
	clientset, err := r.Client.BuildClientset()
	if err != nil {
		return nil, fmt.Errorf("building kubernetes client: %w", err)
	}

	listOptions := metav1.ListOptions{}
	if r.Selector != "" {
		listOptions.LabelSelector = r.Selector
	}

	var namespacesToQuery []string
	for ns, selected := range selectedNamespaces {
		if selected {
			namespacesToQuery = append(namespacesToQuery, ns)
		}
	}
	if len(namespacesToQuery) == 0 {
		namespacesToQuery = []string{""}
	}

	result := make(map[string]bool)
	for _, ns := range namespacesToQuery {
		var podList *corev1.PodList
		var err error
		if ns == "" {
			podList, err = clientset.CoreV1().Pods("").List(context.Background(), listOptions)
		} else {
			podList, err = clientset.CoreV1().Pods(ns).List(context.Background(), listOptions)
		}
		if err != nil {
			log.Printf("warning: failed to list pods in namespace %q: %v", ns, err)
			continue
		}
		for _, pod := range podList.Items {
			result[fmt.Sprintf("%s/%s", pod.Namespace, pod.Name)] = true
		}
	}
	return result, nil
}

// ActiveStreams returns the number of active pod/container log streams.
func (r *Reader) ActiveStreams() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher == nil {
		return 0
	}
	return r.watcher.ActiveStreams()
}
