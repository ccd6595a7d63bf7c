package kubernetes

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/informers"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/cache"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// podWatcher watches for pod lifecycle events via a client-go informer
// (the concrete, event-driven satisfaction of spec §4.1's "rediscover
// periodically": the informer pushes pod add/update/delete events as they
// happen and resyncs its full pod list once a minute) and manages one log
// streamer per matched container.
type podWatcher struct {
	clientset  *kubernetes.Clientset
	namespaces []string
	selector   labels.Selector
	podSubstr  []string // OR-semantics substring selectors (spec §4.1)
	output     chan<- logentry.LogEntry
	tailLines  *int64
	since      *int64

	streamers map[string]*podLogStreamer
	mu        sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newPodWatcher(
	clientset *kubernetes.Clientset,
	namespaces []string,
	selector string,
	podSubstr []string,
	output chan<- logentry.LogEntry,
	tailLines *int64,
	since *int64,
) (*podWatcher, error) {
	ctx, cancel := context.WithCancel(context.Background())

	labelSelector := labels.Everything()
	if selector != "" {
		parsed, err := labels.Parse(selector)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("invalid label selector: %w", err)
		}
		labelSelector = parsed
	}

	if len(namespaces) == 0 {
		namespaces = []string{""}
	}

	return &podWatcher{
		clientset:  clientset,
		namespaces: namespaces,
		selector:   labelSelector,
		podSubstr:  podSubstr,
		output:     output,
		tailLines:  tailLines,
		since:      since,
		streamers:  make(map[string]*podLogStreamer),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

func (w *podWatcher) Start() error {
	for _, namespace := range w.namespaces {
		if err := w.watchNamespace(namespace); err != nil {
			log.Printf("error watching namespace %q: %v", namespace, err)
		}
	}
	return nil
}

func (w *podWatcher) watchNamespace(namespace string) error {
	var factory informers.SharedInformerFactory
	if namespace == "" {
		factory = informers.NewSharedInformerFactory(w.clientset, time.Minute)
	} else {
		factory = informers.NewSharedInformerFactoryWithOptions(w.clientset, time.Minute, informers.WithNamespace(namespace))
	}

	podInformer := factory.Core().V1().Pods().Informer()
	_, err := podInformer.AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc: func(obj interface{}) {
			if pod, ok := obj.(*corev1.Pod); ok && w.shouldWatchPod(pod) {
				w.startPodStreams(pod)
			}
		},
		UpdateFunc: func(_ interface{}, newObj interface{}) {
			pod, ok := newObj.(*corev1.Pod)
			if !ok {
				return
			}
			if w.shouldWatchPod(pod) {
				w.startPodStreams(pod)
			} else {
				w.stopPodStreams(pod)
			}
		},
		DeleteFunc: func(obj interface{}) {
			if pod, ok := obj.(*corev1.Pod); ok {
				w.stopPodStreams(pod)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("adding event handler: %w", err)
	}

	factory.Start(w.ctx.Done())
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if !cache.WaitForCacheSync(w.ctx.Done(), podInformer.HasSynced) {
			log.Printf("failed to sync cache for namespace %q", namespace)
		}
	}()
	return nil
}

// shouldWatchPod implements spec §4.1's pod-selection contract: a
// substring list with OR semantics, OR a single label selector, within
// the chosen namespace.
func (w *podWatcher) shouldWatchPod(pod *corev1.Pod) bool {
	if !w.selector.Matches(labels.Set(pod.Labels)) {
		return false
	}
	if len(w.podSubstr) > 0 {
		matched := false
		for _, substr := range w.podSubstr {
			if strings.Contains(pod.Name, substr) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	phase := pod.Status.Phase
	return phase == corev1.PodRunning || phase == corev1.PodSucceeded
}

func (w *podWatcher) startPodStreams(pod *corev1.Pod) {
	startContainer := func(containerName string) {
		key := streamKey(pod, containerName)
		w.mu.Lock()
		if _, exists := w.streamers[key]; exists {
			w.mu.Unlock()
			return
		}
		streamer := newPodLogStreamer(w.clientset, pod, containerName, w.output, w.ctx, w.tailLines, w.since)
		w.streamers[key] = streamer
		w.mu.Unlock()

		streamer.Start()
		log.Printf("started streaming logs from %s/%s container %s", pod.Namespace, pod.Name, containerName)
	}

	for _, container := range pod.Spec.Containers {
		startContainer(container.Name)
	}

	for _, container := range pod.Spec.InitContainers {
		running := false
		for _, status := range pod.Status.InitContainerStatuses {
			if status.Name == container.Name && status.State.Running != nil {
				running = true
				break
			}
		}
		if running {
			startContainer(container.Name)
		}
	}
}

func (w *podWatcher) stopPodStreams(pod *corev1.Pod) {
	w.mu.Lock()
	defer w.mu.Unlock()

	stop := func(containerName string) {
		key := streamKey(pod, containerName)
		if streamer, exists := w.streamers[key]; exists {
			streamer.Stop()
			delete(w.streamers, key)
			log.Printf("stopped streaming logs from %s/%s container %s", pod.Namespace, pod.Name, containerName)
		}
	}
	for _, container := range pod.Spec.Containers {
		stop(container.Name)
	}
	for _, container := range pod.Spec.InitContainers {
		stop(container.Name)
	}
}

func streamKey(pod *corev1.Pod, containerName string) string {
	return fmt.Sprintf("%s/%s/%s", pod.Namespace, pod.Name, containerName)
}

func (w *podWatcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()

	w.mu.Lock()
	w.streamers = make(map[string]*podLogStreamer)
	w.mu.Unlock()
}

func (w *podWatcher) ActiveStreams() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.streamers)
}
