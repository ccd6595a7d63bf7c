package kubernetes

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/control-theory/woodchipper/internal/logentry"
)

// podLogStreamer streams logs from a single container, emitting one
// LogEntry per line with a source metadata field naming pod/container
// (spec §4.1 step 4). Per-pod order is preserved; across pods there is no
// ordering guarantee, matching spec §5's concurrency model exactly.
type podLogStreamer struct {
	clientset *kubernetes.Clientset
	pod       *corev1.Pod
	container string
	output    chan<- logentry.LogEntry
	ctx       context.Context
	cancel    context.CancelFunc
	tailLines *int64
	since     *int64
}

func newPodLogStreamer(
	clientset *kubernetes.Clientset,
	pod *corev1.Pod,
	container string,
	output chan<- logentry.LogEntry,
	parentCtx context.Context,
	tailLines *int64,
	since *int64,
) *podLogStreamer {
	ctx, cancel := context.WithCancel(parentCtx)
	return &podLogStreamer{
		clientset: clientset,
		pod:       pod,
		container: container,
		output:    output,
		ctx:       ctx,
		cancel:    cancel,
		tailLines: tailLines,
		since:     since,
	}
}

func (s *podLogStreamer) Start() { go s.streamLogs() }

func (s *podLogStreamer) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *podLogStreamer) streamLogs() {
	opts := &corev1.PodLogOptions{
		Container:  s.container,
		Follow:     true,
		Timestamps: true,
	}
	if s.tailLines != nil && *s.tailLines >= 0 {
		opts.TailLines = s.tailLines
	}
	if s.since != nil && *s.since > 0 {
		opts.SinceSeconds = s.since
	}

	req := s.clientset.CoreV1().Pods(s.pod.Namespace).GetLogs(s.pod.Name, opts)
	stream, err := req.Stream(s.ctx)
	if err != nil {
		log.Printf("error opening log stream for %s/%s container %s: %v", s.pod.Namespace, s.pod.Name, s.container, err)
		return
	}
	defer stream.Close()

	source := fmt.Sprintf("%s/%s", s.pod.Name, s.container)
	extra := podMetadata(s.pod, s.container)

	scanner := bufio.NewScanner(stream)
	const maxScanTokenSize = 1024 * 1024
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	for scanner.Scan() {
		select {
		case <-s.ctx.Done():
			return
		default:
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		ts, body := splitTimestampPrefix(line)
		entry := logentry.LogEntry{
			Kind: logentry.EntryMessage,
			Raw:  body,
			Meta: &logentry.ReaderMetadata{Source: source, Timestamp: ts, Extra: extra},
		}
		select {
		case s.output <- entry:
		case <-s.ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		log.Printf("error reading logs from %s/%s container %s: %v", s.pod.Namespace, s.pod.Name, s.container, err)
	}
}

// podMetadata builds the reader-supplied attributes that only the
// Kubernetes API knows about a line's origin and no parser could ever
// recover from the line's own text: namespace, node, and pod labels.
// Merged into Message.Metadata by parse.Chain (spec §4.3).
func podMetadata(pod *corev1.Pod, container string) *logentry.OrderedMap {
	extra := logentry.NewOrderedMap()
	extra.Set("k8s.namespace", pod.Namespace)
	extra.Set("k8s.pod", pod.Name)
	extra.Set("k8s.container", container)
	if pod.Spec.NodeName != "" {
		extra.Set("k8s.node", pod.Spec.NodeName)
	}
	labelKeys := make([]string, 0, len(pod.Labels))
	for k := range pod.Labels {
		labelKeys = append(labelKeys, k)
	}
	sort.Strings(labelKeys)
	for _, k := range labelKeys {
		extra.Set("k8s.label."+k, pod.Labels[k])
	}
	return extra
}

// splitTimestampPrefix strips the RFC3339Nano timestamp prefix the
// Kubernetes API adds when PodLogOptions.Timestamps is true ("2024-01-
// 15T10:30:45.123456789Z actual message") and returns it as the
// authoritative reader timestamp, matching spec §4.2's tie-break rule
// (reader metadata wins unless the parser itself extracts an RFC-3339
// timestamp from the body).
func splitTimestampPrefix(line string) (*time.Time, string) {
	if len(line) < 21 || line[4] != '-' || line[7] != '-' || line[10] != 'T' {
		return nil, line
	}
	spaceIdx := strings.IndexByte(line, ' ')
	if spaceIdx <= 0 {
		return nil, line
	}
	tsStr := line[:spaceIdx]
	ts, err := time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return nil, line
	}
	ts = ts.UTC()
	return &ts, line[spaceIdx+1:]
}
