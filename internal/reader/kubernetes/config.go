// Package kubernetes is the Kubernetes reader: an inner pipeline that
// discovers pods matching the user's selector, rediscovers periodically
// via informers, streams each matched container's logs, and prefixes each
// emitted entry with a source metadata field naming pod/container (spec
// §4.1). Adapted from the teacher's internal/k8s package.
package kubernetes

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ClientConfig holds the kubernetes client construction parameters. This
// is deliberately separate from internal/config.Config: the reader only
// needs client identity here, while namespace/selector filtering lives on
// Reader itself so UpdateFilter (spec §4.4.3's k8s filter modal) can
// change them without rebuilding the client.
type ClientConfig struct {
	Kubeconfig string
	Context    string
}

// DefaultClientConfig returns a ClientConfig using KUBECONFIG or
// ~/.kube/config.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{Kubeconfig: defaultKubeconfigPath()}
}

func defaultKubeconfigPath() string {
	if kubeconfig := os.Getenv("KUBECONFIG"); kubeconfig != "" {
		return kubeconfig
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kube", "config")
}

// BuildClientset creates a kubernetes clientset, trying in-cluster config
// first and falling back to kubeconfig.
func (c ClientConfig) BuildClientset() (*kubernetes.Clientset, error) {
	restConfig, err := rest.InClusterConfig()
	if err != nil {
		kubeconfig := c.Kubeconfig
		if kubeconfig == "" {
			kubeconfig = defaultKubeconfigPath()
		}
		loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig}
		overrides := &clientcmd.ConfigOverrides{}
		if c.Context != "" {
			overrides.CurrentContext = c.Context
		}
		kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides)
		restConfig, err = kubeConfig.ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("loading kubeconfig: %w", err)
		}
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("creating kubernetes clientset: %w", err)
	}
	return clientset, nil
}
