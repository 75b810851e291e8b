package k8s

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ApplicationGVR identifies ArgoCD Application resources.
var ApplicationGVR = schema.GroupVersionResource{
	Group:    "argoproj.io",
	Version:  "v1alpha1",
	Resource: "applications",
}

// ConfigError reports that no usable cluster credentials were found.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "k8s config: " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// NewClient builds a dynamic client. An explicit kubeconfig path wins;
// otherwise in-cluster credentials are tried before the default loading
// rules ($KUBECONFIG list, then ~/.kube/config).
func NewClient(kubeconfig string, timeout time.Duration, log logrus.FieldLogger) (dynamic.Interface, error) {
	config, err := restConfig(kubeconfig, log)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	config.Timeout = timeout

	dyn, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("dynamic client: %w", err)}
	}
	return dyn, nil
}

func restConfig(kubeconfig string, log logrus.FieldLogger) (*rest.Config, error) {
	if kubeconfig == "" {
		if config, err := rest.InClusterConfig(); err == nil {
			log.Info("loaded in-cluster kubeconfig")
			return config, nil
		}
	}
	config, err := localConfig(kubeconfig)
	if err != nil {
		return nil, err
	}
	log.Info("loaded local kubeconfig")
	return config, nil
}

func localConfig(kubeconfig string) (*rest.Config, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = kubeconfig
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
}
