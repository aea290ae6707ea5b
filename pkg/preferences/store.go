package preferences

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/sttts/dashnav/pkg/appconfig"
)

// Store is a small string key/value store. A missing key is reported with
// ok=false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// NewStore builds the backend selected in cfg.
func NewStore(cfg appconfig.PreferencesConfig) (Store, error) {
	switch cfg.Backend {
	case appconfig.BackendMemory:
		return NewMemoryStore(), nil
	case appconfig.BackendFile, "":
		p := cfg.Path
		if p == "" {
			dir, err := appconfig.Dir()
			if err != nil {
				return nil, fmt.Errorf("preferences path: %w", err)
			}
			p = filepath.Join(dir, "preferences.yaml")
		}
		return NewFileStore(p), nil
	case appconfig.BackendConfigMap:
		c, err := newClient(cfg.ConfigMap)
		if err != nil {
			return nil, err
		}
		ns := cfg.ConfigMap.Namespace
		if ns == "" {
			ns = "default"
		}
		return NewConfigMapStore(c, ns, cfg.ConfigMap.Name), nil
	default:
		return nil, fmt.Errorf("unsupported preferences backend %q", cfg.Backend)
	}
}

func newClient(cfg appconfig.ConfigMapConfig) (client.Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if cfg.Kubeconfig != "" {
		rules.ExplicitPath = cfg.Kubeconfig
	}
	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		rules,
		&clientcmd.ConfigOverrides{CurrentContext: cfg.Context},
	).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	c, err := client.New(config, client.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}
