package preferences

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	yaml "sigs.k8s.io/yaml"

	"github.com/sttts/dashnav/pkg/appconfig"
)

// exerciseStore runs the common Store contract against s.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, KeyDefaultApp); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	if err := s.Delete(ctx, KeyDefaultApp); err != nil {
		t.Fatalf("delete on empty store: %v", err)
	}
	if err := s.Set(ctx, KeyDefaultApp, "software"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, KeyLastActiveApp, "app"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, err := s.Get(ctx, KeyDefaultApp); err != nil || !ok || v != "software" {
		t.Fatalf("get default: %q %v %v", v, ok, err)
	}
	if err := s.Set(ctx, KeyDefaultApp, "cloud"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.Get(ctx, KeyDefaultApp); v != "cloud" {
		t.Fatalf("overwrite not visible: %q", v)
	}
	if err := s.Delete(ctx, KeyDefaultApp); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, KeyDefaultApp); ok {
		t.Fatalf("deleted key still present")
	}
	if v, ok, _ := s.Get(ctx, KeyLastActiveApp); !ok || v != "app" {
		t.Fatalf("unrelated key lost: %q %v", v, ok)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "preferences.yaml")
	exerciseStore(t, NewFileStore(p))

	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var onDisk map[string]string
	if err := yaml.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("file is not yaml: %v", err)
	}
	if len(onDisk) != 1 || onDisk[KeyLastActiveApp] != "app" {
		t.Fatalf("unexpected file content %q", data)
	}
	entries, _ := os.ReadDir(filepath.Dir(p))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "preferences.yaml")
	if err := os.WriteFile(p, []byte("- not\n- a map\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewFileStore(p).Get(context.Background(), KeyDefaultApp); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestConfigMapStore(t *testing.T) {
	c := fake.NewClientBuilder().Build()
	exerciseStore(t, NewConfigMapStore(c, "default", "prefs"))

	var cm corev1.ConfigMap
	if err := c.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "prefs"}, &cm); err != nil {
		t.Fatalf("configmap not created: %v", err)
	}
	if cm.Data["dashboard.current"] != "app" {
		t.Fatalf("unexpected data %v", cm.Data)
	}
	if _, ok := cm.Data["dashboard.default"]; ok {
		t.Fatalf("deleted key still in configmap: %v", cm.Data)
	}
}

func TestConfigMapStore_ExistingWithoutData(t *testing.T) {
	existing := &corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Namespace: "ns", Name: "prefs"}}
	c := fake.NewClientBuilder().WithObjects(existing).Build()
	s := NewConfigMapStore(c, "ns", "prefs")
	ctx := context.Background()
	if _, ok, err := s.Get(ctx, KeyLastActiveApp); err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, KeyLastActiveApp, "software"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, err := s.Get(ctx, KeyLastActiveApp); err != nil || !ok || v != "software" {
		t.Fatalf("get: %q %v %v", v, ok, err)
	}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(appconfig.PreferencesConfig{Backend: appconfig.BackendMemory})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", s)
	}

	p := filepath.Join(t.TempDir(), "p.yaml")
	s, err = NewStore(appconfig.PreferencesConfig{Backend: appconfig.BackendFile, Path: p})
	if err != nil {
		t.Fatal(err)
	}
	if fs, ok := s.(*FileStore); !ok || fs.Path() != p {
		t.Fatalf("expected file store at %s, got %#v", p, s)
	}

	if _, err := NewStore(appconfig.PreferencesConfig{Backend: "etcd"}); err == nil || !strings.Contains(err.Error(), "etcd") {
		t.Fatalf("expected unsupported backend error, got %v", err)
	}

	_, err = NewStore(appconfig.PreferencesConfig{
		Backend:   appconfig.BackendConfigMap,
		ConfigMap: appconfig.ConfigMapConfig{Kubeconfig: filepath.Join(t.TempDir(), "missing")},
	})
	if err == nil {
		t.Fatalf("expected kubeconfig error")
	}
}
