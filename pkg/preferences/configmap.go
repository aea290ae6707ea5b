package preferences

import (
	"context"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// ConfigMapStore keeps values in the data of a single ConfigMap. A missing
// ConfigMap reads as empty and is created by the first Set.
type ConfigMapStore struct {
	c   client.Client
	key types.NamespacedName
}

func NewConfigMapStore(c client.Client, namespace, name string) *ConfigMapStore {
	return &ConfigMapStore{c: c, key: types.NamespacedName{Namespace: namespace, Name: name}}
}

// dataKey maps a preference key onto a valid ConfigMap data key.
func dataKey(key string) string {
	return strings.ReplaceAll(key, ":", ".")
}

func (s *ConfigMapStore) get(ctx context.Context) (*corev1.ConfigMap, bool, error) {
	var cm corev1.ConfigMap
	if err := s.c.Get(ctx, s.key, &cm); err != nil {
		if apierrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get configmap %s: %w", s.key, err)
	}
	return &cm, true, nil
}

func (s *ConfigMapStore) Get(ctx context.Context, key string) (string, bool, error) {
	cm, found, err := s.get(ctx)
	if err != nil || !found {
		return "", false, err
	}
	v, ok := cm.Data[dataKey(key)]
	return v, ok, nil
}

func (s *ConfigMapStore) Set(ctx context.Context, key, value string) error {
	cm, found, err := s.get(ctx)
	if err != nil {
		return err
	}
	if !found {
		cm = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Namespace: s.key.Namespace,
				Name:      s.key.Name,
				Labels:    map[string]string{"app.kubernetes.io/managed-by": "dashnav"},
			},
			Data: map[string]string{dataKey(key): value},
		}
		if err := s.c.Create(ctx, cm); err != nil {
			return fmt.Errorf("create configmap %s: %w", s.key, err)
		}
		return nil
	}
	if cur, ok := cm.Data[dataKey(key)]; ok && cur == value {
		return nil
	}
	if cm.Data == nil {
		cm.Data = map[string]string{}
	}
	cm.Data[dataKey(key)] = value
	if err := s.c.Update(ctx, cm); err != nil {
		return fmt.Errorf("update configmap %s: %w", s.key, err)
	}
	return nil
}

func (s *ConfigMapStore) Delete(ctx context.Context, key string) error {
	cm, found, err := s.get(ctx)
	if err != nil || !found {
		return err
	}
	if _, ok := cm.Data[dataKey(key)]; !ok {
		return nil
	}
	delete(cm.Data, dataKey(key))
	if err := s.c.Update(ctx, cm); err != nil {
		return fmt.Errorf("update configmap %s: %w", s.key, err)
	}
	return nil
}
