package server

import (
	"context"
	"sync"

	"image-search-api/internal/config"
)

// ConnectionManager lazily builds the container once per Lambda execution
// environment and reuses it across warm invocations. A failed build is
// retried on the next invocation.
type ConnectionManager struct {
	mu        sync.Mutex
	container *Container
	load      func() (*config.Config, error)
	opts      []Option
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(config.GetOptimizedConfig)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager that builds its container from load
func NewConnectionManager(load func() (*config.Config, error), opts ...Option) *ConnectionManager {
	return &ConnectionManager{load: load, opts: opts}
}

// GetContainer returns the service container, initializing if necessary
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		return cm.container, nil
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}

	container, err := NewContainer(ctx, cfg, cm.opts...)
	if err != nil {
		return nil, err
	}
	cm.container = container
	return container, nil
}

// IsHealthy reports whether a container has been built
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.container != nil
}

// Cleanup closes the container so the next call rebuilds it
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}
	err := cm.container.Close()
	cm.container = nil
	return err
}
