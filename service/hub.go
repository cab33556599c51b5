package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Hub owns service instances and drives their lifecycle in dependency order
type Hub struct {
	mu       sync.RWMutex
	services map[string]Service
	args     map[string][]any
	sorted   []string // topological order, computed on InitAll
	started  []string // services that completed Start, for rollback
}

func NewHub() *Hub {
	return &Hub{
		services: make(map[string]Service),
		args:     make(map[string][]any),
	}
}

// Register adds a service with the args its Init will receive
func (h *Hub) Register(svc Service, args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("service already registered: %s", name)
	}

	h.services[name] = svc
	h.args[name] = args
	h.sorted = nil
	return nil
}

func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.services[name]
	return svc, ok
}

// MustGet retrieves a service cast to T
// Panics if the service is missing or of another type
func MustGet[T any](h *Hub, name string) T {
	h.mu.RLock()
	svc, ok := h.services[name]
	h.mu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// Order returns the init order, computing it if needed
func (h *Hub) Order() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureSorted(); err != nil {
		return nil, err
	}
	return append([]string(nil), h.sorted...), nil
}

// InitAll calls Init on every service in dependency order
// On failure, already-initialized services are stopped in reverse order
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ensureSorted(); err != nil {
		return err
	}

	var initialized []string
	for _, name := range h.sorted {
		if err := h.services[name].Init(h.args[name]...); err != nil {
			h.rollback(initialized)
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		initialized = append(initialized, name)
	}
	return nil
}

// StartAll calls Start in dependency order
// On failure, already-started services are stopped in reverse order
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ensureSorted(); err != nil {
		return err
	}

	h.started = nil
	for _, name := range h.sorted {
		if err := h.services[name].Start(); err != nil {
			h.rollback(h.started)
			h.started = nil
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll stops started services in reverse order
// Every service gets Stop even when an earlier one fails; errors are joined
func (h *Hub) StopAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error
	for i := len(h.started) - 1; i >= 0; i-- {
		name := h.started[i]
		if err := h.services[name].Stop(); err != nil {
			log.Printf("[SERVICE] %s stop: %v", name, err)
			errs = append(errs, fmt.Errorf("service %s: %w", name, err))
		}
	}
	h.started = nil
	return errors.Join(errs...)
}

func (h *Hub) rollback(names []string) {
	for i := len(names) - 1; i >= 0; i-- {
		if err := h.services[names[i]].Stop(); err != nil {
			log.Printf("[SERVICE] %s rollback stop: %v", names[i], err)
		}
	}
}

func (h *Hub) ensureSorted() error {
	if h.sorted != nil {
		return nil
	}
	order, err := h.topologicalSort()
	if err != nil {
		return err
	}
	h.sorted = order
	return nil
}

// topologicalSort is Kahn's algorithm; ties break by name so the order is stable
func (h *Hub) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(h.services))
	dependents := make(map[string][]string)

	for name := range h.services {
		inDegree[name] = 0
	}
	for name, svc := range h.services {
		for _, dep := range svc.Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return nil, fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	result := make([]string, 0, len(h.services))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		result = append(result, name)

		var next []string
		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				next = append(next, dependent)
			}
		}
		sort.Strings(next)
		ready = append(ready, next...)
	}

	if len(result) != len(h.services) {
		return nil, fmt.Errorf("circular dependency detected in services")
	}
	return result, nil
}

// Names returns registered service names, sorted
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
