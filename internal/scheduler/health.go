package scheduler

import (
	"sync"
	"time"
)

// HealthStatus represents the health of a component.
type HealthStatus struct {
	Healthy     bool
	LastCheck   time.Time
	LastSuccess time.Time
	LastError   error
	Message     string
}

// Health tracks the health of various components.
type Health struct {
	mu         sync.RWMutex
	components map[string]*HealthStatus
}

// NewHealth creates a new health tracker.
func NewHealth() *Health {
	return &Health{components: make(map[string]*HealthStatus)}
}

// SetHealthy marks a component as healthy.
func (h *Health) SetHealthy(component, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	status := h.status(component)
	now := time.Now()
	status.Healthy = true
	status.LastCheck = now
	status.LastSuccess = now
	status.LastError = nil
	status.Message = message
}

// SetUnhealthy marks a component as unhealthy.
func (h *Health) SetUnhealthy(component string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	status := h.status(component)
	status.Healthy = false
	status.LastCheck = time.Now()
	status.LastError = err
	status.Message = err.Error()
}

// status returns the tracked entry for a component, creating it on first
// use. Callers must hold the lock.
func (h *Health) status(component string) *HealthStatus {
	if _, exists := h.components[component]; !exists {
		h.components[component] = &HealthStatus{}
	}
	return h.components[component]
}

// GetStatus returns a copy of a component's status, or nil if untracked.
func (h *Health) GetStatus(component string) *HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if status, exists := h.components[component]; exists {
		copied := *status
		return &copied
	}
	return nil
}

// GetAllStatuses returns all component statuses.
func (h *Health) GetAllStatuses() map[string]*HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make(map[string]*HealthStatus, len(h.components))
	for name, status := range h.components {
		copied := *status
		result[name] = &copied
	}
	return result
}

// IsOverallHealthy returns true if all components are healthy.
func (h *Health) IsOverallHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, status := range h.components {
		if !status.Healthy {
			return false
		}
	}
	return true
}
