// Package model provides state management for machine learning models.
package model

import (
	"sync"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// StateManager tracks whether an estimator has been trained and the shape of
// its training data. Its lock also guards the estimator's fitted parameters:
// readers use WithState, a Train call publishes new parameters in WithStateMut.
type StateManager struct {
	Fitted bool // Public for gob encoding
	mu     sync.RWMutex

	// Shape of the last successful training set. Public for gob encoding.
	NFeatures int
	NSamples  int
	NClasses  int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// Reset forgets the fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = false
	s.NFeatures = 0
	s.NSamples = 0
	s.NClasses = 0
}

// GetDimensions returns the number of features, samples and classes seen
// during training.
func (s *StateManager) GetDimensions() (nFeatures, nSamples, nClasses int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NFeatures, s.NSamples, s.NClasses
}

// RequireFitted returns a NotFittedError naming modelName and method if the
// model has not been trained.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// ModelState is a snapshot of StateManager for serialization and debugging.
type ModelState struct {
	Fitted    bool `json:"fitted"`
	NFeatures int  `json:"n_features,omitempty"`
	NSamples  int  `json:"n_samples,omitempty"`
	NClasses  int  `json:"n_classes,omitempty"`
}

// GetState returns the current state as a ModelState struct.
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ModelState{
		Fitted:    s.Fitted,
		NFeatures: s.NFeatures,
		NSamples:  s.NSamples,
		NClasses:  s.NClasses,
	}
}

// WithState runs fn holding the read lock.
func (s *StateManager) WithState(fn func() error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

// WithStateMut runs fn holding the write lock. If fn succeeds the state is
// marked fitted with the given dimensions, all in one critical section.
func (s *StateManager) WithStateMut(nFeatures, nSamples, nClasses int, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	s.Fitted = true
	s.NFeatures = nFeatures
	s.NSamples = nSamples
	s.NClasses = nClasses
	return nil
}
