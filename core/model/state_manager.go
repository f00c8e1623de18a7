// Package model provides lifecycle state and persistence helpers shared by models.
package model

import (
	"sync"

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
)

// State はモデルのライフサイクル状態を表す
type State int

const (
	// Trainable は学習前の状態
	Trainable State = iota
	// Trained は学習済みの状態。Trainable へ戻ることはない
	Trained
)

// String returns "trainable" or "trained".
func (s State) String() string {
	if s == Trained {
		return "trained"
	}
	return "trainable"
}

// StateManager は学習状態を管理する。Trainable から Trained への遷移は一方向で、
// 二度目の学習要求はエラーになる。
type StateManager struct {
	mu    sync.RWMutex
	state State
}

// NewStateManager creates a StateManager in the Trainable state.
func NewStateManager() *StateManager {
	return &StateManager{state: Trainable}
}

// IsFitted returns whether the model has been trained.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == Trained
}

// State returns the current state.
func (s *StateManager) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// BeginTraining returns ErrAlreadyFitted wrapped in a ModelError when the
// model is already trained.
func (s *StateManager) BeginTraining(op string) error {
	if s.IsFitted() {
		return errors.NewModelError(op, "train called twice", errors.ErrAlreadyFitted)
	}
	return nil
}

// SetFitted marks the model as trained.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Trained
}

// RequireFitted returns a NotFittedError if the model has not been trained.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
