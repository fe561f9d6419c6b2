// Package order holds the per-customer cart, the session objects that own
// it, and the reconciliation logic that merges interpreter-proposed actions
// into the cart against live stock.
package order

import (
	"strings"
	"sync"
	"time"

	"drivethru/internal/models"
)

// ChatMessage is one turn in a session's chat history.
type ChatMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

const (
	RoleCustomer  = "customer"
	RoleAssistant = "assistant"
)

// Session is the explicit per-customer context threaded through every
// reconciliation call: the live cart plus the chat history. Nothing about a
// session is shared across customers.
type Session struct {
	ID string

	mu         sync.Mutex
	lines      []models.OrderLine
	history    []ChatMessage
	createdAt  time.Time
	lastActive time.Time
}

func newSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		createdAt:  now,
		lastActive: now,
		history: []ChatMessage{{
			Role:    RoleAssistant,
			Content: "Welcome! Check out the menu or tell me your order.",
			At:      now,
		}},
	}
}

// Lines returns a copy of the cart.
func (s *Session) Lines() []models.OrderLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.OrderLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// History returns a copy of the chat transcript.
func (s *Session) History() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// Append records a chat turn and refreshes the activity timestamp.
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, ChatMessage{Role: role, Content: content, At: time.Now()})
	s.lastActive = time.Now()
}

// Clear empties the cart.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.lastActive = time.Now()
}

// Empty reports whether the cart has no lines.
func (s *Session) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// quantityOfItem sums the cart's quantity for one inventory item across all
// detail variants. Stock is tracked per item name, not per variant, so the
// availability check during reconciliation needs the aggregate.
// Caller must hold s.mu.
func (s *Session) quantityOfItem(item string) int {
	var total int
	for _, l := range s.lines {
		if strings.EqualFold(l.Item, item) {
			total += l.Quantity
		}
	}
	return total
}

// addLine merges an add into the cart by (item, details) key.
// Caller must hold s.mu.
func (s *Session) addLine(item string, quantity int, details string) {
	for i := range s.lines {
		if s.lines[i].SameKey(item, details) {
			s.lines[i].Quantity += quantity
			return
		}
	}
	s.lines = append(s.lines, models.OrderLine{Item: item, Quantity: quantity, Details: details})
}

// removeLine decrements the matching line, clamping at its current quantity
// and deleting it when it reaches zero. Reports whether the key was present.
// Caller must hold s.mu.
func (s *Session) removeLine(item string, quantity int, details string) bool {
	for i := range s.lines {
		if !s.lines[i].SameKey(item, details) {
			continue
		}
		s.lines[i].Quantity -= quantity
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		return true
	}
	return false
}

// dropLine deletes a line outright regardless of quantity.
// Caller must hold s.mu.
func (s *Session) dropLine(item, details string) {
	for i := range s.lines {
		if s.lines[i].SameKey(item, details) {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}
