package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ActionType is the kind of change the interpreter proposes for the cart.
type ActionType string

const (
	ActionAdd    ActionType = "add"
	ActionRemove ActionType = "remove"
)

// OrderLine is one entry in a customer's cart. Two lines are the same line
// iff item and details both match (item compared case-insensitively).
type OrderLine struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Details  string `json:"details,omitempty"`
}

// SameKey reports whether the line matches the (item, details) merge key.
func (l OrderLine) SameKey(item, details string) bool {
	return strings.EqualFold(l.Item, item) && l.Details == details
}

// Label renders the line the way chat replies describe it, e.g. "2x Soda (Coke)".
func (l OrderLine) Label() string {
	if l.Details != "" {
		return fmt.Sprintf("%dx %s (%s)", l.Quantity, l.Item, l.Details)
	}
	return fmt.Sprintf("%dx %s", l.Quantity, l.Item)
}

// FlexInt decodes a JSON number or a numeric string. LLM replies are not
// consistent about quoting quantities, so anything unparseable coerces to 1
// rather than failing the whole response.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*f = 1
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(int(fl))
		return nil
	}
	*f = 1
	return nil
}

// ProposedAction is the interpreter's output unit: a single add or remove
// against the cart. Quantity defaults to 1 when the model omits it.
type ProposedAction struct {
	Action   ActionType `json:"action"`
	Item     string     `json:"item"`
	Quantity int        `json:"quantity"`
	Details  string     `json:"details,omitempty"`
}

func (a *ProposedAction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Action   string  `json:"action"`
		Item     string  `json:"item"`
		Quantity FlexInt `json:"quantity"`
		Details  string  `json:"details"`
	}
	raw.Quantity = 1
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Action = ActionType(strings.ToLower(strings.TrimSpace(raw.Action)))
	a.Item = strings.TrimSpace(raw.Item)
	a.Quantity = int(raw.Quantity)
	a.Details = strings.TrimSpace(raw.Details)
	return nil
}

// Label renders the action for chat replies, e.g. "2x Fries (Large)".
func (a ProposedAction) Label() string {
	if a.Details != "" {
		return fmt.Sprintf("%dx %s (%s)", a.Quantity, a.Item, a.Details)
	}
	return fmt.Sprintf("%dx %s", a.Quantity, a.Item)
}

// RejectCode classifies why the reconciler refused an action. All of these
// are recoverable: a rejection is reported per action and never aborts the
// rest of the batch.
type RejectCode string

const (
	RejectInvalidAction     RejectCode = "invalid_action"
	RejectUnknownItem       RejectCode = "unknown_item"
	RejectOutOfStock        RejectCode = "out_of_stock"
	RejectInsufficientStock RejectCode = "insufficient_stock"
	RejectNotInOrder        RejectCode = "not_in_order"
	RejectStoreError        RejectCode = "store_error"
)

// Rejection pairs a refused action with the reason. Available is only
// meaningful for insufficient_stock, so callers can relay "only N available".
type Rejection struct {
	Action    ProposedAction `json:"action"`
	Code      RejectCode     `json:"code"`
	Available int            `json:"available,omitempty"`
	Message   string         `json:"message"`
}

// ReconciliationResult reports what a batch of proposed actions did to the
// cart. Both slices preserve submission order; partial success is the normal
// outcome, not a failure case.
type ReconciliationResult struct {
	Accepted []ProposedAction `json:"accepted"`
	Rejected []Rejection      `json:"rejected"`
}

// Changed reports whether any action actually mutated the cart.
func (r ReconciliationResult) Changed() bool {
	return len(r.Accepted) > 0
}
