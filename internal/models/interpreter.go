package models

import "strings"

// InterpreterStatus tags the shape of an order-taker reply. Anything the
// boundary does not recognize normalizes to StatusUnknown rather than being
// trusted as-is.
type InterpreterStatus string

const (
	StatusSuccess             InterpreterStatus = "success"
	StatusClarificationNeeded InterpreterStatus = "clarification_needed"
	StatusItemUnavailable     InterpreterStatus = "item_unavailable"
	StatusNotAnOrder          InterpreterStatus = "not_an_order"
	StatusUnknown             InterpreterStatus = "unknown"
)

// NormalizeStatus maps a raw status string from the model onto the known set.
func NormalizeStatus(raw string) InterpreterStatus {
	switch InterpreterStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusSuccess:
		return StatusSuccess
	case StatusClarificationNeeded:
		return StatusClarificationNeeded
	case StatusItemUnavailable:
		return StatusItemUnavailable
	case StatusNotAnOrder:
		return StatusNotAnOrder
	default:
		return StatusUnknown
	}
}

// InterpreterResult is the validated form of an order-taker reply.
type InterpreterResult struct {
	Status  InterpreterStatus `json:"status"`
	Actions []ProposedAction  `json:"actions,omitempty"`
	Message string            `json:"message,omitempty"`

	// Raw keeps the unparsed model output for logging; never shown to customers.
	Raw string `json:"-"`
}

// FallbackMessage is what customers see when the model is unreachable or
// returns something unparseable.
const FallbackMessage = "Sorry, I didn't catch that. Could you repeat your order?"

// FallbackResult builds the degraded unknown-status result used whenever the
// interpreter call fails or its reply cannot be parsed.
func FallbackResult(raw string) *InterpreterResult {
	return &InterpreterResult{
		Status:  StatusUnknown,
		Message: FallbackMessage,
		Raw:     raw,
	}
}

// AdminActionType tags a manager-chat reply.
type AdminActionType string

const (
	AdminActionOrder  AdminActionType = "order"
	AdminActionReport AdminActionType = "report"
	AdminActionError  AdminActionType = "error"
)

// AdminCommand is the validated form of an admin-interpreter reply.
// QuantityOrdered tolerates both string and int encodings.
type AdminCommand struct {
	Action          AdminActionType `json:"action"`
	ItemName        string          `json:"item_name,omitempty"`
	QuantityOrdered FlexInt         `json:"quantity_ordered,omitempty"`
	Message         string          `json:"message"`

	Raw string `json:"-"`
}
