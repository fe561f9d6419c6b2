// Package interpreter wraps the LLM calls the kiosk depends on: the order
// taker that maps free text to cart actions, the admin assistant, and the
// order confirmer. All three treat the model as a fallible black box; a
// failed or malformed reply always degrades to a usable fallback result.
package interpreter

import (
	"context"
	"fmt"

	"drivethru/internal/models"

	"github.com/tmc/langchaingo/llms"
)

// OrderTaker turns a customer utterance plus the current menu text into a
// validated list of proposed cart actions.
type OrderTaker struct {
	model       llms.Model
	temperature float64
}

// NewOrderTaker builds an order taker over any langchaingo model.
func NewOrderTaker(model llms.Model) *OrderTaker {
	return &OrderTaker{model: model, temperature: 0.2}
}

// Interpret runs the order-taker prompt. The returned result is always
// usable: transport failures and unparseable replies both come back as an
// unknown-status result with a customer-facing fallback message, with the
// error alongside for logging.
func (o *OrderTaker) Interpret(ctx context.Context, freeText, menuText string) (*models.InterpreterResult, error) {
	prompt := fmt.Sprintf(orderTakerPrompt, menuText, freeText)
	reply, err := llms.GenerateFromSinglePrompt(ctx, o.model, prompt,
		llms.WithTemperature(o.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return models.FallbackResult(""), fmt.Errorf("order interpreter call failed: %w", err)
	}
	return parseOrderReply(reply), nil
}

// AdminInterpreter turns a manager command plus the current inventory text
// into a validated AdminCommand.
type AdminInterpreter struct {
	model       llms.Model
	temperature float64
}

// NewAdminInterpreter builds an admin interpreter over any langchaingo model.
func NewAdminInterpreter(model llms.Model) *AdminInterpreter {
	return &AdminInterpreter{model: model, temperature: 0.1}
}

// Interpret runs the admin prompt. Like the order taker, it never returns a
// nil command: failures become error-action commands.
func (a *AdminInterpreter) Interpret(ctx context.Context, command, inventoryText string) (*models.AdminCommand, error) {
	prompt := fmt.Sprintf(adminPrompt, inventoryText, command)
	reply, err := llms.GenerateFromSinglePrompt(ctx, a.model, prompt,
		llms.WithTemperature(a.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return &models.AdminCommand{
			Action:  models.AdminActionError,
			Message: "The inventory assistant is unavailable right now.",
		}, fmt.Errorf("admin interpreter call failed: %w", err)
	}
	return parseAdminReply(reply), nil
}
