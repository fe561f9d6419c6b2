package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"drivethru/internal/models"

	"github.com/tmc/langchaingo/llms"
)

// confirmerFallback is used when the model's confirmation reply is missing,
// suspiciously short, or the call fails outright.
const confirmerFallback = "Okay, just confirming your order. Does everything look right?"

// minConfirmationLength filters out empty or truncated confirmations.
const minConfirmationLength = 10

// Confirmer asks the model to read an order back to the customer.
type Confirmer struct {
	model       llms.Model
	temperature float64
}

// NewConfirmer builds a confirmer over any langchaingo model.
func NewConfirmer(model llms.Model) *Confirmer {
	return &Confirmer{model: model, temperature: 0.7}
}

// Confirm generates a spoken-style confirmation for the cart. Always returns
// usable text; call failures fall back to a canned line with the error
// alongside for logging.
func (c *Confirmer) Confirm(ctx context.Context, lines []models.OrderLine) (string, error) {
	orderJSON, err := json.Marshal(lines)
	if err != nil {
		return confirmerFallback, fmt.Errorf("failed to encode order: %w", err)
	}

	prompt := fmt.Sprintf(confirmerPrompt, orderJSON)
	reply, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return confirmerFallback, fmt.Errorf("confirmer call failed: %w", err)
	}

	message := strings.TrimSpace(reply)
	if len(message) < minConfirmationLength {
		return confirmerFallback, nil
	}
	return message, nil
}
