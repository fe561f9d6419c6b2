package interpreter

import (
	"encoding/json"
	"strings"

	"drivethru/internal/models"
)

// extractJSON pulls the JSON object out of a model reply. Models sometimes
// wrap the object in a ```json fence or surround it with prose, so this
// strips a fence first and then falls back to the outermost brace pair.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if idx := strings.Index(s, "```json"); idx >= 0 {
		rest := s[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// parseOrderReply validates a raw order-taker reply into an InterpreterResult.
// Malformed or unrecognized replies degrade to the unknown-status fallback
// instead of surfacing an error.
func parseOrderReply(raw string) *models.InterpreterResult {
	var decoded struct {
		Status  string                  `json:"status"`
		Actions []models.ProposedAction `json:"actions"`
		Message string                  `json:"message"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &decoded); err != nil {
		return models.FallbackResult(raw)
	}

	result := &models.InterpreterResult{
		Status:  models.NormalizeStatus(decoded.Status),
		Actions: decoded.Actions,
		Message: strings.TrimSpace(decoded.Message),
		Raw:     raw,
	}
	if result.Status == models.StatusUnknown && result.Message == "" {
		result.Message = models.FallbackMessage
	}
	return result
}

// parseAdminReply validates a raw admin-interpreter reply. Malformed replies
// become error-action commands so the admin chat always has something to say.
func parseAdminReply(raw string) *models.AdminCommand {
	var cmd models.AdminCommand
	if err := json.Unmarshal([]byte(extractJSON(raw)), &cmd); err != nil {
		return &models.AdminCommand{
			Action:  models.AdminActionError,
			Message: "Sorry, I couldn't make sense of that request.",
			Raw:     raw,
		}
	}
	cmd.Raw = raw
	cmd.Action = models.AdminActionType(strings.ToLower(strings.TrimSpace(string(cmd.Action))))
	cmd.ItemName = strings.TrimSpace(cmd.ItemName)
	cmd.Message = strings.TrimSpace(cmd.Message)

	switch cmd.Action {
	case models.AdminActionOrder, models.AdminActionReport, models.AdminActionError:
	default:
		cmd.Action = models.AdminActionError
		if cmd.Message == "" {
			cmd.Message = "Sorry, I couldn't make sense of that request."
		}
	}
	return &cmd
}
