package api

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"drivethru/internal/menu"
	"drivethru/internal/models"
	"drivethru/internal/monitoring"
	"drivethru/internal/order"

	"github.com/gin-gonic/gin"
)

// ChatRequest is a typed customer utterance.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is what every chat turn returns: the assistant reply plus the
// live cart so the kiosk UI can redraw without a second round trip.
type ChatResponse struct {
	Reply      string                       `json:"reply"`
	Status     models.InterpreterStatus     `json:"status"`
	Result     *models.ReconciliationResult `json:"result,omitempty"`
	Transcript string                       `json:"transcript,omitempty"`
	Order      []models.OrderLine           `json:"order"`
	Total      float64                      `json:"total"`
}

// GetMenuBoard returns the display catalog.
func (s *Server) GetMenuBoard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.board.Categories()})
}

// GetMenuItems returns items currently in stock.
func (s *Server) GetMenuItems(c *gin.Context) {
	items, err := s.store.GetAvailable()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateSession starts a new kiosk session.
func (s *Server) CreateSession(c *gin.Context) {
	sess := s.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{
		"id":      sess.ID,
		"history": sess.History(),
	})
}

// GetSession returns a session's transcript and cart.
func (s *Server) GetSession(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	lines := sess.Lines()
	c.JSON(http.StatusOK, gin.H{
		"id":      sess.ID,
		"history": sess.History(),
		"order":   lines,
		"total":   s.board.Total(lines),
	})
}

// EndSession discards a session.
func (s *Server) EndSession(c *gin.Context) {
	s.sessions.End(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}

// GetOrder returns the cart and its total.
func (s *Server) GetOrder(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	lines := sess.Lines()
	c.JSON(http.StatusOK, gin.H{"order": lines, "total": s.board.Total(lines)})
}

// Chat forwards one typed utterance through the interpreter and reconciler.
func (s *Server) Chat(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := s.runChat(c.Request.Context(), sess, req.Message)
	c.JSON(http.StatusOK, resp)
}

// VoiceChat transcribes uploaded audio and runs it through the same pipeline.
func (s *Server) VoiceChat(c *gin.Context) {
	if s.transcriber == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Speech-to-text is not configured"})
		return
	}

	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An 'audio' file upload is required"})
		return
	}
	defer file.Close()

	transcript, err := s.transcriber.Transcribe(c.Request.Context(), file, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Transcription failed"})
		return
	}

	resp := s.runChat(c.Request.Context(), sess, transcript)
	resp.Transcript = transcript
	c.JSON(http.StatusOK, resp)
}

// Speak synthesizes reply text for kiosk playback.
func (s *Server) Speak(c *gin.Context) {
	if s.synthesizer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Text-to-speech is not configured"})
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audio, err := s.synthesizer.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Speech synthesis failed"})
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// ConfirmOrder places the cart against the store and reads the order back.
func (s *Server) ConfirmOrder(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if sess.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your order is empty"})
		return
	}

	lines := sess.Lines()
	total := s.board.Total(lines)

	placement := order.Checkout(s.store, sess)

	confirmation, err := s.confirmer.Confirm(c.Request.Context(), lines)
	if err != nil {
		log.Printf("confirmation message fallback: %v", err)
	}
	sess.Append(order.RoleAssistant, confirmation)

	if placement.Complete() {
		monitoring.OrderPlaced()
		c.JSON(http.StatusOK, gin.H{
			"confirmation": confirmation,
			"placed":       placement.Placed,
			"total":        total,
		})
		return
	}

	// Some lines could not be fulfilled; they stay in the cart for the
	// customer to amend.
	c.JSON(http.StatusConflict, gin.H{
		"confirmation": confirmation,
		"placed":       placement.Placed,
		"failed":       placement.Failed,
		"order":        sess.Lines(),
	})
}

// ClearOrder empties the cart.
func (s *Server) ClearOrder(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	sess.Clear()
	sess.Append(order.RoleAssistant, "Okay, I've cleared your current order.")
	c.JSON(http.StatusOK, gin.H{"message": "Order cleared"})
}

// runChat is the shared utterance pipeline: interpret, reconcile, reply.
// Every failure path produces a customer-facing reply; nothing here escapes
// as a handler error.
func (s *Server) runChat(ctx context.Context, sess *order.Session, message string) ChatResponse {
	sess.Append(order.RoleCustomer, message)

	menuText := s.menuText()

	start := time.Now()
	result, err := s.orderIntent.Interpret(ctx, message, menuText)
	if err != nil {
		log.Printf("interpreter degraded to fallback: %v", err)
	}
	if result == nil {
		result = models.FallbackResult("")
	}
	monitoring.InterpreterObserved(string(result.Status), time.Since(start))

	resp := ChatResponse{Status: result.Status}
	switch result.Status {
	case models.StatusSuccess:
		rec := s.reconciler.Reconcile(sess, result.Actions)
		for _, a := range rec.Accepted {
			monitoring.ActionAccepted(string(a.Action))
		}
		for _, rej := range rec.Rejected {
			monitoring.ActionRejected(string(rej.Code))
		}
		resp.Result = &rec
		resp.Reply = buildReply(result, rec)
	case models.StatusClarificationNeeded, models.StatusItemUnavailable, models.StatusNotAnOrder:
		resp.Reply = result.Message
		if resp.Reply == "" {
			resp.Reply = "Could you please rephrase that?"
		}
	default:
		resp.Reply = result.Message
		if resp.Reply == "" {
			resp.Reply = models.FallbackMessage
		}
	}

	sess.Append(order.RoleAssistant, resp.Reply)
	resp.Order = sess.Lines()
	resp.Total = s.board.Total(resp.Order)
	return resp
}

// menuText renders the prompt menu from the full stock snapshot, falling back
// to the display board when the store is unreachable.
func (s *Server) menuText() string {
	items, err := s.store.GetAll()
	if err != nil {
		log.Printf("menu snapshot failed, prompting from board: %v", err)
		var sb strings.Builder
		sb.WriteString("Available menu items:\n")
		for _, cat := range s.board.Categories() {
			for _, e := range cat.Entries {
				sb.WriteString("- " + e.Label + "\n")
			}
		}
		return sb.String()
	}
	return menu.PromptText(items)
}

// buildReply summarizes a reconciliation the way the kiosk speaks: what was
// added, what was removed, and why anything was refused, in action order.
func buildReply(result *models.InterpreterResult, rec models.ReconciliationResult) string {
	if len(result.Actions) == 0 {
		return "I understood you, but didn't find specific items in your request to add or remove."
	}

	var added, removed []string
	for _, a := range rec.Accepted {
		switch a.Action {
		case models.ActionAdd:
			added = append(added, a.Label())
		case models.ActionRemove:
			removed = append(removed, a.Label())
		}
	}

	var parts []string
	if len(added) > 0 {
		parts = append(parts, "added "+strings.Join(added, ", "))
	}
	if len(removed) > 0 {
		parts = append(parts, "removed "+strings.Join(removed, ", "))
	}

	var reply string
	switch {
	case result.Message != "" && rec.Changed():
		reply = result.Message
	case len(parts) > 0:
		reply = "Okay, I've " + strings.Join(parts, " and ") + "."
	default:
		reply = "I couldn't make any of those changes."
	}

	var problems []string
	for _, rej := range rec.Rejected {
		problems = append(problems, rej.Message)
	}
	if len(problems) > 0 {
		reply += " Sorry: " + strings.Join(problems, "; ") + "."
	}
	return reply
}
