package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/erikvaldez23/foundation-api/internal/common"
	"github.com/erikvaldez23/foundation-api/internal/obs"
)

// Message is a contact form submission relayed to the foundation inbox.
type Message struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=150"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// Handler relays validated contact messages to a configured recipient.
// The relay is fire-and-forget from the site's perspective: no submission
// is persisted.
type Handler struct {
	Sender    common.EmailSender
	Recipient string
	Validate  *validator.Validate
	Logger    zerolog.Logger
}

// Submit handles POST /api/contact.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Sender == nil || strings.TrimSpace(h.Recipient) == "" {
		h.count("unconfigured")
		common.FlatError(w, http.StatusServiceUnavailable, "Contact form is not available")
		return
	}
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.count("invalid")
		common.FlatError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	validate := h.Validate
	if validate == nil {
		validate = validator.New()
	}
	if err := validate.Struct(msg); err != nil {
		h.count("invalid")
		common.FlatError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	subject := msg.Subject
	if subject == "" {
		subject = "New message from the foundation website"
	}
	if err := h.Sender.Send(h.Recipient, subject, renderBody(msg)); err != nil {
		h.Logger.Error().Err(err).Msg("relay contact message")
		h.count("error")
		common.FlatError(w, http.StatusInternalServerError, "Unable to send message")
		return
	}
	h.count("sent")
	common.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) count(result string) {
	if obs.ContactMessagesTotal != nil {
		obs.ContactMessagesTotal.WithLabelValues(result).Inc()
	}
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		field := strings.ToLower(fieldErrs[0].Field())
		switch fieldErrs[0].Tag() {
		case "required":
			return fmt.Sprintf("Missing required field: %s", field)
		case "email":
			return "Invalid email address"
		default:
			return fmt.Sprintf("Invalid field: %s", field)
		}
	}
	return "Invalid request"
}

func renderBody(msg Message) string {
	return fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
	)
}
