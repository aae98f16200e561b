package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SundayYogurt/onboarding_service/internal/dto"
	"github.com/SundayYogurt/onboarding_service/pkg/logger"
)

type WelcomeMailer interface {
	SendWelcomeEmail(event dto.EmployeeOnboardedEvent) error
}

// MailHandler turns employee.onboarded events into welcome mails.
type MailHandler struct {
	mailer WelcomeMailer
	log    *logger.Logger
}

func NewMailHandler(mailer WelcomeMailer, log *logger.Logger) *MailHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &MailHandler{mailer: mailer, log: log}
}

func (h *MailHandler) HandleMessage(_ context.Context, value []byte) error {
	var event dto.EmployeeOnboardedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		h.log.Warn("invalid event payload", "payload", string(value))
		return fmt.Errorf("decode onboarded event: %w", err)
	}
	if event.EmployeeID == 0 {
		return fmt.Errorf("onboarded event without employee id")
	}

	h.log.Info("onboarded event received", "employee_id", event.EmployeeID)
	if err := h.mailer.SendWelcomeEmail(event); err != nil {
		return fmt.Errorf("send welcome mail to employee %d: %w", event.EmployeeID, err)
	}
	return nil
}
