package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/differentgrowth/newgenforms/internal/models"
)

// Notifier is a placeholder for a real email sending service.
type Notifier struct {
	log *zap.Logger
}

func NewNotifier(log *zap.Logger) *Notifier {
	return &Notifier{log: log}
}

// SendWelcomeEmail simulates sending the signup welcome mail. Only sent to
// customers who accepted commercial communications.
func (n *Notifier) SendWelcomeEmail(customer *models.Customer) {
	if !customer.CommercialCommunications {
		return
	}
	n.log.Info("Sending welcome email", zap.String("to", customer.Email))
	// In a real deployment this would use an SMTP client to send a
	// templated HTML email.
	fmt.Printf("--- SIMULATING EMAIL ---\nTo: %s\nSubject: Welcome to NewGenForms\n\n", customer.Email)
}
