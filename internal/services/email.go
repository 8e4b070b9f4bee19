package services

import "log"

// EmailSender delivers transactional mail. Delivery is always best-effort
// for the callers in this codebase: a failed send is logged and ignored so
// it can never block the primary state change (the reset token is already
// persisted by the time the email goes out).
type EmailSender interface {
	Send(to, template string, params map[string]string) error
}

// LogEmailSender stands in for a real SMTP/SES transport.
type LogEmailSender struct {
	From string
}

func NewLogEmailSender(from string) *LogEmailSender {
	return &LogEmailSender{From: from}
}

func (s *LogEmailSender) Send(to, template string, params map[string]string) error {
	log.Printf("email_send from=%s to=%s template=%s", s.From, to, template)
	return nil
}

// SendIgnoreError dispatches mail without letting a transport failure
// affect the surrounding request. Failures are only logged.
func SendIgnoreError(sender EmailSender, to, template string, params map[string]string) {
	if err := sender.Send(to, template, params); err != nil {
		log.Printf("email_send_failed to=%s template=%s error=%v", to, template, err)
	}
}
