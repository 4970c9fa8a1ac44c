package mailer

import (
	"fmt"
	"os"
	"stowage/src/lib"
)

// NewMailerMessage hands the message to the email queue; delivery happens in
// the queue consumer. When EMAIL_DIRECT is set the message is sent inline
// instead, which is what local development runs with.
func NewMailerMessage(input *lib.SendMailInput) error {
	if os.Getenv("EMAIL_DIRECT") == "true" {
		return lib.SendMail(input)
	}
	emailQueue := os.Getenv("EMAIL_QUEUE")
	if emailQueue == "" {
		emailQueue = "emails"
	}
	emailBody := map[string]any{
		"from":      input.From,
		"from-name": input.FromName,
		"to":        input.To,
		"body":      input.Body,
		"html":      input.Html,
		"subject":   input.Subject,
	}
	if err := lib.KafkaProduceMessage("emails", emailQueue, emailBody); err != nil {
		return fmt.Errorf("error sending message to queue: %s", err.Error())
	}
	return nil
}
