package util

import (
	"context"
	"embed"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"gopkg.in/gomail.v2"
)

//go:embed template/*.html
var TemplateFS embed.FS

type GomailSender struct {
	SmtpHost       string
	SmtpPort       int
	SenderName     string
	SenderEmail    string
	SenderPassword string
}

func NewGomailSender(smtpHost string, smtpPort int, senderName string, senderEmail string, senderPassword string) *GomailSender {
	return &GomailSender{
		SmtpHost:       smtpHost,
		SmtpPort:       smtpPort,
		SenderName:     senderName,
		SenderEmail:    senderEmail,
		SenderPassword: senderPassword,
	}
}

func (sender *GomailSender) Send(ctx context.Context, message model.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", sender.SenderEmail, sender.SenderName)

	to := make([]string, 0, len(message.Recipients))
	for _, recipient := range message.Recipients {
		to = append(to, mailer.FormatAddress(recipient.Address, recipient.DisplayName))
	}
	mailer.SetHeader("To", to...)
	mailer.SetHeader("Subject", message.Subject)
	mailer.SetBody("text/html", message.Body)

	dialer := gomail.NewDialer(
		sender.SmtpHost,
		sender.SmtpPort,
		sender.SenderEmail,
		sender.SenderPassword,
	)

	err := dialer.DialAndSend(mailer)
	if err != nil {
		return err
	}

	return nil
}
