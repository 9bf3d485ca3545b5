package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	// SendEMail sends a plain text message on behalf of senderName through the configured account.
	SendEMail(senderName, to, subject, message string) error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) SendEMail(senderName, to, subject, message string) (err error) {
	logger := log.
		WithField("sender", senderName).
		WithField("recipient", to)
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("email not sent, smtp client is not configured")
		return nil
	}
	if to == "" {
		return errors.New("recipient address is empty")
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(buildMessage(i.user, to, senderName, subject, message))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("email send failed")
		return err
	}
	logger.Info("email sent")
	return nil
}

func buildMessage(from, to, senderName, subject, message string) string {
	headers := []string{
		fmt.Sprintf("From: %s <%s>", senderName, from),
		"To: " + to,
		"Subject: " + subject,
		"MIME-version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + message + "\r\n"
}
