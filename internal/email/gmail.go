package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/avidato/farehold/config"
	"github.com/avidato/farehold/internal/amadeus"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender delivers PNR notifications through the Gmail API using a
// refresh-token credential obtained once during setup. Sending is
// fire-and-forget: every failure is logged and swallowed, the submission
// outcome never depends on it.
type GmailSender struct {
	from string
	svc  *gmail.Service
}

func NewGmailSender(ctx context.Context, cfg config.MailConfig) (*GmailSender, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GmailClientID,
		ClientSecret: cfg.GmailClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	// Expiry in the past forces a refresh on first use.
	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{
		RefreshToken: cfg.GmailRefreshToken,
		Expiry:       time.Now(),
	})

	svc, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	return &GmailSender{from: cfg.From, svc: svc}, nil
}

// SendHeldNotification mails the held-ticket confirmation to the requester.
func (s *GmailSender) SendHeldNotification(ctx context.Context, recipient, pnr string, order *amadeus.Order) {
	body, err := RenderHeldMessage(pnr, order)
	if err != nil {
		log.Error().Err(err).Str("recipient", recipient).Msg("render PNR notification failed")
		return
	}

	subject := fmt.Sprintf("Ticket Held! Your PNR: %s", pnr)
	raw := fmt.Sprintf("From: Flight Notifier <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.from, recipient, subject, body)

	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString([]byte(raw))}
	if _, err := s.svc.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		log.Error().Err(err).Str("recipient", recipient).Str("pnr", pnr).Msg("send PNR notification failed")
		return
	}
	log.Info().Str("recipient", recipient).Str("pnr", pnr).Msg("PNR notification sent")
}
