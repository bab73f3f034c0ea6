package email

import (
	"context"
	"fmt"
	"log"

	"github.com/dkurbatov/venuebooking/internal/kafka"
	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, event kafka.BookingEvent) error
}

// ResendSender delivers booking notifications through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) Send(ctx context.Context, event kafka.BookingEvent) error {
	subject, body := render(event)
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{event.Email},
		Subject: subject,
		Html:    body,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	log.Printf("sent %s notification %s to %s", event.Type, sent.Id, event.Email)
	return nil
}

// LogSender stands in when no Resend API key is configured.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, event kafka.BookingEvent) error {
	subject, _ := render(event)
	log.Printf("email to %s: %s", event.Email, subject)
	return nil
}

func render(event kafka.BookingEvent) (subject, body string) {
	slot := fmt.Sprintf("%s at %s on %s", event.VenueName, event.Time, event.Date)
	switch event.Type {
	case kafka.EventBookingCreated:
		return "Booking received: " + slot,
			fmt.Sprintf("<p>Your booking %s for %s is awaiting verification.</p>", event.Reference, slot)
	case kafka.EventBookingUpdated:
		return "Booking updated: " + slot,
			fmt.Sprintf("<p>Your booking %s was moved to %s.</p>", event.Reference, slot)
	case kafka.EventBookingVerified:
		return "Booking confirmed: " + slot,
			fmt.Sprintf("<p>Your booking %s for %s has been verified.</p>", event.Reference, slot)
	case kafka.EventBookingRejected:
		return "Booking rejected: " + slot,
			fmt.Sprintf("<p>Your booking %s for %s was rejected. Please contact support.</p>", event.Reference, slot)
	case kafka.EventBookingCancelled:
		return "Booking cancelled: " + slot,
			fmt.Sprintf("<p>Your booking %s for %s has been cancelled.</p>", event.Reference, slot)
	case kafka.EventBookingPurged:
		return "Booking removed: " + slot,
			fmt.Sprintf("<p>Your unverified booking %s for %s passed its date and was removed.</p>", event.Reference, slot)
	default:
		return "Booking update: " + slot,
			fmt.Sprintf("<p>Your booking %s for %s was updated.</p>", event.Reference, slot)
	}
}

var (
	_ Sender = (*ResendSender)(nil)
	_ Sender = (*LogSender)(nil)
)
