package email

import (
	"context"
	"fmt"

	"github.com/Harshit1991/gymbooking/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case "contact_received":
		fmt.Printf("send email to %s about contact enquiry %d\n", event.Email, event.ContactID)
	default:
		fmt.Printf("send email to %s about %s for booking %d plan %s\n", event.Email, event.Type, event.BookingID, event.Plan)
	}
	return nil
}
