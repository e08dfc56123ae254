package contact

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/Harshit1991/gymbooking/internal/domain"
	"github.com/Harshit1991/gymbooking/internal/kafka"
	"github.com/Harshit1991/gymbooking/internal/repository"
)

type ContactUseCase interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Contact, error)
	GetContact(ctx context.Context, id int64) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	DeleteContact(ctx context.Context, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ContactService struct {
	contacts           repository.ContactRepository
	producer           Producer
	notificationsTopic string
}

type SubmitInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Number  string `json:"number"`
	Message string `json:"message"`
}

func NewContactService(contacts repository.ContactRepository, producer Producer, notificationsTopic string) *ContactService {
	return &ContactService{
		contacts:           contacts,
		producer:           producer,
		notificationsTopic: notificationsTopic,
	}
}

func (s *ContactService) Submit(ctx context.Context, input SubmitInput) (*domain.Contact, error) {
	if input.Name == "" || input.Email == "" || input.Message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", domain.ErrValidation)
	}

	contact := &domain.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Number:  input.Number,
		Message: input.Message,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}

	if s.producer != nil && s.notificationsTopic != "" {
		event := kafka.BookingEvent{
			Type:      "contact_received",
			ContactID: contact.ID,
			Name:      contact.Name,
			Email:     contact.Email,
		}
		if err := s.producer.Publish(ctx, s.notificationsTopic, strconv.FormatInt(contact.ID, 10), event); err != nil {
			log.Printf("WARNING: failed to publish contact_received event for contact %d: %v", contact.ID, err)
		}
	}
	return contact, nil
}

func (s *ContactService) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	return s.contacts.GetByID(ctx, id)
}

func (s *ContactService) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.contacts.List(ctx)
}

func (s *ContactService) DeleteContact(ctx context.Context, id int64) error {
	return s.contacts.Delete(ctx, id)
}

var _ ContactUseCase = (*ContactService)(nil)
