package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/togethernow/internal/helpers"
	"github.com/joshua-takyi/togethernow/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// Bound on every call to the external store so a slow backend cannot
	// hang a request indefinitely.
	storeTimeout = 10 * time.Second

	// A toggle attempt can lose the race against a concurrent toggle of the
	// same event; each retry re-runs both conditional updates.
	toggleRetries = 3
)

const (
	StatusJoined   = "joined"
	StatusUnjoined = "unjoined"
)

type EventService struct {
	eventRepo models.EventRepo
	cld       *cloudinary.Cloudinary
}

func NewEventService(eventRepo models.EventRepo, cld *cloudinary.Cloudinary) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		cld:       cld,
	}
}

type CreateEventInput struct {
	Title     string `json:"title" validate:"required"`
	Category  string `json:"category"`
	Location  string `json:"location"`
	MaxPeople int    `json:"max_people" validate:"required,min=1"`
	Image     string `json:"image"`
}

func (es *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return es.eventRepo.ListEvents(ctx)
}

// CreateEvent builds the event from the request body and the verified
// identity. creator_uid, creator_name and the initial membership always come
// from the identity, never from the client.
func (es *EventService) CreateEvent(ctx context.Context, input *CreateEventInput, identity *helpers.Identity) (*models.Event, error) {
	if identity == nil || identity.ID == "" {
		return nil, fmt.Errorf("missing identity")
	}
	if err := models.Validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	event := &models.Event{
		Title:         strings.TrimSpace(input.Title),
		Category:      strings.TrimSpace(input.Category),
		Location:      strings.TrimSpace(input.Location),
		MaxPeople:     input.MaxPeople,
		CurrentPeople: 1,
		CreatedAt:     time.Now(),
		CreatorUID:    identity.ID,
		CreatorName:   identity.Name,
		Members:       []string{identity.ID},
	}

	if input.Image != "" {
		if es.cld == nil {
			return nil, fmt.Errorf("image upload is not configured")
		}
		imageURL, err := helpers.UploadImage(ctx, es.cld, input.Image, helpers.EventsFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload event image: %v", err)
		}
		event.ImageURL = imageURL
	}

	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := es.eventRepo.CreateEvent(storeCtx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ToggleMembership flips the caller's presence in the event's membership set
// and reports which direction applied. Each direction is a single conditional
// document update, so the presence check and the counter delta cannot be
// split by a concurrent toggle. When both updates miss, either the event is
// gone or a concurrent toggle flipped the state between the two attempts;
// the latter is retried a few times.
func (es *EventService) ToggleMembership(ctx context.Context, eventID string, identity *helpers.Identity) (string, error) {
	if identity == nil || identity.ID == "" {
		return "", fmt.Errorf("missing identity")
	}

	id, err := primitive.ObjectIDFromHex(helpers.StringTrim(eventID))
	if err != nil {
		return "", models.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	for attempt := 0; attempt < toggleRetries; attempt++ {
		joined, err := es.eventRepo.JoinEvent(ctx, id, identity.ID)
		if err != nil {
			return "", err
		}
		if joined {
			return StatusJoined, nil
		}

		left, err := es.eventRepo.LeaveEvent(ctx, id, identity.ID)
		if err != nil {
			return "", err
		}
		if left {
			return StatusUnjoined, nil
		}

		if _, err := es.eventRepo.GetEventByID(ctx, id); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("membership toggle kept losing to concurrent updates")
}

// DeleteEvent removes the event when the caller is its creator. A missing
// event is reported as not found rather than as a permission failure.
func (es *EventService) DeleteEvent(ctx context.Context, eventID string, identity *helpers.Identity) error {
	if identity == nil || identity.ID == "" {
		return fmt.Errorf("missing identity")
	}

	id, err := primitive.ObjectIDFromHex(helpers.StringTrim(eventID))
	if err != nil {
		return models.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	event, err := es.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if event.CreatorUID != identity.ID {
		return models.ErrForbidden
	}

	return es.eventRepo.DeleteEvent(ctx, id)
}
