package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventsDbName  = "togethernow"
	EventsColName = "events"
)

// Event is a user-created gathering. creator_uid and creator_name are
// snapshots of the verified identity at creation time and are never taken
// from the request body.
type Event struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Category      string             `bson:"category" json:"category"`
	Location      string             `bson:"location" json:"location"`
	MaxPeople     int                `bson:"max_people" json:"max_people"`
	CurrentPeople int                `bson:"current_people" json:"current_people"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	CreatorUID    string             `bson:"creator_uid" json:"creator_uid"`
	CreatorName   string             `bson:"creator_name" json:"creator_name"`
	Members       []string           `bson:"members" json:"members"`
	ImageURL      string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
}

type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error
	// JoinEvent adds uid to the membership set and bumps the counter in a
	// single conditional update. Returns false when the event is missing or
	// uid is already a member.
	JoinEvent(ctx context.Context, id primitive.ObjectID, uid string) (bool, error)
	// LeaveEvent is the inverse: matches only while uid is a member.
	LeaveEvent(ctx context.Context, id primitive.ObjectID, uid string) (bool, error)
}

func (e *Event) IsMember(uid string) bool {
	for _, m := range e.Members {
		if m == uid {
			return true
		}
	}
	return false
}
