package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/togethernow/internal/middleware"
	"github.com/joshua-takyi/togethernow/internal/models"
	"github.com/joshua-takyi/togethernow/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger       *slog.Logger
	Verifier     middleware.Verifier
	EventService *services.EventService
	UserService  *services.UserService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	verifier middleware.Verifier,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
) *Container {
	supa := models.SupabaseNewRepo(supabaseClient)
	mongo := models.MongodbNewRepo(mongoDBClient)
	eventService := services.NewEventService(mongo, cld)
	userService := services.NewUserService(supa)

	return &Container{
		Logger:       logger,
		Verifier:     verifier,
		EventService: eventService,
		UserService:  userService,
	}
}
