package wire

import (
	"net/http"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/pubsub"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// guards are the auth middlewares shared by every route group.
type guards struct {
	auth  func(http.Handler) http.Handler
	admin func(http.Handler) http.Handler
}

// Wiring builds services, handlers and routes. rdb may be nil.
func Wiring(
	repo *repository.Repository,
	publisher pubsub.Publisher,
	rdb *redis.Client,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	notifier := usecase.NewNotifier(publisher, config.PubSub.PublishTimeout, logger)
	service := usecase.NewService(repo, config, notifier, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, repo, rdb, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	rdb *redis.Client,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(middleware.RateLimit(config.RateLimit, rdb, logger))

	g := guards{
		auth:  middleware.AuthSession(repo.Session, repo.User, logger),
		admin: middleware.Admin(logger),
	}

	wireAuth(r, handler.Auth, g)
	wireUser(r, handler.User, g)
	wireCatalog(r, handler.Tenant, handler.Offer, g)
	wireMovie(r, handler.Movie, handler.Showtime, g)
	wireCinema(r, handler.Cinema, g)
	wireBooking(r, handler.Booking, g)
	wireContact(r, handler.Contact, g)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w, "Method not allowed")
	})

	return r
}
