package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"classregistration/internal/delivery/http/controllers"
	"classregistration/internal/delivery/http/helpers"
	"classregistration/internal/delivery/http/middleware"
	"classregistration/internal/domain"
)

// RouterConfig holds everything NewRouter mounts. Admin and TokenVerifier may be nil, in which
// case the /admin routes are not registered.
type RouterConfig struct {
	Logger             *slog.Logger
	CORSAllowedOrigins []string

	Events        *controllers.EventController
	Registrations *controllers.RegistrationController
	Payments      *controllers.PaymentController
	Checkout      *controllers.CheckoutController
	Admin         *controllers.AdminController
	TokenVerifier domain.TokenVerifier
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		helpers.WriteJSONError(w, http.StatusMethodNotAllowed, helpers.ErrCodeBadRequest, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API Routes
	r.Get("/events", cfg.Events.ListUpcoming)
	r.Get("/events/{id}", cfg.Events.GetByID)
	r.Post("/registrations", cfg.Registrations.Register)
	r.Get("/registrations/{id}", cfg.Registrations.GetByID)
	r.Post("/payments", cfg.Payments.Pay)
	r.Post("/checkout", cfg.Checkout.Create)

	// Operator
	if cfg.Admin != nil && cfg.TokenVerifier != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", cfg.Admin.Login)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSubject(cfg.TokenVerifier, domain.AdminSubject, cfg.Logger))
				r.Get("/reconciliations", cfg.Admin.ListReconciliations)
				r.Post("/reconciliations/{id}/retry", cfg.Admin.RetryReconciliation)
			})
		})
	}

	// Swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
