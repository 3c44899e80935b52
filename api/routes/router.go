package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/talentconnect-backend/api/controllers"
	"github.com/angelmondragon/talentconnect-backend/api/middleware"
	"github.com/angelmondragon/talentconnect-backend/api/responses"
	"github.com/angelmondragon/talentconnect-backend/internal/auth"
	"github.com/angelmondragon/talentconnect-backend/internal/contact"
	"github.com/angelmondragon/talentconnect-backend/internal/equipment"
	"github.com/angelmondragon/talentconnect-backend/internal/freelancers"
	"github.com/angelmondragon/talentconnect-backend/internal/media"
	"github.com/angelmondragon/talentconnect-backend/internal/owners"
	"github.com/angelmondragon/talentconnect-backend/internal/search"
	"github.com/angelmondragon/talentconnect-backend/internal/users"
	"github.com/angelmondragon/talentconnect-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/angelmondragon/talentconnect-backend/pkg/metrics"
	"github.com/angelmondragon/talentconnect-backend/pkg/redis"
)

type rateLimiter interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// Dependencies carries everything the router wires into controllers. Nil
// pingers and a nil Redis client are reported as disabled.
type Dependencies struct {
	DB          controllers.Pinger
	Redis       *redis.Client
	MediaStore  controllers.Pinger
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics

	Auth        auth.Service
	Users       users.Service
	Freelancers freelancers.Service
	Owners      owners.Service
	Equipment   equipment.Service
	Contact     contact.Service
	Search      search.Service
	Media       media.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg, deps.HTTPMetrics),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	if cfg.Metrics.Enabled && deps.Gatherer != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	readiness := map[string]controllers.Pinger{"database": deps.DB, "redis": nil, "media": deps.MediaStore}
	var limiter rateLimiter
	if deps.Redis != nil {
		readiness["redis"] = deps.Redis
		limiter = deps.Redis
	}
	policies := middleware.PoliciesFromConfig(cfg.AuthRateLimit)
	authenticated := middleware.Auth(cfg.JWT, logg)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.HealthLive(cfg))
		r.Get("/health/ready", controllers.HealthReady(cfg, logg, readiness))

		// accounts
		r.With(middleware.AuthRateLimit(policies.Register, limiter, logg)).Post("/create", controllers.AccountSignup(deps.Auth, logg))
		r.With(authenticated).Post("/select-roles", controllers.AccountSelectRoles(deps.Auth, logg))
		r.Route("/login", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(policies.Login, limiter, logg)).Post("/", controllers.AccountLogin(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(policies.Reset, limiter, logg)).Post("/forgot-password", controllers.AccountForgotPassword(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(policies.Reset, limiter, logg)).Post("/reset-password", controllers.AccountResetPassword(deps.Auth, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/", controllers.UsersList(deps.Users, logg))
			r.Get("/stats", controllers.UsersStats(deps.Users, logg))
			r.Get("/search", controllers.UsersSearch(deps.Users, logg))
			r.Get("/type/{userType}", controllers.UsersByType(deps.Users, logg))
			r.Get("/{id}", controllers.UsersGet(deps.Users, logg))
			r.Put("/{id}", controllers.UsersUpdate(deps.Users, logg))
			r.Delete("/{id}", controllers.UsersDelete(deps.Users, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(authenticated, middleware.RequireFreelancer(logg))
			r.Get("/profile", controllers.DashboardProfile(deps.Freelancers, logg))
			r.Put("/profile", controllers.DashboardUpdateProfile(deps.Freelancers, logg))
			r.Delete("/profile/certificates", controllers.DashboardDeleteCertificate(deps.Freelancers, logg))
		})

		r.Route("/equipment", func(r chi.Router) {
			r.Get("/search", controllers.EquipmentSearch(deps.Equipment, logg))
			r.Get("/locations/all", controllers.EquipmentLocations(deps.Equipment, logg))
			r.Get("/stats/summary", controllers.EquipmentStats(deps.Equipment, logg))
			r.Get("/details/{id}", controllers.EquipmentDetails(deps.Equipment, logg))
			r.Post("/contact", controllers.ContactEquipment(deps.Contact, logg))

			r.Group(func(r chi.Router) {
				r.Use(authenticated, middleware.RequireEquipmentOwner(logg))
				r.Get("/profile", controllers.OwnerProfile(deps.Owners, logg))
				r.Put("/profile", controllers.OwnerUpdateProfile(deps.Owners, logg))
				r.Post("/add", controllers.EquipmentAdd(deps.Equipment, logg))
				r.Get("/mine", controllers.EquipmentMine(deps.Equipment, logg))
				r.Get("/mine/{id}", controllers.EquipmentMineByID(deps.Equipment, logg))
				r.Get("/inquiries", controllers.EquipmentInquiries(deps.Equipment, logg))
				r.Patch("/inquiries/{id}", controllers.EquipmentUpdateInquiry(deps.Equipment, logg))
				r.Put("/{id}", controllers.EquipmentUpdate(deps.Equipment, logg))
				r.Delete("/{id}", controllers.EquipmentDelete(deps.Equipment, logg))
				r.Post("/{id}/refresh-contact", controllers.EquipmentRefreshContact(deps.Equipment, logg))
			})
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/equipment", controllers.ContactEquipment(deps.Contact, logg))
			r.Post("/freelancer", controllers.ContactFreelancer(deps.Contact, logg))
		})

		r.Route("/search", func(r chi.Router) {
			r.Post("/jobseekers", controllers.SearchJobSeekers(deps.Search, logg))
			r.Get("/candidate/{candidateId}", controllers.SearchCandidate(deps.Search, logg))
			r.Get("/stats", controllers.SearchStats(deps.Search, logg))
			r.Get("/categories", controllers.SearchCategories(deps.Search, logg))
		})

		r.Route("/featured", func(r chi.Router) {
			r.Get("/freelancers/featured", controllers.FeaturedFreelancers(deps.Search, logg))
			r.Get("/freelancers/{id}", controllers.FreelancerByID(deps.Search, logg))
			r.Get("/freelancers", controllers.FreelancerList(deps.Search, logg))
			r.Get("/equipment/featured", controllers.EquipmentFeatured(deps.Equipment, logg))
			r.Get("/equipment/{id}", controllers.EquipmentDetails(deps.Equipment, logg))
			r.Get("/equipment", controllers.EquipmentList(deps.Equipment, logg))
		})

		r.Route("/media", func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/upload", controllers.MediaUpload(deps.Media, logg))
		})
	})

	return r
}
