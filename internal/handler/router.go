package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sefazor/maeum-backend/internal/metrics"
	"github.com/sefazor/maeum-backend/internal/middleware"
)

type Router struct {
	auth    *AuthHandler
	user    *UserHandler
	event   *EventHandler
	public  *PublicHandler
	authMW  *middleware.Auth
	metrics *metrics.Metrics
}

func NewRouter(
	auth *AuthHandler,
	user *UserHandler,
	event *EventHandler,
	public *PublicHandler,
	authMW *middleware.Auth,
	m *metrics.Metrics,
) *Router {
	return &Router{
		auth:    auth,
		user:    user,
		event:   event,
		public:  public,
		authMW:  authMW,
		metrics: m,
	}
}

// Mount registers every route on app.
func (r *Router) Mount(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.metrics.Registry, promhttp.HandlerOpts{})))

	api := app.Group("/api")
	requireAuth := r.authMW.Required()

	auth := api.Group("/auth")
	auth.Post("/register", r.auth.Register)
	auth.Post("/login", r.auth.Login)
	auth.Post("/logout", requireAuth, r.auth.Logout)
	auth.Get("/me", requireAuth, r.auth.Me)

	optionalAuth := r.authMW.Optional()
	public := api.Group("/public/:type/:url")
	public.Get("/", optionalAuth, r.public.GetEvent)
	public.Get("/qr.png", optionalAuth, r.public.QRCode)
	public.Post("/condolences", r.public.AddCondolence)
	public.Post("/rsvp", r.public.AddRSVP)
	public.Post("/guestbook", r.public.AddGuestbookEntry)

	user := api.Group("/user", requireAuth)
	user.Get("/profile", r.user.GetMyProfile)
	user.Put("/profile", r.user.UpdateProfile)
	user.Post("/change-password", r.user.ChangePassword)

	events := api.Group("/events", requireAuth)
	events.Post("/", r.event.CreateEvent)
	events.Get("/", r.event.GetUserEvents)
	events.Get("/:id", r.event.GetEvent)
	events.Put("/:id", r.event.UpdateEvent)
	events.Delete("/:id", r.event.DeleteEvent)
	events.Get("/:id/share", r.event.GetShareLinks)
	events.Post("/:id/images", r.event.UploadImage)
}
