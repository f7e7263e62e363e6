package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Routes assembles the /api router. CORS is credentialed because the
// frontend authenticates with cookies, so origins must be listed
// explicitly.
func (a *API) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Use(a.authenticate)

		// Public. Login and register still see the resolved user to
		// handle already-authenticated callers.
		r.Post("/login", a.handleLogin)
		r.Post("/register", a.handleRegister)
		r.Get("/find-mail", a.handleFindMail)
		r.Patch("/reset-password", a.handleResetPassword)

		// Session required.
		r.Group(func(r chi.Router) {
			r.Use(a.requireUser)
			r.Get("/session", a.handleSession)
			r.Delete("/session", a.handleLogout)
			r.Get("/declarations", a.handleListDeclarations)
			r.Post("/declarations", a.handleCreateDeclaration)
		})

		// Admin only.
		r.Route("/admin/users", func(r chi.Router) {
			r.Use(a.requireUser, a.requireAdmin)
			r.Get("/", a.handleAdminListUsers)
			r.Get("/{userID}", a.handleAdminGetUser)
			r.Put("/{userID}", a.handleAdminUpdateUser)
			r.Post("/{userID}/toggle_status", a.handleAdminToggleUserStatus)
		})
	})

	return r
}
