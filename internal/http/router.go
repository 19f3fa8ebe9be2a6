package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ncwcc-portal/internal/events"
	"ncwcc-portal/internal/handlers"
	"ncwcc-portal/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	invoiceHandler *handlers.InvoiceHandler,
	profileHandler *handlers.ProfileHandler,
	accountHandler *handlers.AccountHandler,
	contactHandler *handlers.ContactHandler,
	faqHandler *handlers.FAQHandler,
	healthHandler *handlers.HealthHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	hub *events.Hub,
) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.PanicRecovery)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.MetricsMiddleware)

	// Public routes - marketing site
	r.HandleFunc("/contact", contactHandler.Submit).Methods("POST")
	r.HandleFunc("/api/faqs", faqHandler.List).Methods("GET")
	r.HandleFunc("/api/faqs/categories", faqHandler.Categories).Methods("GET")

	// Public routes - authentication (session attached when presented,
	// never required)
	authPublic := r.PathPrefix("/auth").Subrouter()
	authPublic.Use(sessionMiddleware.Resolve)
	authPublic.HandleFunc("/register", authHandler.Register).Methods("POST")
	authPublic.HandleFunc("/login", authHandler.Login).Methods("POST")
	authPublic.HandleFunc("/google", authHandler.GoogleSignIn).Methods("POST")
	authPublic.HandleFunc("/google/register", authHandler.GoogleRegister).Methods("POST")
	authPublic.HandleFunc("/google/client-id", authHandler.GoogleClientID).Methods("GET")
	authPublic.HandleFunc("/social", authHandler.SocialLogin).Methods("POST")
	authPublic.HandleFunc("/password/reset", authHandler.ResetPassword).Methods("POST")
	authPublic.HandleFunc("/password/reset/confirm", authHandler.ConfirmResetPassword).Methods("POST")
	authPublic.HandleFunc("/email/verify", authHandler.VerifyEmail).Methods("POST")
	authPublic.HandleFunc("/email/resend", authHandler.ResendVerification).Methods("POST")

	// Session-scoped authentication routes
	authAPI := r.PathPrefix("/auth").Subrouter()
	authAPI.Use(sessionMiddleware.Authenticate)
	authAPI.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/password/change", authHandler.ChangePassword).Methods("POST")

	// Protected API routes - Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(sessionMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.List).Methods("GET")
	invoicesAPI.HandleFunc("/summaries", invoiceHandler.Summaries).Methods("GET")
	invoicesAPI.HandleFunc("/ndis", invoiceHandler.ListNDIS).Methods("GET")
	invoicesAPI.HandleFunc("/ndis/{id}/compliance", invoiceHandler.NDISCompliance).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.Get).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/download", invoiceHandler.Download).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/resend", invoiceHandler.Resend).Methods("POST")

	// Protected API routes - Profile
	profileAPI := r.PathPrefix("/api/profile").Subrouter()
	profileAPI.Use(sessionMiddleware.Authenticate)
	profileAPI.HandleFunc("", profileHandler.Get).Methods("GET")
	profileAPI.HandleFunc("", profileHandler.Update).Methods("PATCH")
	profileAPI.HandleFunc("/deactivate", profileHandler.Deactivate).Methods("POST")
	profileAPI.HandleFunc("/social/link", profileHandler.LinkSocial).Methods("POST")
	profileAPI.HandleFunc("/social/unlink", profileHandler.UnlinkSocial).Methods("POST")

	// Protected API routes - Addresses and dashboard
	accountAPI := r.PathPrefix("/api").Subrouter()
	accountAPI.Use(sessionMiddleware.Authenticate)
	accountAPI.HandleFunc("/addresses", accountHandler.ListAddresses).Methods("GET")
	accountAPI.HandleFunc("/addresses", accountHandler.CreateAddress).Methods("POST")
	accountAPI.HandleFunc("/addresses/{id}", accountHandler.UpdateAddress).Methods("PUT")
	accountAPI.HandleFunc("/addresses/{id}", accountHandler.DeleteAddress).Methods("DELETE")
	accountAPI.HandleFunc("/dashboard", accountHandler.Dashboard).Methods("GET")

	// Session invalidation push
	r.HandleFunc("/ws/session", hub.HandleWS).Methods("GET")

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/system", healthHandler.SystemHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
