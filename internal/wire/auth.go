package wire

import (
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, auth *middleware.Authenticator) {
	r.Route("/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/verify-otp", authHandler.VerifyOTP)
		r.Post("/resend-otp", authHandler.ResendOTP)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
		r.Get("/logout", authHandler.Logout)

		// ==================== PROTECTED ROUTES ====================
		r.With(auth.Authenticate).Get("/check-auth", authHandler.CheckAuth)
	})
}
