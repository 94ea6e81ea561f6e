package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"studioBack/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleClient))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleAdmin))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/sign_out", authMiddleware.ThenFunc(app.userHandler.SignOut))
	mux.Get("/user/me", authMiddleware.ThenFunc(app.userHandler.GetCurrentUser))
	mux.Post("/user/fcm_token", authMiddleware.ThenFunc(app.userHandler.RegisterFCMToken))
	mux.Get("/admin/users", adminAuthMiddleware.ThenFunc(app.userHandler.GetUsers))
	mux.Put("/admin/users/:id/role", adminAuthMiddleware.ThenFunc(app.userHandler.UpdateRole))

	// Contact submissions
	mux.Post("/contact", standardMiddleware.ThenFunc(app.contactHandler.CreateSubmission))
	mux.Get("/admin/contact", adminAuthMiddleware.ThenFunc(app.contactHandler.GetSubmissions))
	mux.Put("/admin/contact/:id/read", adminAuthMiddleware.ThenFunc(app.contactHandler.MarkRead))

	// Project requests
	mux.Post("/requests", authMiddleware.ThenFunc(app.requestHandler.CreateRequest))
	mux.Get("/requests", authMiddleware.ThenFunc(app.requestHandler.GetRequests))
	mux.Get("/requests/:id", authMiddleware.ThenFunc(app.requestHandler.GetRequestByID))
	mux.Put("/requests/:id", authMiddleware.ThenFunc(app.requestHandler.UpdateRequest))
	mux.Post("/requests/:id/uploads", authMiddleware.ThenFunc(app.requestHandler.UploadAttachment))
	mux.Get("/admin/requests", adminAuthMiddleware.ThenFunc(app.requestHandler.GetRequests))
	mux.Get("/admin/requests/:id", adminAuthMiddleware.ThenFunc(app.requestHandler.GetRequestByID))
	mux.Post("/admin/requests/:id/quote", adminAuthMiddleware.ThenFunc(app.requestHandler.QuoteRequest))
	mux.Post("/admin/requests/:id/accept", adminAuthMiddleware.ThenFunc(app.requestHandler.AcceptRequest))
	mux.Post("/admin/requests/:id/reject", adminAuthMiddleware.ThenFunc(app.requestHandler.RejectRequest))

	// Projects
	mux.Post("/admin/projects", adminAuthMiddleware.ThenFunc(app.projectHandler.CreateProject))
	mux.Get("/admin/projects", adminAuthMiddleware.ThenFunc(app.projectHandler.GetProjects))
	mux.Put("/admin/projects/:id", adminAuthMiddleware.ThenFunc(app.projectHandler.UpdateProject))
	mux.Post("/admin/projects/:id/invoice", adminAuthMiddleware.ThenFunc(app.paymentHandler.GenerateInvoice))
	mux.Get("/projects", authMiddleware.ThenFunc(app.projectHandler.GetProjects))
	mux.Get("/projects/:id", authMiddleware.ThenFunc(app.projectHandler.GetProjectByID))

	// Invoices
	mux.Get("/invoices", authMiddleware.ThenFunc(app.invoiceHandler.GetInvoices))
	mux.Get("/invoices/:id", authMiddleware.ThenFunc(app.invoiceHandler.GetInvoiceByID))
	mux.Get("/admin/invoices", adminAuthMiddleware.ThenFunc(app.invoiceHandler.GetInvoices))

	// Payments
	mux.Post("/payments/deposit", authMiddleware.ThenFunc(app.paymentHandler.CreateDeposit))
	mux.Post("/payments/checkout-session", authMiddleware.ThenFunc(app.paymentHandler.CreateCheckoutSession))
	mux.Post("/payments/webhook", standardMiddleware.ThenFunc(app.paymentHandler.Webhook))

	// Admin event stream. The upgrade itself authenticates with a ticket in
	// the query string; only admins can mint one.
	mux.Post("/admin/ws/ticket", adminAuthMiddleware.ThenFunc(app.WebSocketTicket))
	mux.Get("/admin/ws", standardMiddleware.ThenFunc(app.WebSocketHandler))

	return mux
}
