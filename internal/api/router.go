package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	// All API routes will be under /api
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/signup", apiHandler.SignupHandler)
		r.Post("/login", apiHandler.LoginHandler)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// User-authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			// Task routes
			r.Get("/tasks", apiHandler.ListTasksHandler)
			r.Post("/tasks", apiHandler.CreateTaskHandler)
			r.Patch("/tasks/{taskID}", apiHandler.UpdateTaskHandler)
			r.Delete("/tasks/{taskID}", apiHandler.DeleteTaskHandler)
			r.Post("/attachments", apiHandler.UploadAttachmentHandler)

			// Chat routes
			r.Get("/messages", apiHandler.ListMessagesHandler)
			r.Post("/messages", apiHandler.PostMessageHandler)
			r.Get("/groups", apiHandler.ListGroupsHandler)
			r.Post("/groups", apiHandler.CreateGroupHandler)
			r.Get("/events", apiHandler.EventsHandler)

			// Directory and settings
			r.Get("/divisions", apiHandler.ListDivisionsHandler)
			r.Get("/users", apiHandler.ListUsersHandler)
			r.Put("/users/me/note", apiHandler.UpdateStickyNoteHandler)
			r.Get("/preferences", apiHandler.GetPreferencesHandler)
			r.Put("/preferences", apiHandler.SavePreferencesHandler)
			r.Get("/activity", apiHandler.ListActivityHandler)
			r.Post("/admin/remote", apiHandler.ReconfigureRemoteHandler)

			// AI helpers
			r.Post("/ai/parse-task", apiHandler.ParseTaskHandler)
			r.Get("/ai/summarize", apiHandler.SummarizeChannelHandler)
			r.Post("/ai/score-lead", apiHandler.ScoreLeadHandler)
			r.Post("/ai/subtasks", apiHandler.GenerateSubtasksHandler)
			r.Post("/ai/parse-document", apiHandler.ParseDocumentHandler)
			r.Post("/ai/bulk-tasks", apiHandler.ParseBulkTasksHandler)
			r.Post("/ai/outreach", apiHandler.DraftOutreachHandler)
			r.Post("/ai/recovery", apiHandler.RecommendRecoveryHandler)
			r.Post("/ai/polish", apiHandler.PolishAnnouncementHandler)
			r.Post("/ai/draft-whatsapp", apiHandler.DraftWhatsAppHandler)

			// Outbound dispatch
			r.Post("/notify/whatsapp", apiHandler.SendWhatsAppHandler)
			r.Post("/notify/daily-report", apiHandler.DailyReportHandler)
			r.Post("/notify/device-status", apiHandler.DeviceStatusHandler)
			r.Post("/notify/webhook", apiHandler.SendWebhookHandler)
			r.Post("/notify/share-link", apiHandler.ShareLinkHandler)
		})
	})

	return r
}
