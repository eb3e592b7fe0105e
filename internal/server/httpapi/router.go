package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/finkeeper/internal/apiv1"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handler groups the services behind the API.
type Handler struct {
	users        UserService
	categories   CategoryService
	transactions TransactionService
	logger       logging.Logger
}

func NewHandler(us UserService, cs CategoryService, ts TransactionService, l logging.Logger) *Handler {
	return &Handler{users: us, categories: cs, transactions: ts, logger: l.With("module", "http_api")}
}

// NewRouter mounts every version 1 route under apiv1.BasePath.
func NewRouter(h *Handler, corsOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(requestLogger(h.logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, r, h.logger, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, r, h.logger, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Route(apiv1.BasePath, func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Post(apiv1.RegisterPath, h.register)
		r.Post(apiv1.LoginPath, h.login)

		r.Group(func(r chi.Router) {
			r.Use(bearerAuth(h.users, h.logger))

			r.Route(apiv1.CategoriesPath, func(r chi.Router) {
				r.Get("/", h.listCategories)
				r.Post("/", h.createCategory)
				r.Put("/{id}", h.updateCategory)
				r.Delete("/{id}", h.deleteCategory)
			})

			r.Route(apiv1.TransactionsPath, func(r chi.Router) {
				r.Get("/", h.listTransactions)
				r.Post("/", h.createTransaction)
				r.Put("/{id}", h.updateTransaction)
				r.Delete("/{id}", h.deleteTransaction)
			})
		})
	})

	return router
}
