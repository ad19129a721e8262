package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"tasks-go/app/apperror"
	"tasks-go/app/controllers"
	"tasks-go/app/middleware"
	"tasks-go/app/store"
)

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router, tasks *controllers.TaskController, lookups *controllers.LookupController, health *controllers.HealthController) {
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tasks", tasks.GetTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", tasks.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{taskID}", tasks.GetTaskByID).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskID}", tasks.UpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{taskID}", tasks.DeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/statuses", lookups.GetStatuses).Methods(http.MethodGet)
	api.HandleFunc("/users", lookups.GetUsers).Methods(http.MethodGet)

	router.HandleFunc("/healthz", health.GetHealth).Methods(http.MethodGet)

	for _, r := range []*mux.Router{router, api} {
		r.NotFoundHandler = statusHandler(http.StatusNotFound)
		r.MethodNotAllowedHandler = statusHandler(http.StatusMethodNotAllowed)
	}
}

func statusHandler(statusCode int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apperror.Write(w, statusCode, http.StatusText(statusCode))
	})
}

// NewHandler builds the full HTTP handler for a store.
func NewHandler(s store.Store, logger zerolog.Logger) http.Handler {
	router := mux.NewRouter()
	RegisterRoutes(router,
		controllers.NewTaskController(s),
		controllers.NewLookupController(s),
		controllers.NewHealthController(s),
	)
	return middleware.Logging(logger)(middleware.Recover(router))
}
