package server

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"secondbrain/internal/handlers"
	"secondbrain/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.Cors(os.Getenv("ALLOWED_ORIGINS")))
	r.Use(middlewares.RateLimit)
	r.Use(middlewares.PrometheusMiddleware)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.HelloWorldHandler)
	r.HandleFunc("/health", ch.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	s.registerItemRoutes(r)
	s.registerFolderRoutes(r)
	s.registerTagRoutes(r)
	s.registerAuthRoutes(r)

	return r
}

func (s *Server) registerItemRoutes(r *mux.Router) {
	ih := handlers.NewItemHandler(s.itemService)

	r.Handle("/api/items", middlewares.AuthMiddleware(http.HandlerFunc(ih.GetItems))).Methods("GET", "OPTIONS")
	r.Handle("/api/items", middlewares.AuthMiddleware(http.HandlerFunc(ih.AddItem))).Methods("POST", "OPTIONS")
	r.Handle("/api/items/tags", middlewares.AuthMiddleware(http.HandlerFunc(ih.GetAllTags))).Methods("GET", "OPTIONS")
	r.Handle("/api/items/{id}", middlewares.AuthMiddleware(http.HandlerFunc(ih.GetItemByID))).Methods("GET", "OPTIONS")
	r.Handle("/api/items/{id}", middlewares.AuthMiddleware(http.HandlerFunc(ih.UpdateItem))).Methods("PUT", "OPTIONS")
	r.Handle("/api/items/{id}", middlewares.AuthMiddleware(http.HandlerFunc(ih.DeleteItem))).Methods("DELETE", "OPTIONS")
}

func (s *Server) registerFolderRoutes(r *mux.Router) {
	fh := handlers.NewFolderHandler(s.folderService)

	r.Handle("/api/folders", middlewares.AuthMiddleware(http.HandlerFunc(fh.AddFolder))).Methods("POST", "OPTIONS")
	r.Handle("/api/folders", middlewares.AuthMiddleware(http.HandlerFunc(fh.GetFolders))).Methods("GET", "OPTIONS")
	r.Handle("/api/folders/{id}", middlewares.AuthMiddleware(http.HandlerFunc(fh.GetFolderByID))).Methods("GET", "OPTIONS")
	r.Handle("/api/folders/{id}", middlewares.AuthMiddleware(http.HandlerFunc(fh.UpdateFolder))).Methods("PUT", "OPTIONS")
	r.Handle("/api/folders/{id}", middlewares.AuthMiddleware(http.HandlerFunc(fh.DeleteFolder))).Methods("DELETE", "OPTIONS")
}

func (s *Server) registerTagRoutes(r *mux.Router) {
	th := handlers.NewTagHandler(s.tagService)

	r.Handle("/api/tags", middlewares.AuthMiddleware(http.HandlerFunc(th.GetUserTags))).Methods("GET", "OPTIONS")
	r.Handle("/api/tags/{id}", middlewares.AuthMiddleware(http.HandlerFunc(th.UpdateTag))).Methods("PUT", "OPTIONS")
}

func (s *Server) registerAuthRoutes(r *mux.Router) {
	uh := handlers.NewUserHandler(s.userService)
	ah := handlers.NewAuthHandler(s.authService)

	r.Handle("/api/me", middlewares.AuthMiddleware(http.HandlerFunc(uh.GetMyProfile))).Methods("GET", "OPTIONS")
	r.Handle("/api/me", middlewares.AuthMiddleware(http.HandlerFunc(uh.UpdateMyProfile))).Methods("PATCH", "PUT", "OPTIONS")
	r.Handle("/api/me", middlewares.AuthMiddleware(http.HandlerFunc(uh.DeleteMyProfile))).Methods("DELETE", "OPTIONS")

	r.HandleFunc("/api/auth/success", ah.AuthSuccess).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/auth/error", ah.AuthError).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/auth/{provider}", ah.ProviderAuth).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/auth/{provider}/callback", ah.ProviderCallback).Methods("GET", "OPTIONS")
}
