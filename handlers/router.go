package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the public read routes and the authenticated mutation
// routes. Mutating routes never reach the handler without a verified
// principal in the request context.
func NewRouter(handler *HTTPHandler, jwtSecret []byte) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/posts", handler.HandleListPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{postId}", handler.HandleGetPost).Methods(http.MethodGet)
	r.HandleFunc("/maintenance/ping", handler.HandlePing).Methods(http.MethodGet)

	authed := r.NewRoute().Subrouter()
	authed.Use(PrincipalMiddleware(jwtSecret))
	authed.HandleFunc("/api/posts", handler.HandleCreatePost).Methods(http.MethodPost)
	authed.HandleFunc("/api/posts/{postId}", handler.HandleDeletePost).Methods(http.MethodDelete)
	authed.HandleFunc("/api/posts/like/{postId}", handler.HandleLikePost).Methods(http.MethodPost)
	authed.HandleFunc("/api/posts/unlike/{postId}", handler.HandleUnlikePost).Methods(http.MethodPost)
	authed.HandleFunc("/api/posts/comment/{postId}", handler.HandleAddComment).Methods(http.MethodPost)
	authed.HandleFunc("/api/posts/comment/{postId}/{commentId}", handler.HandleRemoveComment).Methods(http.MethodDelete)
	authed.HandleFunc("/api/notifications", handler.HandleListNotifications).Methods(http.MethodGet)

	return r
}
