package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"devconnector/notifications"
	"devconnector/posts"
	"devconnector/schemas"
)

type NotificationsLister interface {
	ListForUser(ctx context.Context, userId schemas.UserId) ([]*notifications.Notification, error)
}

func NewHTTPHandler(manager *posts.Manager, notificationsLister NotificationsLister) *HTTPHandler {
	return &HTTPHandler{
		Manager:       manager,
		Notifications: notificationsLister,
	}
}

type HTTPHandler struct {
	Manager       *posts.Manager
	Notifications NotificationsLister
}

type CreatePostRequestData struct {
	Text        string `json:"text"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

type AddCommentRequestData struct {
	Text        string `json:"text"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

type DeletePostResponseData struct {
	Success bool `json:"success"`
}

func (h *HTTPHandler) HandleListPosts(rw http.ResponseWriter, r *http.Request) {
	postList, err := h.Manager.ListPosts(r.Context())
	if err != nil {
		h.writeCommonFailure(rw, err)
		return
	}

	response := make([]schemas.PostData, len(postList))
	for i, post := range postList {
		response[i] = post.ToPostData()
	}
	writeJSON(rw, http.StatusOK, response)
}

func (h *HTTPHandler) HandleGetPost(rw http.ResponseWriter, r *http.Request) {
	postId, ok := postIdFromRequest(rw, r)
	if !ok {
		return
	}

	post, err := h.Manager.GetPost(r.Context(), postId)
	if err != nil {
		h.writeCommonFailure(rw, err)
		return
	}

	writeJSON(rw, http.StatusOK, post.ToPostData())
}

func (h *HTTPHandler) HandleCreatePost(rw http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}

	var data CreatePostRequestData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(rw, http.StatusBadRequest, "bad_request", "Request body must be valid JSON.")
		return
	}

	post, err := h.Manager.CreatePost(r.Context(), principal, data.Text, data.DisplayName, data.AvatarURL)
	if err != nil {
		h.writeCommonFailure(rw, err)
		return
	}

	writeJSON(rw, http.StatusOK, post.ToPostData())
}

func (h *HTTPHandler) HandleDeletePost(rw http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}
	postId, ok := postIdFromRequest(rw, r)
	if !ok {
		return
	}

	err := h.Manager.DeletePost(r.Context(), postId, principal)
	if err != nil {
		if errors.Is(err, posts.ErrUnauthorized) {
			writeError(rw, http.StatusUnauthorized, "not_authorized", "User not authorized.")
			return
		}
		h.writeCommonFailure(rw, err)
		return
	}

	writeJSON(rw, http.StatusOK, DeletePostResponseData{Success: true})
}

func (h *HTTPHandler) HandleLikePost(rw http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}
	postId, ok := postIdFromRequest(rw, r)
	if !ok {
		return
	}

	post, err := h.Manager.LikePost(r.Context(), postId, principal)
	if err != nil {
		if errors.Is(err, posts.ErrAlreadyLiked) {
			writeError(rw, http.StatusBadRequest, "already_liked", "User already liked this post.")
			return
		}
		h.writeCommonFailure(rw, err)
		return
	}

	writeJSON(rw, http.StatusOK, post.ToPostData())
}

func (h *HTTPHandler) HandleUnlikePost(rw http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}
	postId, ok := postIdFromRequest(rw, r)
	if !ok {
		return
	}

	post, err := h.Manager.UnlikePost(r.Context(), postId, principal)
	if err != nil {
		if errors.Is(err, posts.ErrNotLiked) {
			writeError(rw, http.StatusBadRequest, "not_liked", "You have not yet liked this post.")
			return
		}
		h.writeCommonFailure(rw, err)
		return
	}

	writeJSON(rw, http.StatusOK, post.ToPostData())
}

func (h *HTTPHandler) HandleAddComment(rw http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}
	postId, ok := postIdFromRequest(rw, r)
	if !ok {
		return
	}

	var data AddCommentRequestData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(rw, http.StatusBadRequest, "bad_request", "Request body must be valid JSON.")
		return
	}

	post, err := h.Manager.AddComment(r.Context(), postId, principal, data.Text, data.DisplayName, data.AvatarURL)
	if err != nil {
		h.writeCommonFailure(rw, err)
		return
	}

	writeJSON(rw, http.StatusOK, post.ToPostData())
}

func (h *HTTPHandler) HandleRemoveComment(rw http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}
	postId, ok := postIdFromRequest(rw, r)
	if !ok {
		return
	}

	commentId := mux.Vars(r)["commentId"]
	if commentId == "" {
		writeError(rw, http.StatusNotFound, "comment_not_exists", "Comment does not exist.")
		return
	}

	post, err := h.Manager.RemoveComment(r.Context(), postId, commentId, principal)
	if err != nil {
		switch {
		case errors.Is(err, posts.ErrCommentNotFound):
			writeError(rw, http.StatusNotFound, "comment_not_exists", "Comment does not exist.")
		case errors.Is(err, posts.ErrUnauthorized):
			writeError(rw, http.StatusForbidden, "unauthorized", "User not authorized to delete this comment.")
		default:
			h.writeCommonFailure(rw, err)
		}
		return
	}

	writeJSON(rw, http.StatusOK, post.ToPostData())
}

func (h *HTTPHandler) HandleListNotifications(rw http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(rw, r)
	if !ok {
		return
	}

	notificationList, err := h.Notifications.ListForUser(r.Context(), principal)
	if err != nil {
		writeError(rw, http.StatusInternalServerError, "store_unavailable", "Storage temporarily unavailable.")
		return
	}

	response := make([]notifications.NotificationData, len(notificationList))
	for i, notification := range notificationList {
		response[i] = notification.ToNotificationData()
	}
	writeJSON(rw, http.StatusOK, response)
}

func (h *HTTPHandler) HandlePing(rw http.ResponseWriter, r *http.Request) {
	rw.WriteHeader(http.StatusOK)
}

// writeCommonFailure maps the failure kinds shared by every operation.
// Handlers map their operation-specific kinds before calling it.
func (h *HTTPHandler) writeCommonFailure(rw http.ResponseWriter, err error) {
	var validationErr *posts.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(rw, http.StatusBadRequest, validationErr.Fields)
	case errors.Is(err, posts.ErrNotFound):
		writeError(rw, http.StatusNotFound, "post_not_found", "Post not found.")
	default:
		writeError(rw, http.StatusInternalServerError, "store_unavailable", "Storage temporarily unavailable.")
	}
}

func requirePrincipal(rw http.ResponseWriter, r *http.Request) (schemas.UserId, bool) {
	principal, ok := PrincipalFromRequest(r)
	if !ok {
		writeError(rw, http.StatusUnauthorized, "not_authenticated", "Authorization token required.")
		return "", false
	}
	return principal, true
}

func postIdFromRequest(rw http.ResponseWriter, r *http.Request) (schemas.PostId, bool) {
	postId, err := schemas.IDFromHex(mux.Vars(r)["postId"])
	if err != nil {
		writeError(rw, http.StatusNotFound, "post_not_found", "Post not found.")
		return schemas.PostId{}, false
	}
	return postId, true
}

func writeJSON(rw http.ResponseWriter, status int, payload interface{}) {
	rawResponse, err := json.Marshal(payload)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_, _ = rw.Write(rawResponse)
}

func writeError(rw http.ResponseWriter, status int, key, message string) {
	writeJSON(rw, status, map[string]string{key: message})
}
