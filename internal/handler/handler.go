package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dan9191/usuarios-service/internal/repository"
	"github.com/Dan9191/usuarios-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// userRequest is the body accepted by create and update
type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRoutes mounts the /usuarios resource on r
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/usuarios", h.ListUsers).Methods("GET")
	r.HandleFunc("/usuarios", h.CreateUser).Methods("POST")
	r.HandleFunc("/usuarios/{id}", h.GetUser).Methods("GET")
	r.HandleFunc("/usuarios/{id}", h.UpdateUser).Methods("PUT")
	r.HandleFunc("/usuarios/{id}", h.DeleteUser).Methods("DELETE")
}

// ListUsers handles GET /usuarios
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.svc.ListUsers()

	message := "Não há usuários cadastrados"
	if len(users) > 0 {
		message = fmt.Sprintf("Total de usuários: %d", len(users))
	}
	h.respond(w, r, http.StatusOK, message, "usuarios", users)
}

// CreateUser handles POST /usuarios
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req := h.decodeUser(r)

	user, err := h.svc.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		h.log.Errorf("Failed to create user: %v", err)
		h.respond(w, r, http.StatusInternalServerError, "Erro ao cadastrar usuário", "", nil)
		return
	}
	h.respond(w, r, http.StatusCreated, "Usuário cadastrado com sucesso!", "usuario", user)
}

// GetUser handles GET /usuarios/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	id, ok := parseID(rawID)
	if !ok {
		h.notFound(w, r, rawID)
		return
	}
	user, err := h.svc.GetUserByID(id)
	if err != nil {
		h.handleError(w, r, rawID, err)
		return
	}
	h.respond(w, r, http.StatusOK, fmt.Sprintf("Usuário com id %s encontrado!", rawID), "user", user)
}

// UpdateUser handles PUT /usuarios/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]
	req := h.decodeUser(r)

	id, ok := parseID(rawID)
	if !ok {
		h.notFound(w, r, rawID)
		return
	}
	user, err := h.svc.UpdateUser(id, req.Name, req.Email, req.Password)
	if err != nil {
		h.handleError(w, r, rawID, err)
		return
	}
	h.respond(w, r, http.StatusOK, fmt.Sprintf("Usuário com id %s atualizado com sucesso!", rawID), "user", user)
}

// DeleteUser handles DELETE /usuarios/{id}. Removal is not supported; the
// request is answered with an empty body and storage is left untouched.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// decodeUser reads the request body. Malformed bodies are not rejected,
// fields that could not be decoded stay empty.
func (h *Handler) decodeUser(r *http.Request) userRequest {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debugf("Ignoring unreadable request body: %v", err)
	}
	return req
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, rawID string, err error) {
	if errors.Is(err, repository.ErrUserNotFound) {
		h.notFound(w, r, rawID)
		return
	}
	h.log.Errorf("Request for user %s failed: %v", rawID, err)
	h.respond(w, r, http.StatusInternalServerError, "Erro interno", "", nil)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, rawID string) {
	h.respond(w, r, http.StatusNotFound, fmt.Sprintf("Usuário com id %s não encontrado!", rawID), "", nil)
}

// respond writes the {message, key: payload} envelope as JSON, or as XML
// when the client asks for it
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, message, key string, payload any) {
	if wantsXML(r) {
		body, err := renderXML(message, key, payload)
		if err != nil {
			h.log.Errorf("Failed to render XML: %v", err)
			http.Error(w, "Failed to render response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.WriteHeader(status)
		w.Write(body)
		return
	}

	body := map[string]any{"message": message}
	if key != "" {
		body[key] = payload
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

// parseID converts a path segment into a user id. Segments that are not
// base-10 integers can never match a stored user.
func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
