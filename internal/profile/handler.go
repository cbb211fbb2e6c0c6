// HTTP handlers for the profile routes.
//
// All routes expect an x-user-id header forwarded by the Gateway.
//
// Routes:
//
//	POST /profile        → update career profile (onboarding)
//	GET  /profile/status → onboarding status
package profile

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Handler holds shared dependencies for the profile routes.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the profile routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/profile", h.handleUpdate)
	mux.HandleFunc("/profile/status", h.handleStatus)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Update(r.Context(), userID, in)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			jsonError(w, ve.Msg, http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			jsonError(w, "user not found", http.StatusNotFound)
		default:
			log.Printf("[profile] update error: %v", err)
			jsonError(w, "database error", http.StatusInternalServerError)
		}
		return
	}

	jsonOK(w, p)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	onboarded, err := h.svc.OnboardingStatus(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			jsonError(w, "user not found", http.StatusNotFound)
			return
		}
		log.Printf("[profile] status error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]bool{"isOnboarded": onboarded})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
