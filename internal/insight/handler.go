// Package insight implements the industry-insight refresh pipeline: prompt
// building, completion sanitising and validation, concurrency-safe storage,
// and the get-or-create read path.
//
// All routes expect an x-user-id header forwarded by the Gateway.
//
// Routes:
//
//	GET /insights → caller's industry insight, generated on first read
package insight

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shahbhavya7/Ace-360/internal/ai"
)

// Handler holds shared dependencies for the insight routes.
type Handler struct {
	pool *pgxpool.Pool
	svc  *Service
}

// NewHandler returns a configured Handler.
func NewHandler(pool *pgxpool.Pool, svc *Service) *Handler {
	return &Handler{pool: pool, svc: svc}
}

// RegisterRoutes mounts the insight routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/insights", h.handleInsights)
}

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	// The caller's industry is the lookup key; it comes from their profile.
	var industry *string
	err := h.pool.QueryRow(r.Context(),
		`SELECT industry FROM users WHERE clerk_user_id = $1`,
		userID,
	).Scan(&industry)
	if errors.Is(err, pgx.ErrNoRows) {
		jsonError(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[insight] user lookup error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	if industry == nil || *industry == "" {
		jsonError(w, "user has not completed onboarding", http.StatusConflict)
		return
	}

	in, err := h.svc.GetOrCreate(r.Context(), *industry)
	if err != nil {
		var malformed *MalformedError
		switch {
		case errors.As(err, &malformed),
			errors.Is(err, ai.ErrUnavailable),
			errors.Is(err, ai.ErrTimeout),
			errors.Is(err, ai.ErrEmptyResponse):
			log.Printf("[insight] generation failed for %q: %v", *industry, err)
			jsonError(w, "insight generation failed — try again later", http.StatusBadGateway)
		case errors.Is(err, ErrStorageTimeout), errors.Is(err, ErrStorageConflict):
			log.Printf("[insight] storage error for %q: %v", *industry, err)
			jsonError(w, "temporary storage error — try again later", http.StatusServiceUnavailable)
		default:
			log.Printf("[insight] getOrCreate error for %q: %v", *industry, err)
			jsonError(w, "database error", http.StatusInternalServerError)
		}
		return
	}

	jsonOK(w, in)
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
