package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/services"
	"github.com/desertthunder/singme/internal/validation"
)

// RecommendationService is the part of [services.RecommendationService] the HTTP layer calls.
type RecommendationService interface {
	Insert(ctx context.Context, name, link string) (*models.Recommendation, error)
	Upvote(ctx context.Context, id int64) (*models.Recommendation, error)
	Downvote(ctx context.Context, id int64) (*models.Recommendation, error)
	GetRandom(ctx context.Context) (*models.Recommendation, error)
	GetTop(ctx context.Context, amount int) ([]*models.Recommendation, error)
	Get(ctx context.Context) ([]*models.Recommendation, error)
	GetByID(ctx context.Context, id int64) (*models.Recommendation, error)
	RemoveAll(ctx context.Context) error
}

// ScenarioService is the part of [services.ScenarioService] the admin routes call.
type ScenarioService interface {
	Create(ctx context.Context, amount, score int) ([]*models.Recommendation, error)
}

var (
	_ RecommendationService = (*services.RecommendationService)(nil)
	_ ScenarioService       = (*services.ScenarioService)(nil)
)

// CreateRecommendationRequest is the body of POST /recommendations.
type CreateRecommendationRequest struct {
	Name string `json:"name" validate:"required,notblank"`
	Link string `json:"youtubeLink" validate:"required,youtube"`
}

// VoteResponse is the body returned by the vote endpoints.
type VoteResponse struct {
	*models.Recommendation
	Removed bool `json:"removed"`
}

// createSegment is the id position value that selects scenario creation in POST /recommendations/{id}/{action}.
const createSegment = "create"

// RecommendationHandler serves the public /recommendations endpoints.
//
// When admin is set, POST /recommendations/create/{amount} is dispatched to it.
type RecommendationHandler struct {
	svc    RecommendationService
	admin  *AdminHandler
	logger *log.Logger
}

func NewRecommendationHandler(svc RecommendationService, admin *AdminHandler, logger *log.Logger) *RecommendationHandler {
	return &RecommendationHandler{svc: svc, admin: admin, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *RecommendationHandler) Routes() []Route {
	return []Route{
		{http.MethodPost, "/recommendations", h.insert},
		{http.MethodGet, "/recommendations", h.recent},
		{http.MethodGet, "/recommendations/random", h.random},
		{http.MethodGet, "/recommendations/top/{amount}", h.top},
		{http.MethodGet, "/recommendations/{id}", h.getByID},
		{http.MethodPost, "/recommendations/{id}/{action}", h.action},
	}
}

// action dispatches POST /recommendations/{id}/{action}. ServeMux cannot register
// /recommendations/create/{amount} beside /recommendations/{id}/upvote, so both share one pattern.
func (h *RecommendationHandler) action(w http.ResponseWriter, r *http.Request) {
	id, action := r.PathValue("id"), r.PathValue("action")
	switch {
	case id == createSegment && h.admin != nil:
		h.admin.scenario(w, r, action)
	case action == "upvote":
		h.upvote(w, r)
	case action == "downvote":
		h.downvote(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *RecommendationHandler) insert(w http.ResponseWriter, r *http.Request) {
	var req CreateRecommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, h.logger, verr)
		return
	}

	rec, err := h.svc.Insert(r.Context(), req.Name, req.Link)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *RecommendationHandler) recent(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.Get(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *RecommendationHandler) random(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetRandom(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *RecommendationHandler) top(w http.ResponseWriter, r *http.Request) {
	amount, err := intParam(r, "amount")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	recs, err := h.svc.GetTop(r.Context(), amount)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *RecommendationHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	rec, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *RecommendationHandler) upvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, h.svc.Upvote)
}

func (h *RecommendationHandler) downvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, h.svc.Downvote)
}

func (h *RecommendationHandler) vote(w http.ResponseWriter, r *http.Request, apply func(context.Context, int64) (*models.Recommendation, error)) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	rec, err := apply(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, VoteResponse{Recommendation: rec, Removed: services.Removed(rec)})
}

// AdminHandler serves data reset and scenario seeding.
type AdminHandler struct {
	recs      RecommendationService
	scenarios ScenarioService
	logger    *log.Logger
}

func NewAdminHandler(recs RecommendationService, scenarios ScenarioService, logger *log.Logger) *AdminHandler {
	return &AdminHandler{recs: recs, scenarios: scenarios, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *AdminHandler) Routes() []Route {
	return []Route{
		{http.MethodPost, "/recommendations/reset", h.reset},
		{http.MethodPost, "/scenarios/{amount}", h.createScenario},
	}
}

func (h *AdminHandler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.recs.RemoveAll(r.Context()); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) createScenario(w http.ResponseWriter, r *http.Request) {
	h.scenario(w, r, r.PathValue("amount"))
}

// scenario seeds amount recommendations. The score query parameter is the
// single recommendation's score when amount is 1, and the high-tier percentage otherwise.
// Without a score, several recommendations default to [services.DefaultHighTierPercent] instead of 0,
// so a bare seed yields a usable tier mix.
func (h *AdminHandler) scenario(w http.ResponseWriter, r *http.Request, rawAmount string) {
	amount, err := parseCount("amount", rawAmount)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	score := 0
	if amount > 1 {
		score = services.DefaultHighTierPercent
	}
	if raw := r.URL.Query().Get("score"); raw != "" {
		if score, err = strconv.Atoi(raw); err != nil {
			respondError(w, h.logger, validation.NewRequestValidationError("score", "number", "score must be a number"))
			return
		}
	}

	recs, err := h.scenarios.Create(r.Context(), amount, score)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, recs)
}

// HealthHandler reports liveness.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Routes() []Route {
	return []Route{{http.MethodGet, "/health", h.health}}
}

func (h *HealthHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// intParam reads a non-negative integer path parameter.
func intParam(r *http.Request, name string) (int, error) {
	return parseCount(name, r.PathValue(name))
}

func parseCount(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.NewRequestValidationError(name, "number", name+" must be a number")
	}
	if verr := validation.ValidateVar(name, n, "gte=0"); verr != nil {
		return 0, verr
	}
	return n, nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, validation.NewRequestValidationError("id", "number", "id must be a number")
	}
	return id, nil
}
