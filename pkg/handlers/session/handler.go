package session

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/gws-tools/scubacfg/pkg/services/builder"
	"github.com/gws-tools/scubacfg/pkg/services/catalog"
	"github.com/gws-tools/scubacfg/pkg/services/document"
	"github.com/gws-tools/scubacfg/pkg/services/profiles"
	"github.com/gws-tools/scubacfg/pkg/services/session"
	"github.com/rs/zerolog"
)

type Handler struct {
	store    session.Store
	registry catalog.Registry
	profiles profiles.Registry
}

// NewHandler wires the session API. The profile registry may be nil when no
// profiles file is configured.
func NewHandler(store session.Store, registry catalog.Registry, profileReg profiles.Registry) *Handler {
	return &Handler{store: store, registry: registry, profiles: profileReg}
}

type sessionResponse struct {
	ID    string              `json:"id,omitempty"`
	State domain.SessionState `json:"state"`
}

type violationsResponse struct {
	Violations []domain.Violation `json:"violations"`
}

type errorResponse struct {
	Error      string             `json:"error"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps the two expected error classes onto HTTP statuses:
// validation problems are 422, parse problems 400.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *builder.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Violations: vErr.Violations})
		return
	}
	var pErr *document.ParseError
	if errors.As(err, &pErr) {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: pErr.Error()})
		return
	}
	writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) *builder.Builder {
	id := chi.URLParam(r, "session")
	b, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
		return nil
	}
	return b
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, b, err := h.store.Create(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, sessionResponse{ID: id, State: b.State()})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		State    domain.SessionState   `json:"state"`
		Document domain.ConfigDocument `json:"document"`
	}{State: b.State(), Document: b.Document()})
}

func (h *Handler) ListBaselines(w http.ResponseWriter, r *http.Request) {
	names, err := h.registry.Baselines(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, names)
}

func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "baseline")
	cat, err := h.registry.Catalog(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	policies, ok := cat[name]
	if !ok {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "unknown baseline " + name})
		return
	}
	writeJSON(w, r, http.StatusOK, policies)
}

type organizationRequest struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

func (h *Handler) SetOrganization(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	var req organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if err := b.SetOrganization(req.Name, req.Unit, req.Description); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

type productsRequest struct {
	Products []string `json:"products"`
}

func (h *Handler) SetProducts(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	var req productsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if err := b.SelectBaselines(req.Products); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

type omissionRequest struct {
	PolicyID   string `json:"policy_id"`
	Rationale  string `json:"rationale"`
	Expiration string `json:"expiration"`
}

func (h *Handler) PutOmission(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	var req omissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	expiration, ok := parseOptionalDate(w, r, req.Expiration)
	if !ok {
		return
	}
	if err := b.AddOmission(req.PolicyID, req.Rationale, expiration); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

func (h *Handler) DeleteOmission(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	b.RemoveOmission(chi.URLParam(r, "policy"))
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

type annotationRequest struct {
	PolicyID        string `json:"policy_id"`
	Comment         string `json:"comment"`
	Incorrect       bool   `json:"incorrect"`
	RemediationDate string `json:"remediationDate"`
}

func (h *Handler) PutAnnotation(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	var req annotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	remediation, ok := parseOptionalDate(w, r, req.RemediationDate)
	if !ok {
		return
	}
	if err := b.AddAnnotation(req.PolicyID, req.Comment, req.Incorrect, remediation); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

func (h *Handler) DeleteAnnotation(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	b.RemoveAnnotation(chi.URLParam(r, "policy"))
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

type breakGlassRequest struct {
	Email string `json:"email"`
}

func (h *Handler) PutBreakGlass(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	var req breakGlassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if err := b.AddBreakGlass(req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

func (h *Handler) DeleteBreakGlass(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	b.RemoveBreakGlass(chi.URLParam(r, "email"))
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

type outputRequest struct {
	Directory string   `json:"directory"`
	Formats   []string `json:"formats"`
	Quiet     bool     `json:"quiet"`
	DarkMode  bool     `json:"darkMode"`
}

func (h *Handler) SetOutput(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	var req outputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	b.SetOutput(domain.OutputSettings{
		Directory: req.Directory,
		Formats:   req.Formats,
		Quiet:     req.Quiet,
		DarkMode:  req.DarkMode,
	})
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

type authRequest struct {
	Mode            string `json:"mode"`
	CredentialsFile string `json:"credentialsFile"`
	CustomerID      string `json:"customerId"`
	SubjectEmail    string `json:"subjectEmail"`
}

func (h *Handler) SetAuth(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	err := b.SetAuth(domain.AuthSettings{
		Mode:            domain.AuthMode(req.Mode),
		CredentialsFile: req.CredentialsFile,
		CustomerID:      req.CustomerID,
		SubjectEmail:    req.SubjectEmail,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

// ApplyAuthProfile fills service-account settings from a named profile in
// the profiles file.
func (h *Handler) ApplyAuthProfile(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	if h.profiles == nil {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "no profiles file configured"})
		return
	}
	auth, err := h.profiles.GetAuth(r.Context(), chi.URLParam(r, "profile"))
	if err != nil {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err := b.SetAuth(auth); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	violations := b.Validate()
	if violations == nil {
		violations = []domain.Violation{}
	}
	writeJSON(w, r, http.StatusOK, violationsResponse{Violations: violations})
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	format := document.FormatYAML
	if q := r.URL.Query().Get("format"); q != "" {
		parsed, err := document.ParseFormat(q)
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		format = parsed
	}
	data, err := b.Export(format)
	if err != nil {
		writeError(w, r, err)
		return
	}
	contentType := "text/yaml"
	if format == document.FormatJSON {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write exported document")
	}
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	b := h.session(w, r)
	if b == nil {
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}
	if err := b.Import(data); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{State: b.State()})
}

func parseOptionalDate(w http.ResponseWriter, r *http.Request, s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed date " + s + ", expected YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}
