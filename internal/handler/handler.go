package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/Dan9191/credit-dashboard/internal/middleware"
	"github.com/Dan9191/credit-dashboard/internal/models"
	"github.com/Dan9191/credit-dashboard/internal/render"
	"github.com/Dan9191/credit-dashboard/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Query parameters of the dashboard filters
const (
	ParamPurpose     = "purpose"
	ParamState       = "state"
	ParamDependents  = "dependents"
	ParamLatePurpose = "late_purpose"
)

type Handler struct {
	svc      *service.Service
	renderer *render.Renderer
	log      *logrus.Logger
}

func NewHandler(svc *service.Service, renderer *render.Renderer, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, renderer: renderer, log: log}
}

// Health reports liveness and the number of loaded records
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "rows": h.svc.Rows()})
}

// Options lists the values of every filter
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	opts, err := h.svc.Options()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, opts)
}

// Dashboard returns every chart spec for the filters in the query
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(FilterState(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

// Chart returns one chart spec
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Chart(mux.Vars(r)["name"], FilterState(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

// ChartImage renders one chart as PNG or SVG
func (h *Handler) ChartImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	c, err := h.svc.Chart(vars["name"], FilterState(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch vars["format"] {
	case "svg":
		if c.Kind != models.KindHeatmap {
			h.fail(w, r, render.ErrUnsupportedFormat)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		if err := h.renderer.SVG(w, c); err != nil {
			h.log.WithField("request_id", middleware.RequestID(r.Context())).Errorf("Failed to write svg %s: %v", c.Name, err)
		}
	default:
		w.Header().Set("Content-Type", "image/png")
		if err := h.renderer.PNG(w, c); err != nil {
			h.log.WithField("request_id", middleware.RequestID(r.Context())).Warnf("Chart %s fell back to placeholder: %v", c.Name, err)
			if err := h.renderer.Placeholder(w, c.Title, "Chart unavailable"); err != nil {
				h.log.Errorf("Failed to write placeholder: %v", err)
			}
		}
	}
}

// FilterState reads the dashboard filters from a query. Multi-value filters
// accept repeated and comma-separated values; a filter given with no value
// (?purpose=) is an explicit empty selection, an absent filter selects all.
func FilterState(q url.Values) models.FilterState {
	return models.FilterState{
		LatePaymentPurpose: strings.TrimSpace(q.Get(ParamLatePurpose)),
		Purposes:           selection(q, ParamPurpose),
		States:             selection(q, ParamState),
		Dependents:         selection(q, ParamDependents),
	}
}

func selection(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	out := []string{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUnknownChart):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidFilter):
		status = http.StatusBadRequest
	case errors.Is(err, render.ErrUnsupportedFormat):
		status = http.StatusUnsupportedMediaType
	}
	entry := h.log.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(r.Context()),
		"status":     status,
	})
	if status == http.StatusInternalServerError {
		entry.Errorf("Request failed: %v", err)
	} else {
		entry.Debugf("Request rejected: %v", err)
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Debugf("Failed to encode response: %v", err)
	}
}
