package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shipquote/internal/engine"
	"shipquote/internal/metrics"
	"shipquote/internal/model"
)

// QuotesHandler handles POST /v1/shipping/quotes. Cart items are reduced to
// a snapshot at this boundary; the engine only ever sees the three scalars.
func (s *Server) QuotesHandler(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid quote request", err.Error(), r.URL.Path)
		return
	}
	storeID := s.storeScope(r)
	cart := model.Reduce(toCartItems(req.Items))
	quotes, err := s.Engine.Quote(r.Context(), storeID, req.Destination.toModel(), cart)
	if err != nil {
		metrics.QuoteRequests.WithLabelValues("error").Inc()
		writeProblem(w, http.StatusInternalServerError, "Quote failed", err.Error(), r.URL.Path)
		return
	}
	outcome := "options"
	if len(quotes) == 0 {
		outcome = "empty"
	}
	metrics.QuoteRequests.WithLabelValues(outcome).Inc()
	metrics.QuoteOptions.Observe(float64(len(quotes)))
	writeJSON(w, http.StatusOK, map[string]any{"quotes": quotes, "count": len(quotes)})
}

// AvailabilityHandler handles POST /v1/shipping/availability.
func (s *Server) AvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid availability request", err.Error(), r.URL.Path)
		return
	}
	storeID := s.storeScope(r)
	cart := model.Reduce(toCartItems(req.Items))
	available, err := s.Engine.IsAvailable(r.Context(), storeID, req.Destination.toModel(), cart)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Availability check failed", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// MethodQuoteHandler handles POST /v1/shipping/methods/{methodID}/quote, the
// checkout-time re-validation of a previously chosen method.
func (s *Server) MethodQuoteHandler(w http.ResponseWriter, r *http.Request) {
	methodID := chi.URLParam(r, "methodID")
	var req methodQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid method quote request", err.Error(), r.URL.Path)
		return
	}
	storeID := s.storeScope(r)
	cart := model.Reduce(toCartItems(req.Items))
	quote, err := s.Engine.QuoteForMethod(r.Context(), storeID, methodID, cart)
	switch {
	case errors.Is(err, engine.ErrMethodNotFound):
		writeProblem(w, http.StatusNotFound, "Method not found", "no shipping method with id "+methodID, r.URL.Path)
		return
	case errors.Is(err, engine.ErrMethodNotApplicable):
		writeProblem(w, http.StatusUnprocessableEntity, "Method not applicable",
			"the selected shipping method no longer applies to the cart", r.URL.Path)
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Method quote failed", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quote": quote})
}

// ExplainHandler handles POST /v1/shipping/explain, the merchant debugging
// surface. Items are optional so a merchant can probe pure zone matching.
func (s *Server) ExplainHandler(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid explain request", err.Error(), r.URL.Path)
		return
	}
	storeID := s.storeScope(r)
	cart := model.Reduce(toCartItems(req.Items))
	report, err := s.Engine.Explain(r.Context(), storeID, req.Destination.toModel(), cart)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Explain failed", err.Error(), r.URL.Path)
		return
	}
	metrics.ExplainRequests.Inc()
	s.Log.Debug("explain generated",
		zap.String("storeId", storeID),
		zap.Int("matchedZones", report.MatchedZones),
		zap.Int("availableOptions", report.AvailableOptions))
	writeJSON(w, http.StatusOK, report)
}
