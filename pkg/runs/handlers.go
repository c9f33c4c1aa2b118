// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package runs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/group-sync-service/internal/http/types"
	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/tracing"
	itypes "github.com/canonical/group-sync-service/internal/types"
)

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/sync/runs", a.handleListRuns)
	mux.Get("/api/v0/sync/runs/{run_id}", a.handleGetRun)
	mux.Get("/api/v0/sync/runs/{run_id}/actions", a.handleListRunActions)
	mux.Post("/api/v0/sync/runs", a.handleTriggerRun)
}

func (a *API) handleListRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 0)

	runs, err := a.service.ListRuns(r.Context(), page, size)
	if err != nil {
		rr := types.Response{
			Status:  http.StatusInternalServerError,
			Message: err.Error(),
		}

		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(rr)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    runs,
			Message: "List of sync runs",
			Status:  http.StatusOK,
		},
	)
}

func (a *API) handleGetRun(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	runID := chi.URLParam(r, "run_id")

	run, err := a.service.GetRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(types.Response{
				Status:  http.StatusNotFound,
				Message: "Run not found",
			})
			return
		}

		rr := types.Response{
			Status:  http.StatusInternalServerError,
			Message: err.Error(),
		}

		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(rr)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    []itypes.SyncRun{*run},
			Message: "Run details",
			Status:  http.StatusOK,
		},
	)
}

func (a *API) handleListRunActions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	runID := chi.URLParam(r, "run_id")

	actions, err := a.service.ListRunActions(r.Context(), runID)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(types.Response{
				Status:  http.StatusNotFound,
				Message: "Run not found",
			})
			return
		}

		rr := types.Response{
			Status:  http.StatusInternalServerError,
			Message: err.Error(),
		}

		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(rr)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    actions,
			Message: "List of run actions",
			Status:  http.StatusOK,
		},
	)
}

func (a *API) handleTriggerRun(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	report, err := a.service.TriggerRun(r.Context())
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(types.Response{
				Status:  http.StatusConflict,
				Message: err.Error(),
			})
			return
		}

		rr := types.Response{
			Status:  http.StatusInternalServerError,
			Message: err.Error(),
		}

		// A failed run may still carry a partial report.
		if report != nil {
			rr.Data = []itypes.RunReport{*report}
		}

		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(rr)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    []itypes.RunReport{*report},
			Message: "Sync run completed",
			Status:  http.StatusOK,
		},
	)
}

func queryInt(r *http.Request, name string, fallback int64) int64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
