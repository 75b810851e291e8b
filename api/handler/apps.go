package handler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"argocd-status/api/model"
)

func (h *Handler) ListApps(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	items, err := h.fetcher.FetchAll(ctx)
	if err != nil {
		h.log.WithError(err).Error("error fetching ArgoCD applications")
		h.metrics.UpstreamFailed()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.metrics.UpstreamSucceeded()

	apps, dropped := h.mapper.MapAll(items)
	h.metrics.Observe(len(apps), dropped)
	if dropped > 0 {
		h.log.WithFields(logrus.Fields{
			"fetched": len(items),
			"dropped": dropped,
		}).Warn("some applications were left out of the listing")
	}

	writeJSON(w, model.AppList{Apps: apps})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
