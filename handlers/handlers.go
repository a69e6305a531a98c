// Package handlers serves the dashboard and the JSON API.
package handlers

import (
	"sentiment-analysis/live"
	"sentiment-analysis/service"
)

type Handlers struct {
	svc *service.Service
	hub *live.Hub
}

// New wires the handlers. hub may be nil, in which case /live is not offered.
func New(svc *service.Service, hub *live.Hub) *Handlers {
	return &Handlers{svc: svc, hub: hub}
}
