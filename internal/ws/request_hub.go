package ws

import "synergyblood/internal/models"

// RequestEvent is pushed to every connected client when a blood request is
// created or dismissed. Clients respond by refetching their feed; the event
// carries the record only as a hint, the feed is always recomputed from a
// full snapshot server-side.
type RequestEvent struct {
	Type    string               `json:"type"` // request_created | request_dismissed
	Request *models.BloodRequest `json:"request"`
}

// RequestHub streams request lifecycle events to all connected clients.
// It satisfies service.FeedBroadcaster.
type RequestHub struct {
	*Hub
}

func NewRequestHub() *RequestHub {
	return &RequestHub{Hub: NewHub()}
}

func (h *RequestHub) RequestCreated(req *models.BloodRequest) {
	h.BroadcastAll(RequestEvent{Type: "request_created", Request: req})
}

func (h *RequestHub) RequestDismissed(req *models.BloodRequest) {
	h.BroadcastAll(RequestEvent{Type: "request_dismissed", Request: req})
}
