package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aretw0/cyberdesk/pkg/domain"
)

// subscribeEvents streams the conversation as server-sent events.
// The first event ("snapshot") carries the full view; each following "diff"
// event carries a domain.StateDiff against the previous state. The optional
// ?watch=transcript,checklist,mode,pending filter drops diffs touching none of
// the listed fields.
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	view, updates, cancel := s.conv.SubscribeWithSnapshot()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	prev := view.State
	if err := writeEvent(w, "snapshot", view); err != nil {
		return
	}
	flusher.Flush()

	watch := parseWatch(r.URL.Query().Get("watch"))
	s.log.Debug("sse client connected", "case_id", prev.CaseID)

	for {
		select {
		case <-r.Context().Done():
			s.log.Debug("sse client disconnected")
			return
		case next, ok := <-updates:
			if !ok {
				return
			}
			diff := domain.Diff(prev, next)
			prev = next
			if diff == nil || !watch.matches(diff) {
				continue
			}
			if err := writeEvent(w, "diff", diff); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}

type watchFilter map[string]bool

func parseWatch(raw string) watchFilter {
	if raw == "" {
		return nil
	}
	f := make(watchFilter)
	for _, field := range strings.Split(raw, ",") {
		if field = strings.TrimSpace(field); field != "" {
			f[field] = true
		}
	}
	return f
}

func (f watchFilter) matches(d *domain.StateDiff) bool {
	if len(f) == 0 {
		return true
	}
	return (f["transcript"] && d.Transcript != nil) ||
		(f["checklist"] && d.Checklist != nil) ||
		(f["mode"] && d.Mode != nil) ||
		(f["pending"] && d.Pending != nil) ||
		(f["node"] && d.CurrentNodeID != nil)
}
