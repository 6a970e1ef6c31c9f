// Package listen runs a local HTTP server that receives webhook event
// notifications, for wiring a development machine up as a webhook target.
package listen

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Event is the notification body the API posts to webhook targets.
type Event struct {
	Event  string `json:"event"`
	ItemID string `json:"itemId"`
}

// Server receives webhook notifications on /webhook and delivers them on a
// channel.
type Server struct {
	srv    *http.Server
	mux    *http.ServeMux
	events chan Event
}

func NewServer() *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		events: make(chan Event, 16),
	}

	s.mux.HandleFunc("/webhook", s.handleEvent)

	s.srv = &http.Server{Handler: s.mux}
	return s
}

// Start listens on addr (":0" picks a free port) and returns the base URL.
// The server shuts down when ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("webhook listener error")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()

	return "http://" + ln.Addr().String(), nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Events returns the channel notifications are delivered on.
func (s *Server) Events() <-chan Event {
	return s.events
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	logrus.WithFields(logrus.Fields{
		"event":  event.Event,
		"itemId": event.ItemID,
	}).Info("webhook event received")

	select {
	case s.events <- event:
	default:
		// Drop rather than block the API's delivery attempt.
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}
