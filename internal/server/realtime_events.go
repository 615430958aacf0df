package server

import (
	"context"
	"log"
)

// publishUserEvent delivers an already-marshaled event to one user: locally
// through the hub and across instances through Redis pub/sub.
func (s *Server) publishUserEvent(userID uint, message string) {
	if message == "" {
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			log.Printf("failed to publish event to user %d: %v", userID, err)
		}
	}
}

// publishBroadcastEvent delivers an already-marshaled event to every
// connected client on every instance.
func (s *Server) publishBroadcastEvent(message string) {
	if message == "" {
		return
	}
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish broadcast event: %v", err)
		}
	}
}
