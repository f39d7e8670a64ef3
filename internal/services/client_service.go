package services

import (
	"context"
	"fmt"
	"log/slog"

	"servicios/internal/amqp"
	"servicios/internal/core"
	"servicios/internal/store"
)

// ServiceRequest registers a service either for an existing client
// (ClientID) or for a client created on the fly (NewClient).
type ServiceRequest struct {
	ClientID  string
	NewClient *core.Client
	Service   core.Service
}

// ClientService orchestrates service and client mutations and emits domain
// events after each successful write.
type ClientService struct {
	store     store.Store
	publisher EventPublisher
}

func NewClientService(st store.Store, publisher EventPublisher) *ClientService {
	return &ClientService{store: st, publisher: publisher}
}

func (s *ClientService) ListClients(ctx context.Context, userID string) ([]core.Client, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	clients, err := s.store.FetchClients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) RegisterService(ctx context.Context, userID string, req ServiceRequest) (core.Service, error) {
	if err := requireUser(userID); err != nil {
		return core.Service{}, err
	}

	var (
		created core.Service
		err     error
	)
	if req.NewClient != nil {
		created, err = s.store.CreateServiceWithClient(ctx, userID, *req.NewClient, req.Service)
	} else {
		svc := req.Service
		svc.ClientID = req.ClientID
		created, err = s.store.CreateService(ctx, userID, svc)
	}
	if err != nil {
		return core.Service{}, fmt.Errorf("register service: %w", err)
	}

	publish(ctx, s.publisher, amqp.NewEvent(amqp.ServiceCreated, userID, created.ID))
	return created, nil
}

func (s *ClientService) GetService(ctx context.Context, userID, id string) (core.Service, error) {
	if err := requireUser(userID); err != nil {
		return core.Service{}, err
	}
	return s.store.GetService(ctx, userID, id)
}

func (s *ClientService) UpdateService(ctx context.Context, userID, id string, u core.ServiceUpdate) (core.Service, error) {
	if err := requireUser(userID); err != nil {
		return core.Service{}, err
	}
	updated, err := s.store.UpdateService(ctx, userID, id, u)
	if err != nil {
		return core.Service{}, fmt.Errorf("update service: %w", err)
	}
	publish(ctx, s.publisher, amqp.NewEvent(amqp.ServiceUpdated, userID, id))
	return updated, nil
}

// DeleteClient removes the client and all its services as one unit. On
// failure the client is still there and the error wraps
// core.ErrCascadeAborted.
func (s *ClientService) DeleteClient(ctx context.Context, userID, clientID string) (int64, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	removed, err := s.store.DeleteClientCascade(ctx, userID, clientID)
	if err != nil {
		return 0, fmt.Errorf("delete client %s: %w", clientID, err)
	}

	slog.InfoContext(ctx, "Client deleted",
		"client_id", clientID,
		"services_removed", removed)

	e := amqp.NewEvent(amqp.ClientDeleted, userID, clientID)
	e.Count = removed
	publish(ctx, s.publisher, e)
	return removed, nil
}
