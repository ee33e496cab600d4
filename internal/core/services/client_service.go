package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	now := time.Now()
	client := domain.Client{
		ClientID: uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = updaterUserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) ListClients(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Client], error) {
	return s.clientRepo.ListClients(ctx, params)
}

func (s *clientService) SearchClients(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Client], error) {
	return s.clientRepo.SearchClients(ctx, query, params)
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string) error {
	return s.clientRepo.DeleteClient(ctx, clientID)
}
