package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrNodeExists   = errors.New("node already exists")
)

// NodeService manages the registry of protected resource nodes that
// consuming applications hang their content off.
type NodeService struct {
	Store store.Store
}

func (s *NodeService) Create(ctx context.Context, id, defaultText string) (domain.Node, error) {
	log := slogx.FromContext(ctx)

	node := domain.Node{ID: id, DefaultText: defaultText}
	if err := s.Store.Nodes().Create(ctx, node); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Node{}, ErrNodeExists
		}
		log.Error("failed to create node", slog.Any("error", err))
		return domain.Node{}, err
	}

	log.Info("node created", slog.String("node_id", id))
	return node, nil
}

func (s *NodeService) Get(ctx context.Context, id string) (domain.Node, error) {
	node, err := s.Store.Nodes().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Node{}, ErrNodeNotFound
		}
		return domain.Node{}, err
	}
	return node, nil
}

func (s *NodeService) UpdateText(ctx context.Context, id, defaultText string) error {
	err := s.Store.Nodes().UpdateText(ctx, id, defaultText)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNodeNotFound
	}
	return err
}

func (s *NodeService) Delete(ctx context.Context, id string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Nodes().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNodeNotFound
		}
		return err
	}

	log.Info("node deleted", slog.String("node_id", id))
	return nil
}

func (s *NodeService) List(ctx context.Context) ([]domain.Node, error) {
	return s.Store.Nodes().List(ctx)
}
