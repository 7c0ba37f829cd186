package connection

import (
	"context"
	"fmt"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"gorm.io/gorm"
)

type ConnectionService struct {
	db                   *gorm.DB
	connectionRepository *ConnectionRepository
}

func NewConnectionService(db *gorm.DB, connectionRepository *ConnectionRepository) *ConnectionService {
	return &ConnectionService{
		db:                   db,
		connectionRepository: connectionRepository,
	}
}

func (s *ConnectionService) list(ctx context.Context, isNeed *bool) ([]ConnectionResponse, error) {
	connections, err := s.connectionRepository.FindByKind(ctx, s.db, isNeed)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	out := make([]ConnectionResponse, 0, len(connections))
	for i := range connections {
		out = append(out, toConnectionResponse(&connections[i]))
	}
	return out, nil
}

func (s *ConnectionService) List(ctx context.Context) ([]ConnectionResponse, error) {
	return s.list(ctx, nil)
}

func (s *ConnectionService) Needs(ctx context.Context) ([]ConnectionResponse, error) {
	needs := true
	return s.list(ctx, &needs)
}

func (s *ConnectionService) Offers(ctx context.Context) ([]ConnectionResponse, error) {
	offers := false
	return s.list(ctx, &offers)
}

func (s *ConnectionService) load(ctx context.Context, id uint32) (*model.Connection, error) {
	conn, err := s.connectionRepository.FindByID(ctx, s.db, id, repository.Preload("CreatedBy"))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("connection id=%d: %w", id, ErrConnectionNotFound)
		}
		return nil, fmt.Errorf("find connection: %w", err)
	}
	return conn, nil
}

func (s *ConnectionService) Get(ctx context.Context, id uint32) (*ConnectionResponse, error) {
	conn, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toConnectionResponse(conn)
	return &resp, nil
}

func (s *ConnectionService) Create(ctx context.Context, memberID uint32, req *ConnectionRequest) (*ConnectionResponse, error) {
	conn := &model.Connection{
		Title:       req.Title,
		Description: req.Description,
		IsNeed:      req.IsNeed,
		CreatedByID: memberID,
	}
	if err := s.connectionRepository.Create(ctx, s.db, conn); err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}

	logger.FromContext(ctx).Info("Connection created", "connection_id", conn.ID, "member_id", memberID, "is_need", conn.IsNeed)
	return s.Get(ctx, conn.ID)
}

// loadOwned returns the connection only when memberID created it
func (s *ConnectionService) loadOwned(ctx context.Context, id, memberID uint32) (*model.Connection, error) {
	conn, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if conn.CreatedByID != memberID {
		logger.FromContext(ctx).Warn("Connection change refused", "connection_id", id, "member_id", memberID)
		return nil, fmt.Errorf("connection id=%d member id=%d: %w", id, memberID, ErrNotOwner)
	}
	return conn, nil
}

func (s *ConnectionService) Update(ctx context.Context, id, memberID uint32, req *ConnectionRequest) (*ConnectionResponse, error) {
	conn, err := s.loadOwned(ctx, id, memberID)
	if err != nil {
		return nil, err
	}

	conn.Title = req.Title
	conn.Description = req.Description
	conn.IsNeed = req.IsNeed
	if err := s.connectionRepository.Update(ctx, s.db, conn); err != nil {
		return nil, fmt.Errorf("update connection: %w", err)
	}

	resp := toConnectionResponse(conn)
	return &resp, nil
}

// Delete removes the row for good
func (s *ConnectionService) Delete(ctx context.Context, id, memberID uint32) error {
	if _, err := s.loadOwned(ctx, id, memberID); err != nil {
		return err
	}
	if err := s.connectionRepository.HardDelete(ctx, s.db, id); err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}

	logger.FromContext(ctx).Info("Connection deleted", "connection_id", id, "member_id", memberID)
	return nil
}
