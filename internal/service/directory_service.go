package service

import (
	"context"
	"fmt"
	"strings"

	"canteen/internal/model"
	"canteen/internal/repository"
	"canteen/internal/roster"

	"github.com/rs/zerolog"
)

// directoryService implements DirectoryService.
type directoryService struct {
	employees repository.EmployeeRepository
	menu      repository.MenuRepository
	roster    roster.Loader
	logger    zerolog.Logger
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(
	employees repository.EmployeeRepository,
	menu repository.MenuRepository,
	rosterLoader roster.Loader,
	logger zerolog.Logger,
) DirectoryService {
	return &directoryService{
		employees: employees,
		menu:      menu,
		roster:    rosterLoader,
		logger:    logger.With().Str("service", "directory").Logger(),
	}
}

func (s *directoryService) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	return s.employees.List(ctx)
}

func (s *directoryService) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if e == nil {
		return nil, model.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *directoryService) UpsertEmployee(ctx context.Context, req model.EmployeeRequest) (*model.Employee, error) {
	e := &model.Employee{
		ID:     req.ID,
		Name:   strings.TrimSpace(req.Name),
		Mobile: strings.TrimSpace(req.Mobile),
	}
	if e.ID <= 0 || e.Name == "" {
		return nil, model.ErrInvalidEmployee
	}

	if err := s.employees.Upsert(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("employee_id", e.ID).Msg("employee saved")
	return e, nil
}

func (s *directoryService) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("employee_id", id).Msg("employee deleted")
	return nil
}

func (s *directoryService) ListMenu(ctx context.Context) ([]model.MenuItem, error) {
	return s.menu.List(ctx)
}

// UpsertMenuItem creates or reprices an item. Coupons already issued keep
// the net price they were stamped with.
func (s *directoryService) UpsertMenuItem(ctx context.Context, req model.MenuItemRequest) (*model.MenuItem, error) {
	item := &model.MenuItem{
		Name:     strings.TrimSpace(req.Name),
		Price:    req.Price,
		Discount: req.Discount,
	}
	if item.Name == "" || item.Price.IsNegative() || item.Discount.IsNegative() {
		return nil, model.ErrInvalidMenuItem
	}

	if err := s.menu.Upsert(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("item", item.Name).
		Str("price", model.FormatAmount(item.Price)).
		Str("discount", model.FormatAmount(item.Discount)).
		Msg("menu item saved")
	return item, nil
}

func (s *directoryService) DeleteMenuItem(ctx context.Context, name string) error {
	if err := s.menu.Delete(ctx, name); err != nil {
		return err
	}
	s.logger.Info().Str("item", name).Msg("menu item deleted")
	return nil
}

// ImportRoster loads the roster at path, relative to the roster directory,
// and upserts it atomically. Load failures reach the caller only as
// model.ErrInvalidRoster; the detail is logged.
func (s *directoryService) ImportRoster(ctx context.Context, path string) (int, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, model.NewDomainError(model.KindInvalid, model.ErrCodeInvalidRoster, "Roster path is required")
	}

	employees, err := s.roster.Load(ctx, path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("roster could not be loaded")
		return 0, model.ErrInvalidRoster
	}

	if err := s.employees.UpsertMany(ctx, employees); err != nil {
		return 0, fmt.Errorf("failed to import roster: %w", err)
	}

	s.logger.Info().Str("path", path).Int("employees", len(employees)).Msg("roster imported")
	return len(employees), nil
}
