package cache

import (
	"context"
	"encoding/json"
	"strconv"

	"canteen/internal/model"
	"canteen/internal/repository"
)

const (
	employeeKeyPrefix = "canteen:employee:"
	menuItemKeyPrefix = "canteen:menu:item:"
	menuListKey       = "canteen:menu:all"
)

// cachedEmployeeRepository is a read-through cache in front of the employee directory.
type cachedEmployeeRepository struct {
	repository.EmployeeRepository
	cache *Client
}

// NewEmployeeRepository wraps next with a read-through cache for GetByID.
func NewEmployeeRepository(next repository.EmployeeRepository, cache *Client) repository.EmployeeRepository {
	return &cachedEmployeeRepository{EmployeeRepository: next, cache: cache}
}

func employeeKey(id int64) string {
	return employeeKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *cachedEmployeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	if raw := r.cache.Get(ctx, employeeKey(id)); raw != nil {
		var e model.Employee
		if err := json.Unmarshal(raw, &e); err == nil {
			return &e, nil
		}
	}

	e, err := r.EmployeeRepository.GetByID(ctx, id)
	if err != nil || e == nil {
		return e, err
	}

	if raw, err := json.Marshal(e); err == nil {
		r.cache.Set(ctx, employeeKey(id), raw)
	}
	return e, nil
}

func (r *cachedEmployeeRepository) Upsert(ctx context.Context, e *model.Employee) error {
	if err := r.EmployeeRepository.Upsert(ctx, e); err != nil {
		return err
	}
	r.cache.Delete(ctx, employeeKey(e.ID))
	return nil
}

func (r *cachedEmployeeRepository) UpsertMany(ctx context.Context, employees []model.Employee) error {
	if err := r.EmployeeRepository.UpsertMany(ctx, employees); err != nil {
		return err
	}
	keys := make([]string, 0, len(employees))
	for _, e := range employees {
		keys = append(keys, employeeKey(e.ID))
	}
	r.cache.Delete(ctx, keys...)
	return nil
}

func (r *cachedEmployeeRepository) Delete(ctx context.Context, id int64) error {
	if err := r.EmployeeRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Delete(ctx, employeeKey(id))
	return nil
}

// cachedMenuRepository is a read-through cache in front of the menu.
type cachedMenuRepository struct {
	repository.MenuRepository
	cache *Client
}

// NewMenuRepository wraps next with a read-through cache for GetByName and List.
func NewMenuRepository(next repository.MenuRepository, cache *Client) repository.MenuRepository {
	return &cachedMenuRepository{MenuRepository: next, cache: cache}
}

func (r *cachedMenuRepository) GetByName(ctx context.Context, name string) (*model.MenuItem, error) {
	key := menuItemKeyPrefix + name
	if raw := r.cache.Get(ctx, key); raw != nil {
		var item model.MenuItem
		if err := json.Unmarshal(raw, &item); err == nil {
			return &item, nil
		}
	}

	item, err := r.MenuRepository.GetByName(ctx, name)
	if err != nil || item == nil {
		return item, err
	}

	if raw, err := json.Marshal(item); err == nil {
		r.cache.Set(ctx, key, raw)
	}
	return item, nil
}

func (r *cachedMenuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	if raw := r.cache.Get(ctx, menuListKey); raw != nil {
		var items []model.MenuItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
	}

	items, err := r.MenuRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(items); err == nil {
		r.cache.Set(ctx, menuListKey, raw)
	}
	return items, nil
}

func (r *cachedMenuRepository) Upsert(ctx context.Context, item *model.MenuItem) error {
	if err := r.MenuRepository.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, menuItemKeyPrefix+item.Name, menuListKey)
	return nil
}

func (r *cachedMenuRepository) Delete(ctx context.Context, name string) error {
	if err := r.MenuRepository.Delete(ctx, name); err != nil {
		return err
	}
	r.cache.Delete(ctx, menuItemKeyPrefix+name, menuListKey)
	return nil
}
