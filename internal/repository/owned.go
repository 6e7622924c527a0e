package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Ownable is implemented by every entity that belongs to a single user.
type Ownable interface {
	SetOwner(userID uint)
}

// Scope narrows a list query, e.g. by the expense filters.
type Scope func(tx *gorm.DB) *gorm.DB

// Owned is an owner-scoped repository over entity E. Every read and write
// is filtered by the owning user's id, so a row owned by someone else is
// indistinguishable from a row that does not exist. One implementation
// serves categories and expenses alike.
type Owned[E any, PE interface {
	*E
	Ownable
}] struct {
	db *gorm.DB
}

func NewOwned[E any, PE interface {
	*E
	Ownable
}](db *gorm.DB) *Owned[E, PE] {
	return &Owned[E, PE]{db: db}
}

// Create persists the entity with its owner foreign key set to ownerID.
// Generated id and column defaults are populated on return.
func (r *Owned[E, PE]) Create(ctx context.Context, e PE, ownerID uint) error {
	e.SetOwner(ownerID)
	return r.db.WithContext(ctx).Create(e).Error
}

// List returns all rows owned by ownerID, narrowed by the given scopes.
func (r *Owned[E, PE]) List(ctx context.Context, ownerID uint, scopes ...Scope) ([]E, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	for _, s := range scopes {
		tx = s(tx)
	}

	var items []E
	if err := tx.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns the row only if both id and owner match; (nil, nil) otherwise.
func (r *Owned[E, PE]) Get(ctx context.Context, id, ownerID uint) (PE, error) {
	var e E
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return PE(&e), nil
}

// Update applies a partial patch to the owned row. Keys absent from the
// patch are left untouched. Returns (nil, nil) when the row is missing or
// owned by someone else.
func (r *Owned[E, PE]) Update(ctx context.Context, id, ownerID uint, patch map[string]interface{}) (PE, error) {
	e, err := r.Get(ctx, id, ownerID)
	if err != nil || e == nil {
		return nil, err
	}
	if len(patch) == 0 {
		return e, nil
	}
	if err := r.db.WithContext(ctx).Model(e).Updates(patch).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the owned row, reporting whether anything was deleted.
// Dependent rows go with it through the cascade constraints.
func (r *Owned[E, PE]) Delete(ctx context.Context, id, ownerID uint) (bool, error) {
	e, err := r.Get(ctx, id, ownerID)
	if err != nil || e == nil {
		return false, err
	}
	if err := r.db.WithContext(ctx).Delete(e).Error; err != nil {
		return false, err
	}
	return true, nil
}
