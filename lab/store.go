package lab

import "fmt"

// Roster holds the students known to a checkout service.
type Roster struct {
	students []*Student
}

func NewRoster(students ...*Student) *Roster {
	return &Roster{students: students}
}

// FindStudent returns the first student whose uid matches exactly.
func (r *Roster) FindStudent(uid string) (*Student, error) {
	for _, s := range r.students {
		if s.UID == uid {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: student not found: %s", ErrNotFound, uid)
}

// Students returns the roster in insertion order.
func (r *Roster) Students() []*Student { return r.students }

// AssetStore owns the assets available for checkout.
type AssetStore struct {
	assets []*Asset
}

func NewAssetStore(assets ...*Asset) *AssetStore {
	return &AssetStore{assets: assets}
}

// FindAsset returns the first asset whose id matches exactly.
// The scan is linear; an index keyed by id would be the next step for large stores.
func (s *AssetStore) FindAsset(assetID string) (*Asset, error) {
	for _, a := range s.assets {
		if a.AssetID == assetID {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: asset not found: %s", ErrNotFound, assetID)
}

// MarkBorrowed flips the asset to unavailable. a must come from FindAsset on s.
func (s *AssetStore) MarkBorrowed(a *Asset) error {
	if !a.Available {
		return fmt.Errorf("%w: asset %s not available", ErrUnavailable, a.AssetID)
	}
	a.Available = false
	return nil
}

// Assets returns the store contents in insertion order.
func (s *AssetStore) Assets() []*Asset { return s.assets }
