package kitchen

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/venuehq/backend/internal/domain/shared"
)

// Station is the aggregate root for a kitchen prep station. Capabilities
// declare the item tags a station can prepare; MaxLoad bounds the number of
// ticket items it works on concurrently.
type Station struct {
	shared.VenueAggregateRoot
	Name         string         `gorm:"size:128;not null"`
	Capabilities pq.StringArray `gorm:"type:text[];not null"`
	MaxLoad      int            `gorm:"not null"`
	CurrentLoad  int            `gorm:"not null;default:0"`
	Active       bool           `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Station) TableName() string {
	return "kitchen_stations"
}

// NewStation registers a prep station
func NewStation(venueID uuid.UUID, name string, capabilities []string, maxLoad int) (*Station, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STATION", "Station name is required")
	}
	if len(capabilities) == 0 {
		return nil, shared.NewDomainError("INVALID_STATION", "Station requires at least one capability")
	}
	if maxLoad <= 0 {
		return nil, shared.NewDomainError("INVALID_STATION", "Max load must be positive")
	}
	return &Station{
		VenueAggregateRoot: shared.NewVenueAggregateRoot(venueID),
		Name:               name,
		Capabilities:       capabilities,
		MaxLoad:            maxLoad,
		Active:             true,
	}, nil
}

// CanHandle reports whether the station has the given capability
func (s *Station) CanHandle(capability string) bool {
	for _, c := range s.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// LoadRatio returns current load over max load
func (s *Station) LoadRatio() float64 {
	if s.MaxLoad == 0 {
		return 1
	}
	return float64(s.CurrentLoad) / float64(s.MaxLoad)
}

// AddLoad reserves capacity for a routed ticket's items
func (s *Station) AddLoad(items int) error {
	if items <= 0 {
		return shared.NewDomainError("INVALID_LOAD", "Item count must be positive")
	}
	s.CurrentLoad += items
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// ReleaseLoad frees capacity when ticket items complete
func (s *Station) ReleaseLoad(items int) {
	s.CurrentLoad -= items
	if s.CurrentLoad < 0 {
		s.CurrentLoad = 0
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Deactivate takes the station out of the routing pool
func (s *Station) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
