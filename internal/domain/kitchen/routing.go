package kitchen

import (
	"github.com/venuehq/backend/internal/domain/shared"
)

// SelectStation picks the active station that can handle the capability and
// currently has the lowest load ratio. Ties keep the earlier station in the
// slice, so registration order is the tiebreak.
func SelectStation(stations []*Station, capability string) (*Station, error) {
	var best *Station
	for _, station := range stations {
		if !station.Active || !station.CanHandle(capability) {
			continue
		}
		if best == nil || station.LoadRatio() < best.LoadRatio() {
			best = station
		}
	}
	if best == nil {
		return nil, shared.ErrNoCapableStation
	}
	return best, nil
}
