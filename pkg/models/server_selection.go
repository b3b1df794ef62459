package models

import (
	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
)

// SelectServer picks the server an analytic of the given type should be
// assigned to: scan all rows, skip excluded ids, and for capacity-aware
// types skip servers whose free activity-monitoring slots are below
// required. Among the candidates the lowest utilization wins, ties
// broken by the highest available capacity.
//
// Only activity monitoring (type id 1) carries a real capacity
// dimension today; every other type passes through without a capacity
// check. The customer-service type reuses the same counters for now.
func (m *ServerModel) SelectServer(typeAnalyticId int64, required int64, excludeIds []uint64) (*dbmodels.Server, error) {
	if required <= 0 {
		required = 1
	}

	servers, err := m.ds.GetAllServers()
	if err != nil {
		return nil, err
	}

	excluded := make(map[uint64]bool, len(excludeIds))
	for _, id := range excludeIds {
		excluded[id] = true
	}

	checkCapacity := typeAnalyticId == config.TypeAnalyticActivityMonitoring ||
		typeAnalyticId == config.TypeAnalyticCustomerService

	var best *dbmodels.Server
	for i := range servers {
		s := &servers[i]
		if excluded[s.ID] {
			continue
		}
		if checkCapacity && s.AvailableActivityMonitoring() < required {
			continue
		}

		if best == nil {
			best = s
			continue
		}

		su, bu := s.UtilizationActivityMonitoring(), best.UtilizationActivityMonitoring()
		if su < bu || (su == bu && s.AvailableActivityMonitoring() > best.AvailableActivityMonitoring()) {
			best = s
		}
	}

	if best == nil {
		return nil, ErrNoCapacity
	}
	return best, nil
}
