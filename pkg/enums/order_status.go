package enums

import "fmt"

// ReplenishmentOrderStatus is the status vocabulary reported by the order
// management collaborator.
type ReplenishmentOrderStatus string

const (
	ReplenishmentOrderStatusPending   ReplenishmentOrderStatus = "pending"
	ReplenishmentOrderStatusGenerated ReplenishmentOrderStatus = "generated"
	ReplenishmentOrderStatusInTransit ReplenishmentOrderStatus = "in_transit"
	ReplenishmentOrderStatusCompleted ReplenishmentOrderStatus = "completed"
	ReplenishmentOrderStatusCancelled ReplenishmentOrderStatus = "cancelled"
)

var validReplenishmentOrderStatuses = []ReplenishmentOrderStatus{
	ReplenishmentOrderStatusPending,
	ReplenishmentOrderStatusGenerated,
	ReplenishmentOrderStatusInTransit,
	ReplenishmentOrderStatusCompleted,
	ReplenishmentOrderStatusCancelled,
}

func (s ReplenishmentOrderStatus) IsValid() bool {
	for _, candidate := range validReplenishmentOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseReplenishmentOrderStatus converts raw strings into ReplenishmentOrderStatus.
func ParseReplenishmentOrderStatus(value string) (ReplenishmentOrderStatus, error) {
	for _, candidate := range validReplenishmentOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid replenishment order status %q", value)
}
