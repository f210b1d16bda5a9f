package escalationhandler

import (
	"time"

	dbmodels "timetrack-backend/models/db"
)

// NextApprover walks the management chain strictly above the given
// approver and returns the first active user who is not out of office
// on asOf. Visited users guard against manager cycles. Returns nil when
// the chain is exhausted without an available candidate.
func (i impl) NextApprover(approver *dbmodels.User, asOf time.Time) (*dbmodels.User, error) {
	if approver == nil {
		return nil, nil
	}
	visited := map[string]bool{
		approver.ID: true,
	}
	current := approver
	for current.ManagerID != nil {
		if visited[*current.ManagerID] {
			return nil, nil
		}
		visited[*current.ManagerID] = true
		candidate, err := i.usersStore.GetByID(*current.ManagerID)
		if err != nil {
			return nil, err
		}
		if candidate == nil {
			return nil, nil
		}
		if candidate.IsActive {
			isOOO, err := i.ooo.IsUserOOO(candidate.ID, asOf)
			if err != nil {
				return nil, err
			}
			if !isOOO {
				return candidate, nil
			}
		}
		current = candidate
	}
	return nil, nil
}
