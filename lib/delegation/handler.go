package delegationhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"timetrack-backend/db"
	delegationstore "timetrack-backend/lib/delegation/store"
	usersstore "timetrack-backend/lib/users/store"
	"timetrack-backend/lib/utils/clock"
	delegationapimodels "timetrack-backend/models/api/delegation"
	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	Create(delegatorID string, data delegationapimodels.DelegationData) (id string, err error)
	Revoke(delegatorID, id string) error
	ListGiven(delegatorID string) (list []delegationapimodels.DelegationView, err error)
	ListReceived(delegateID string) (list []delegationapimodels.DelegationView, err error)
	HasActiveDelegation(delegatorID, delegateID string, asOf time.Time) (active bool, err error)
	// CanApproveViaDelegation reports whether approver currently holds
	// delegated authority from the owner's direct manager.
	CanApproveViaDelegation(approverID string, ownerManagerID *string) (allowed bool, err error)
}

var Instance Provider

func NewHandler() {
	Instance = newImpl(db.DB, clock.Instance)
}

// NewInstanceFor builds a provider bound to the given connection, for
// callers that resolve delegated authority as part of their own flow.
func NewInstanceFor(DB *gorm.DB, clk clock.Provider) Provider {
	return newImpl(DB, clk)
}

func newImpl(DB *gorm.DB, clk clock.Provider) impl {
	return impl{
		store:      delegationstore.NewInstance(DB),
		usersStore: usersstore.NewInstance(DB),
		clock:      clk,
	}
}

type impl struct {
	store      delegationstore.Provider
	usersStore usersstore.Provider
	clock      clock.Provider
}

func (i impl) Create(delegatorID string, data delegationapimodels.DelegationData) (id string, err error) {
	logger := log.WithField("delegator_id", delegatorID)
	if err = data.Validate(); err != nil {
		return "", err
	}
	if data.DelegateID == delegatorID {
		return "", errors.New("cannot delegate to yourself")
	}
	delegate, err := i.usersStore.GetByID(data.DelegateID)
	if err != nil {
		logger.WithError(err).Error("delegate lookup error")
		return "", err
	}
	if delegate == nil {
		return "", errors.New("delegate not found")
	}
	if !delegate.Role.CanApprove() {
		return "", errors.New("delegate must be a manager or admin")
	}
	start, end := data.Range()
	id, err = i.store.Create(dbmodels.ApprovalDelegation{
		DelegatorID: delegatorID,
		DelegateID:  data.DelegateID,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		logger.WithError(err).Error("delegation creation error")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		WithField("delegate_id", data.DelegateID).
		Info("approval delegation created")
	return id, nil
}

func (i impl) Revoke(delegatorID, id string) error {
	logger := log.
		WithField("delegator_id", delegatorID).
		WithField("rec_id", id)
	rec, err := i.store.GetByID(delegatorID, id)
	if err != nil {
		logger.WithError(err).Error("delegation lookup error")
		return err
	}
	if rec == nil {
		return errors.New("delegation not found")
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("delegation revocation error")
		return err
	}
	logger.Info("approval delegation revoked")
	return nil
}

func (i impl) ListGiven(delegatorID string) ([]delegationapimodels.DelegationView, error) {
	recList, err := i.store.ListGiven(delegatorID)
	if err != nil {
		return nil, err
	}
	return convertList(recList), nil
}

func (i impl) ListReceived(delegateID string) ([]delegationapimodels.DelegationView, error) {
	recList, err := i.store.ListReceived(delegateID)
	if err != nil {
		return nil, err
	}
	return convertList(recList), nil
}

func (i impl) HasActiveDelegation(delegatorID, delegateID string, asOf time.Time) (bool, error) {
	return i.store.ExistsActive(delegatorID, delegateID, clock.Midnight(asOf))
}

func (i impl) CanApproveViaDelegation(approverID string, ownerManagerID *string) (bool, error) {
	if ownerManagerID == nil {
		return false, nil
	}
	return i.HasActiveDelegation(*ownerManagerID, approverID, i.clock.Today())
}

func convertList(recList []dbmodels.ApprovalDelegation) []delegationapimodels.DelegationView {
	result := make([]delegationapimodels.DelegationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, delegationapimodels.DelegationConvert(rec))
	}
	return result
}
