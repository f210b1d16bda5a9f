package notification

import (
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"timetrack-backend/config"
	"timetrack-backend/db"
	"timetrack-backend/lib/smtp"
	usersstore "timetrack-backend/lib/users/store"
)

// Dispatcher is the one-way notification boundary. Delivery is best-effort:
// a failed dispatch never surfaces to the caller of a state transition.
type Dispatcher interface {
	Dispatch(recipientID, kind string, context map[string]string)
}

var Instance Dispatcher

func NewHandler() {
	Instance = newImpl(db.DB, config.Conf.Smtp.From)
}

func newImpl(DB *gorm.DB, from string) impl {
	return impl{
		usersStore: usersstore.NewInstance(DB),
		from:       from,
	}
}

type impl struct {
	usersStore usersstore.Provider
	from       string
}

func (i impl) Dispatch(recipientID, kind string, context map[string]string) {
	go i.send(recipientID, kind, context)
}

func (i impl) send(recipientID, kind string, context map[string]string) {
	logger := log.
		WithField("recipient_id", recipientID).
		WithField("kind", kind)
	rec, err := i.usersStore.GetByID(recipientID)
	if err != nil {
		logger.WithError(err).Error("notification recipient lookup error")
		return
	}
	if rec == nil {
		logger.Error("notification recipient not found")
		return
	}
	if IsSecurityKind(kind) {
		if !rec.SecurityNotificationsEnabled {
			return
		}
	} else {
		if !rec.WorkflowNotificationsEnabled {
			return
		}
	}
	err = smtp.Instance.SendEMail(i.from, rec.Email, composeBody(kind, context), Subject(kind))
	if err != nil {
		logger.WithError(err).Error("notification delivery error")
	}
}

func composeBody(kind string, context map[string]string) string {
	var b strings.Builder
	b.WriteString(FallbackMessage(kind))
	if len(context) == 0 {
		return b.String()
	}
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	b.WriteString("\n")
	for _, key := range keys {
		b.WriteString(fmt.Sprintf("\n%s: %s", key, context[key]))
	}
	return b.String()
}
