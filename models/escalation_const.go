package models

// EscalationLogic selects how the two escalation facts are combined:
// OR fires on either, AND only on both.
type EscalationLogic string

const (
	EscalationLogicOr  EscalationLogic = "OR"
	EscalationLogicAnd EscalationLogic = "AND"
)

func (l EscalationLogic) IsValid() bool {
	return l == EscalationLogicOr || l == EscalationLogicAnd
}

type RateSource string

const (
	RateSourceEmployeeProject RateSource = "EMPLOYEE_PROJECT"
	RateSourceProject         RateSource = "PROJECT"
	RateSourceEmployee        RateSource = "EMPLOYEE"
	RateSourceCompany         RateSource = "COMPANY"
)
