package schedule

const (
	AbsenceTypeVacation  = "vacation"
	AbsenceTypeSickLeave = "sick_leave"
	AbsenceTypeOther     = "other"
)

const (
	AbsenceStatusPending  = "pending"
	AbsenceStatusApproved = "approved"
	AbsenceStatusRejected = "rejected"
)

var AbsenceTypes = []string{AbsenceTypeVacation, AbsenceTypeSickLeave, AbsenceTypeOther}

var AbsenceStatuses = []string{AbsenceStatusPending, AbsenceStatusApproved, AbsenceStatusRejected}
