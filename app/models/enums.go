package models

// EnrolmentStatus defines the possible status values for an enrolment.
type EnrolmentStatus string

const (
	EnrolmentActive    EnrolmentStatus = "active"
	EnrolmentPending   EnrolmentStatus = "pending"
	EnrolmentCompleted EnrolmentStatus = "completed"
	EnrolmentCancelled EnrolmentStatus = "cancelled"
)

// PaymentStatus defines the status of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// PaymentMethod defines how a payment was made.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
	MethodCheque   PaymentMethod = "cheque"
)
