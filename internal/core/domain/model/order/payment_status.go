package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// PaymentStatus is the settlement outcome recorded on the order.
// It defaults to PaymentPending at creation and is only changed by recording
// a payment adapter outcome. A failed or pending payment is not a hard
// failure: the order stays in Draft with the status recorded for later
// reconciliation.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending is the default before any settlement outcome arrives,
	// and the outcome for payment methods the adapter cannot settle directly.
	PaymentPending

	// PaymentCompleted indicates the payment settled successfully.
	// It is the only outcome that authorizes an automatic confirmation.
	PaymentCompleted

	// PaymentFailed indicates the payment was declined.
	PaymentFailed
)

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending:   "pending",
		PaymentCompleted: "completed",
		PaymentFailed:    "failed",
	}
}

// PaymentStatusFromString decodes a wire label into a PaymentStatus.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire label of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getValidPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
