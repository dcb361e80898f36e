package appointment

import (
	"strings"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
)

type RejectionReason string

const (
	RejectionParts     RejectionReason = "parts"
	RejectionSchedule  RejectionReason = "schedule"
	RejectionExpertise RejectionReason = "expertise"
	RejectionOther     RejectionReason = "other"
)

var rejectionText = map[RejectionReason]string{
	RejectionParts:     "Unavailable mechanic parts",
	RejectionSchedule:  "Full schedule",
	RejectionExpertise: "Beyond our area of expertise",
}

// RejectionText maps a reason code to the text stored on the appointment.
// "other" passes the caller's text through.
func RejectionText(code string, otherText string) (string, error) {
	reason := RejectionReason(strings.ToLower(strings.TrimSpace(code)))

	if reason == RejectionOther {
		text := strings.TrimSpace(otherText)
		if text == "" {
			return "", httperr.ErrInvalidRejection
		}
		return text, nil
	}

	text, ok := rejectionText[reason]
	if !ok {
		return "", httperr.ErrInvalidRejection
	}
	return text, nil
}
