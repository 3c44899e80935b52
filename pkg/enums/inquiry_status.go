package enums

import (
	"fmt"
	"strings"
)

// InquiryStatus tracks an equipment owner's handling of a rental inquiry.
type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusResponded InquiryStatus = "responded"
	InquiryStatusResolved  InquiryStatus = "resolved"
)

var validInquiryStatuses = []InquiryStatus{
	InquiryStatusPending,
	InquiryStatusResponded,
	InquiryStatusResolved,
}

var inquiryStatusRank = map[InquiryStatus]int{
	InquiryStatusPending:   0,
	InquiryStatusResponded: 1,
	InquiryStatusResolved:  2,
}

func (s InquiryStatus) IsValid() bool {
	for _, candidate := range validInquiryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the status may move to next. Statuses only move forward.
func (s InquiryStatus) CanTransitionTo(next InquiryStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	return inquiryStatusRank[next] > inquiryStatusRank[s]
}

func ParseInquiryStatus(value string) (InquiryStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validInquiryStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inquiry status %q", value)
}
