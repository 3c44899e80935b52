package freelancers

import (
	"strings"

	dbtypes "github.com/angelmondragon/talentconnect-backend/pkg/db/types"
)

// ReconcileCertificates computes the stored certificate list after an update.
// A non-empty declaration selects which stored entries survive; entries absent
// from stored are ignored. Otherwise the stored list survives unless replace is
// set. New references are appended in upload order and duplicates keep their
// first position.
func ReconcileCertificates(stored, declared, added []string, replace bool) []string {
	current := dbtypes.StringList(stored)

	var base []string
	switch {
	case len(declared) > 0:
		for _, ref := range declared {
			if ref = strings.TrimSpace(ref); current.Contains(ref) {
				base = append(base, ref)
			}
		}
	case !replace:
		base = stored
	}

	out := make(dbtypes.StringList, 0, len(base)+len(added))
	for _, group := range [][]string{base, added} {
		for _, ref := range group {
			ref = strings.TrimSpace(ref)
			if ref == "" || out.Contains(ref) {
				continue
			}
			out = append(out, ref)
		}
	}
	return out
}

// RemoveCertificate drops ref from list and reports whether it was present.
func RemoveCertificate(list []string, ref string) ([]string, bool) {
	current := dbtypes.StringList(list)
	if !current.Contains(ref) {
		return list, false
	}
	return current.Without(ref), true
}
