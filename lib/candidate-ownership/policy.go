package candidateownership

import (
	dbmodels "recruiting-backend/models/db"
	"time"
)

// FirstContactSources decides whether an outreach must also source the candidate.
// Only a candidate that has never been sourced is claimed by its first outreach; an expired
// record is left alone and the recruiter has to source explicitly.
func FirstContactSources(existing *dbmodels.CandidateSourcer) bool {
	return existing == nil
}

// FirstOutreachNote marks sourcer records created by FirstContactSources.
const FirstOutreachNote = "first outreach"

// canWorkWith is the exclusivity predicate over the latest sourcer record.
func canWorkWith(existing *dbmodels.CandidateSourcer, recruiterID string, now time.Time) bool {
	if existing == nil {
		return true
	}
	if !existing.IsProtected(now) {
		return true
	}
	return existing.SourcerID == recruiterID
}
