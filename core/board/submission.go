package board

// newSubmission materialises a submission for a pair that has none yet.
// Edits on a fresh pair mean the student started working on it, hence in_progress.
func newSubmission(id, studentID, objectiveID string) Submission {
	return Submission{
		ID:          id,
		StudentID:   studentID,
		ObjectiveID: objectiveID,
		Status:      StatusInProgress,
		Extras:      []Extra{},
	}
}

func newExtra(id string, ne NewExtra) Extra {
	impact := ne.Impact
	if impact == "" {
		impact = ImpactLow
	}
	return Extra{
		ID:     id,
		Title:  ne.Title,
		Desc:   ne.Desc,
		Impact: impact,
	}
}

func (doc Document) submissionIndex(studentID, objectiveID string) int {
	for i, sub := range doc.Submissions {
		if sub.StudentID == studentID && sub.ObjectiveID == objectiveID {
			return i
		}
	}
	return -1
}

// GetSubmission looks the pair up.
func (doc Document) GetSubmission(studentID, objectiveID string) (Submission, bool) {
	if i := doc.submissionIndex(studentID, objectiveID); i >= 0 {
		return doc.Submissions[i], true
	}
	return Submission{}, false
}

// StatusOf reports the pair's status, not_started when there is no submission.
func (doc Document) StatusOf(studentID, objectiveID string) Status {
	if sub, ok := doc.GetSubmission(studentID, objectiveID); ok && sub.Status != "" {
		return sub.Status
	}
	return StatusNotStarted
}

// hasPair reports whether both ends of the pair exist.
func (doc Document) hasPair(studentID, objectiveID string) bool {
	return doc.studentIndex(studentID) >= 0 && doc.objectiveIndex(objectiveID) >= 0
}

// baseSubmission returns the existing submission of the pair or a freshly defaulted one.
func (doc Document) baseSubmission(id, studentID, objectiveID string) Submission {
	if sub, ok := doc.GetSubmission(studentID, objectiveID); ok {
		return sub
	}
	return newSubmission(id, studentID, objectiveID)
}

// upsertSubmission replaces the submission for sub's pair, else the one sharing its ID, else appends it.
// Imported documents may repeat an ID across pairs, so the pair wins.
func upsertSubmission(doc Document, sub Submission) Document {
	next := doc.clone()
	byID := -1
	for i, cur := range next.Submissions {
		if cur.StudentID == sub.StudentID && cur.ObjectiveID == sub.ObjectiveID {
			next.Submissions[i] = sub
			return next
		}
		if byID < 0 && cur.ID == sub.ID {
			byID = i
		}
	}
	if byID >= 0 {
		next.Submissions[byID] = sub
		return next
	}
	next.Submissions = append(next.Submissions, sub)
	return next
}

// patchSubmission merges patch into the pair's base submission and upserts the result.
func patchSubmission(doc Document, newID, studentID, objectiveID string, patch func(*Submission)) (Document, Submission) {
	sub := doc.baseSubmission(newID, studentID, objectiveID)
	sub.Extras = append(make([]Extra, 0, len(sub.Extras)+1), sub.Extras...)
	patch(&sub)
	return upsertSubmission(doc, sub), sub
}

func markStatus(doc Document, newID, studentID, objectiveID string, status Status) (Document, Submission) {
	return patchSubmission(doc, newID, studentID, objectiveID, func(sub *Submission) { sub.Status = status })
}

func setNotes(doc Document, newID, studentID, objectiveID, notes string) (Document, Submission) {
	return patchSubmission(doc, newID, studentID, objectiveID, func(sub *Submission) { sub.Notes = notes })
}

func setEvidenceURL(doc Document, newID, studentID, objectiveID, url string) (Document, Submission) {
	return patchSubmission(doc, newID, studentID, objectiveID, func(sub *Submission) { sub.EvidenceURL = url })
}

func addExtra(doc Document, newID, studentID, objectiveID string, extra Extra) (Document, Submission) {
	return patchSubmission(doc, newID, studentID, objectiveID, func(sub *Submission) {
		sub.Extras = append(sub.Extras, extra)
	})
}

// verifyExtra never materialises a submission: there is nothing to verify on a pair without one.
func verifyExtra(doc Document, studentID, objectiveID, extraID string, verified bool) (Document, Submission, bool) {
	sub, ok := doc.GetSubmission(studentID, objectiveID)
	if !ok {
		return doc, Submission{}, false
	}
	found := false
	extras := make([]Extra, len(sub.Extras))
	for i, e := range sub.Extras {
		if e.ID == extraID {
			e.Verified = verified
			found = true
		}
		extras[i] = e
	}
	if !found {
		return doc, Submission{}, false
	}
	sub.Extras = extras
	return upsertSubmission(doc, sub), sub, true
}
