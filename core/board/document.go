package board

// Pure document transitions: each one derives the next document from doc and never mutates doc.

func (doc Document) studentIndex(id string) int {
	for i, s := range doc.Students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (doc Document) objectiveIndex(id string) int {
	for i, o := range doc.Objectives {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func (doc Document) Student(id string) (Student, bool) {
	if i := doc.studentIndex(id); i >= 0 {
		return doc.Students[i], true
	}
	return Student{}, false
}

func (doc Document) Objective(id string) (Objective, bool) {
	if i := doc.objectiveIndex(id); i >= 0 {
		return doc.Objectives[i], true
	}
	return Objective{}, false
}

func addStudent(doc Document, st Student) Document {
	next := doc.clone()
	next.Students = append(next.Students, st)
	return next
}

func updateStudent(doc Document, id string, us UpdateStudent) (Document, Student, bool) {
	i := doc.studentIndex(id)
	if i < 0 {
		return doc, Student{}, false
	}
	next := doc.clone()
	st := next.Students[i]
	if us.Name != nil {
		st.Name = *us.Name
	}
	if us.Email != nil {
		st.Email = optional(*us.Email)
	}
	if us.Team != nil {
		st.Team = optional(*us.Team)
	}
	next.Students[i] = st
	return next, st, true
}

func deleteStudent(doc Document, id string) (Document, bool) {
	i := doc.studentIndex(id)
	if i < 0 {
		return doc, false
	}
	next := doc.clone()
	next.Students = append(next.Students[:i], next.Students[i+1:]...)
	next = removeSubmissions(next, func(sub Submission) bool { return sub.StudentID == id })
	return next, true
}

func addObjective(doc Document, obj Objective) Document {
	next := doc.clone()
	next.Objectives = append(next.Objectives, obj)
	return next
}

func updateObjective(doc Document, id string, uo UpdateObjective) (Document, Objective, bool) {
	i := doc.objectiveIndex(id)
	if i < 0 {
		return doc, Objective{}, false
	}
	next := doc.clone()
	obj := next.Objectives[i]
	if uo.Title != nil {
		obj.Title = *uo.Title
	}
	if uo.Details != nil {
		obj.Details = *uo.Details
	}
	if uo.WeekIndex != nil {
		obj.WeekIndex = *uo.WeekIndex
	}
	if uo.DueDate != nil {
		obj.DueDate = *uo.DueDate
	}
	next.Objectives[i] = obj
	return next, obj, true
}

func deleteObjective(doc Document, id string) (Document, bool) {
	i := doc.objectiveIndex(id)
	if i < 0 {
		return doc, false
	}
	next := doc.clone()
	next.Objectives = append(next.Objectives[:i], next.Objectives[i+1:]...)
	next = removeSubmissions(next, func(sub Submission) bool { return sub.ObjectiveID == id })
	return next, true
}

// removeSubmissions is the referential-integrity step of every delete: it drops the submissions matching drop.
func removeSubmissions(doc Document, drop func(Submission) bool) Document {
	kept := make([]Submission, 0, len(doc.Submissions))
	for _, sub := range doc.Submissions {
		if !drop(sub) {
			kept = append(kept, sub)
		}
	}
	doc.Submissions = kept
	return doc
}

func updateMeta(doc Document, um UpdateMeta) Document {
	next := doc.clone()
	if um.ClubName != nil {
		next.Meta.ClubName = *um.ClubName
	}
	if um.EventName != nil {
		next.Meta.EventName = *um.EventName
	}
	if um.AdminPasscode != nil {
		next.Meta.AdminPasscode = *um.AdminPasscode
	}
	if um.WeekZero != nil {
		next.Meta.WeekZero = *um.WeekZero
	}
	return next
}
