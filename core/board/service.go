package board

import (
	"context"
	"sync"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/clubboard/core"
)

// Service owns the board document.
// Every write derives a new document from the current one and swaps it in whole, then persists it.
type Service struct {
	store      core.BlobStore
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator
	key        string
	defaults   core.BoardConfig
	loc        *time.Location

	now   func() time.Time // mockable
	newID func() string    // mockable

	mu  sync.RWMutex
	doc Document
}

func NewService(store core.BlobStore, logger core.Logger, conf *core.Config) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(logger, "logger"),
		vala.IsNotNil(conf, "conf"),
	).CheckAndPanic()

	validate, translator := core.NewValidator()
	InitValidators(validate, translator)

	loc := conf.Board.Location
	if loc == nil {
		loc = time.Local
	}
	svc := &Service{
		store:      store,
		logger:     logger,
		validate:   validate,
		translator: translator,
		key:        conf.Storage.Key,
		defaults:   conf.Board,
		loc:        loc,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	svc.doc = svc.defaultDocument()
	return svc
}

func (svc *Service) defaultDocument() Document {
	return DefaultDocument(svc.now().In(svc.loc), svc.defaults, svc.newID)
}

func (svc *Service) validateStruct(s interface{}) error {
	if err := svc.validate.Struct(s); err != nil {
		return core.TranslateValidation(err, svc.translator)
	}
	return nil
}

// commit installs next and persists it. Callers hold svc.mu.
// A failed save is logged: the in-memory document stays the reference.
func (svc *Service) commit(ctx context.Context, next Document) {
	svc.doc = next
	if err := svc.save(ctx, next); err != nil {
		svc.logger.Error("saving board document", err)
	}
}

func (svc *Service) save(ctx context.Context, doc Document) error {
	data, err := ToJSON(doc)
	if err != nil {
		return err
	}
	return errors.Wrap(svc.store.Set(ctx, svc.key, data), "writing board document")
}

// Load reads the persisted document. A missing or unreadable one is replaced with the demo document.
func (svc *Service) Load(ctx context.Context) Document {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	data, err := svc.store.Get(ctx, svc.key)
	switch {
	case err == nil:
		doc, dErr := FromJSON(data)
		if dErr == nil {
			svc.doc = doc
			return svc.doc.clone()
		}
		svc.logger.Warn("discarding unreadable board document", dErr)
		svc.commit(ctx, svc.defaultDocument())
	case errors.Cause(err) == core.ErrBlobNotFound:
		svc.logger.Info("no board document yet, seeding demo data")
		svc.commit(ctx, svc.defaultDocument())
	default:
		// keep whatever is stored: it may be readable once the medium recovers
		svc.logger.Error("reading board document", err)
		svc.doc = svc.defaultDocument()
	}
	return svc.doc.clone()
}

// Save persists the current document.
func (svc *Service) Save(ctx context.Context) error {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.save(ctx, svc.doc)
}

// Replace swaps in the document decoded from data. The current document is kept when data is invalid.
func (svc *Service) Replace(ctx context.Context, data []byte) (Document, error) {
	doc, err := FromJSON(data)
	if err != nil {
		return Document{}, err
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.commit(ctx, doc)
	return doc.clone(), nil
}

// Reset reinstalls the demo document.
func (svc *Service) Reset(ctx context.Context) Document {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.commit(ctx, svc.defaultDocument())
	return svc.doc.clone()
}

// Document returns a snapshot of the current document.
func (svc *Service) Document() Document {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.doc.clone()
}

func (svc *Service) ExportJSON() ([]byte, error) {
	return ToJSON(svc.Document())
}

func (svc *Service) Location() *time.Location { return svc.loc }

// Settings

func (svc *Service) Meta() Meta {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.doc.Meta
}

func (svc *Service) UpdateMeta(ctx context.Context, um UpdateMeta) Meta {
	cleanPtr(um.ClubName)
	cleanPtr(um.EventName)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.commit(ctx, updateMeta(svc.doc, um))
	return svc.doc.Meta
}

// Unlock reports whether passcode opens the admin view.
func (svc *Service) Unlock(passcode string) bool {
	return CheckPasscode(svc.Meta(), passcode)
}

// CurrentWeek is the week index of today relative to week zero.
func (svc *Service) CurrentWeek() int {
	return WeekIndex(svc.Meta().WeekZero, svc.now().In(svc.loc))
}

// Students

func (svc *Service) Students(query string) []Student {
	return FilterStudents(svc.Document().Students, query)
}

func (svc *Service) AddStudent(ctx context.Context, ns NewStudent) (Student, error) {
	ns.clean()
	if err := svc.validateStruct(ns); err != nil {
		return Student{}, err
	}
	st := Student{
		ID:    svc.newID(),
		Name:  ns.Name,
		Email: optional(ns.Email),
		Team:  optional(ns.Team),
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.commit(ctx, addStudent(svc.doc, st))
	return st, nil
}

func (svc *Service) UpdateStudent(ctx context.Context, id string, us UpdateStudent) (Student, bool, error) {
	us.clean()
	if err := svc.validateStruct(us); err != nil {
		return Student{}, false, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	next, st, ok := updateStudent(svc.doc, id, us)
	if ok {
		svc.commit(ctx, next)
	}
	return st, ok, nil
}

// DeleteStudent removes the student and every submission referencing them.
func (svc *Service) DeleteStudent(ctx context.Context, id string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	next, ok := deleteStudent(svc.doc, id)
	if ok {
		svc.commit(ctx, next)
	}
	return ok
}

// Objectives

func (svc *Service) Objectives() []Objective {
	return svc.Document().Objectives
}

func (svc *Service) ObjectiveWeeks() []WeekBucket {
	return WeekBuckets(svc.Objectives())
}

func (svc *Service) AddObjective(ctx context.Context, no NewObjective) (Objective, error) {
	no.clean()
	if err := svc.validateStruct(no); err != nil {
		return Objective{}, err
	}
	obj := Objective{
		ID:      svc.newID(),
		Title:   no.Title,
		Details: no.Details,
		DueDate: no.DueDate,
	}
	if obj.DueDate.IsZero() {
		obj.DueDate = svc.now()
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if no.WeekIndex != nil {
		obj.WeekIndex = *no.WeekIndex
	} else {
		obj.WeekIndex = WeekIndex(svc.doc.Meta.WeekZero, svc.now().In(svc.loc))
	}
	svc.commit(ctx, addObjective(svc.doc, obj))
	return obj, nil
}

func (svc *Service) UpdateObjective(ctx context.Context, id string, uo UpdateObjective) (Objective, bool) {
	uo.clean()

	svc.mu.Lock()
	defer svc.mu.Unlock()
	next, obj, ok := updateObjective(svc.doc, id, uo)
	if ok {
		svc.commit(ctx, next)
	}
	return obj, ok
}

// DeleteObjective removes the objective and every submission referencing it.
func (svc *Service) DeleteObjective(ctx context.Context, id string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	next, ok := deleteObjective(svc.doc, id)
	if ok {
		svc.commit(ctx, next)
	}
	return ok
}

// Submissions

func (svc *Service) GetSubmission(studentID, objectiveID string) (Submission, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	sub, ok := svc.doc.GetSubmission(studentID, objectiveID)
	if ok {
		sub.Extras = append([]Extra{}, sub.Extras...)
	}
	return sub, ok
}

type submissionPatch func(doc Document, newID string) (Document, Submission)

// patch runs a submission transition on the current document; the pair must exist.
func (svc *Service) patch(ctx context.Context, studentID, objectiveID string, fn submissionPatch) (Submission, bool) {
	newID := svc.newID()

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if !svc.doc.hasPair(studentID, objectiveID) {
		return Submission{}, false
	}
	next, sub := fn(svc.doc, newID)
	svc.commit(ctx, next)
	return sub, true
}

func (svc *Service) MarkStatus(ctx context.Context, studentID, objectiveID string, status Status) (Submission, bool, error) {
	if err := svc.validateStruct(statusUpdate{Status: status}); err != nil {
		return Submission{}, false, err
	}
	sub, ok := svc.patch(ctx, studentID, objectiveID, func(doc Document, newID string) (Document, Submission) {
		return markStatus(doc, newID, studentID, objectiveID, status)
	})
	return sub, ok, nil
}

func (svc *Service) SetNotes(ctx context.Context, studentID, objectiveID, notes string) (Submission, bool) {
	return svc.patch(ctx, studentID, objectiveID, func(doc Document, newID string) (Document, Submission) {
		return setNotes(doc, newID, studentID, objectiveID, notes)
	})
}

func (svc *Service) SetEvidenceURL(ctx context.Context, studentID, objectiveID, url string) (Submission, bool) {
	url = core.CleanString(url)
	return svc.patch(ctx, studentID, objectiveID, func(doc Document, newID string) (Document, Submission) {
		return setEvidenceURL(doc, newID, studentID, objectiveID, url)
	})
}

// AddExtra logs an unverified extra on the pair, creating its submission when needed.
func (svc *Service) AddExtra(ctx context.Context, studentID, objectiveID string, ne NewExtra) (Submission, bool, error) {
	ne.clean()
	if err := svc.validateStruct(ne); err != nil {
		return Submission{}, false, err
	}
	extra := newExtra(svc.newID(), ne)
	sub, ok := svc.patch(ctx, studentID, objectiveID, func(doc Document, newID string) (Document, Submission) {
		return addExtra(doc, newID, studentID, objectiveID, extra)
	})
	return sub, ok, nil
}

// VerifyExtra flags an extra; it does nothing when the pair has no submission or no such extra.
func (svc *Service) VerifyExtra(ctx context.Context, studentID, objectiveID, extraID string, verified bool) (Submission, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	next, sub, ok := verifyExtra(svc.doc, studentID, objectiveID, extraID, verified)
	if ok {
		svc.commit(ctx, next)
	}
	return sub, ok
}

// Views

func (svc *Service) Completion(studentID string) Completion {
	return CompletionForStudent(svc.Document(), studentID)
}

func (svc *Service) Overview() []OverviewRow {
	return Overview(svc.Document())
}

func (svc *Service) Tasks(studentID string) ([]Task, bool) {
	doc := svc.Document()
	if doc.studentIndex(studentID) < 0 {
		return nil, false
	}
	return StudentTasks(doc, studentID), true
}

func (svc *Service) Report() []ReportRow {
	return FlatReport(svc.Document(), svc.loc)
}
