package echoapi

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/clubboard/core/board"
)

const (
	mimeCSV  = "text/csv; charset=UTF-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	maxImportSize = 8 << 20
)

type boardApi struct {
	svc *board.Service
}

func registerBoardAPI(g *echo.Group, svc *board.Service) {
	api := boardApi{svc: svc}

	g.GET("/meta", api.getMeta)
	g.PUT("/meta", api.updateMeta)
	g.POST("/admin/unlock", api.unlock)
	g.GET("/week", api.currentWeek)
	g.GET("/overview", api.overview)

	sg := g.Group("/students")
	sg.GET("", api.queryStudents)
	sg.POST("", api.createStudent)
	sg.PUT("/:id", api.updateStudent)
	sg.DELETE("/:id", api.destroyStudent)
	sg.GET("/:id/completion", api.studentCompletion)
	sg.GET("/:id/tasks", api.studentTasks)

	og := g.Group("/objectives")
	og.GET("", api.queryObjectives)
	og.POST("", api.createObjective)
	og.GET("/weeks", api.objectiveWeeks)
	og.PUT("/:id", api.updateObjective)
	og.DELETE("/:id", api.destroyObjective)

	pg := g.Group("/submissions/:studentId/:objectiveId")
	pg.GET("", api.retrieveSubmission)
	pg.PUT("/status", api.markStatus)
	pg.PUT("/notes", api.setNotes)
	pg.PUT("/evidence", api.setEvidence)
	pg.POST("/extras", api.addExtra)
	pg.PUT("/extras/:extraId/verify", api.verifyExtra)

	g.GET("/export/json", api.exportJSON)
	g.GET("/export/csv", api.exportCSV)
	g.GET("/export/xlsx", api.exportXLSX)
	g.POST("/import/json", api.importJSON)
	g.POST("/reset", api.reset)
}

type (
	MetaResponse struct {
		ClubName  string    `json:"clubName"`
		EventName string    `json:"eventName"`
		WeekZero  time.Time `json:"academicWeekZeroISO"`
	}

	UnlockRequest struct {
		Passcode string `json:"passcode"`
	}

	UnlockResponse struct {
		Unlocked bool `json:"unlocked"`
	}

	WeekResponse struct {
		Week     int       `json:"week"`
		WeekZero time.Time `json:"academicWeekZeroISO"`
	}

	StatusRequest struct {
		Status board.Status `json:"status"`
	}

	NotesRequest struct {
		Notes string `json:"notes"`
	}

	EvidenceRequest struct {
		EvidenceURL string `json:"evidenceUrl"`
	}

	VerifyRequest struct {
		Verified bool `json:"verified"`
	}

	SubmissionResponse struct {
		Status     board.Status      `json:"status"`
		Submission *board.Submission `json:"submission"`
	}
)

func newMetaResponse(meta board.Meta) MetaResponse {
	return MetaResponse{ClubName: meta.ClubName, EventName: meta.EventName, WeekZero: meta.WeekZero}
}

// Settings

func (api *boardApi) getMeta(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, newMetaResponse(api.svc.Meta()))
}

func (api *boardApi) updateMeta(ctx echo.Context) error {
	var data board.UpdateMeta
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMeta")
	}
	meta := api.svc.UpdateMeta(ctx.Request().Context(), data)
	return ctx.JSON(http.StatusOK, newMetaResponse(meta))
}

func (api *boardApi) unlock(ctx echo.Context) error {
	var data UnlockRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UnlockRequest")
	}
	if !api.svc.Unlock(data.Passcode) {
		return errWrongPasscode
	}
	return ctx.JSON(http.StatusOK, UnlockResponse{Unlocked: true})
}

func (api *boardApi) currentWeek(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, WeekResponse{Week: api.svc.CurrentWeek(), WeekZero: api.svc.Meta().WeekZero})
}

func (api *boardApi) overview(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Overview())
}

// Students

func (api *boardApi) queryStudents(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Students(ctx.QueryParam("search")))
}

func (api *boardApi) createStudent(ctx echo.Context) error {
	var data board.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	st, err := api.svc.AddStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *boardApi) updateStudent(ctx echo.Context) error {
	var data board.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	st, ok, err := api.svc.UpdateStudent(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	if !ok {
		return errStudentNotFound
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *boardApi) destroyStudent(ctx echo.Context) error {
	if !api.svc.DeleteStudent(ctx.Request().Context(), ctx.Param("id")) {
		return errStudentNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *boardApi) studentCompletion(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, ok := api.svc.Document().Student(id); !ok {
		return errStudentNotFound
	}
	return ctx.JSON(http.StatusOK, api.svc.Completion(id))
}

func (api *boardApi) studentTasks(ctx echo.Context) error {
	tasks, ok := api.svc.Tasks(ctx.Param("id"))
	if !ok {
		return errStudentNotFound
	}
	return ctx.JSON(http.StatusOK, tasks)
}

// Objectives

func (api *boardApi) queryObjectives(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Objectives())
}

func (api *boardApi) objectiveWeeks(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.ObjectiveWeeks())
}

func (api *boardApi) createObjective(ctx echo.Context) error {
	var data board.NewObjective
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewObjective")
	}
	obj, err := api.svc.AddObjective(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding objective")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *boardApi) updateObjective(ctx echo.Context) error {
	var data board.UpdateObjective
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateObjective")
	}
	obj, ok := api.svc.UpdateObjective(ctx.Request().Context(), ctx.Param("id"), data)
	if !ok {
		return errObjectiveNotFound
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *boardApi) destroyObjective(ctx echo.Context) error {
	if !api.svc.DeleteObjective(ctx.Request().Context(), ctx.Param("id")) {
		return errObjectiveNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Submissions

func (api *boardApi) retrieveSubmission(ctx echo.Context) error {
	sid, oid := ctx.Param("studentId"), ctx.Param("objectiveId")
	doc := api.svc.Document()
	if _, ok := doc.Student(sid); !ok {
		return errStudentNotFound
	}
	if _, ok := doc.Objective(oid); !ok {
		return errObjectiveNotFound
	}
	res := SubmissionResponse{Status: doc.StatusOf(sid, oid)}
	if sub, ok := doc.GetSubmission(sid, oid); ok {
		res.Submission = &sub
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *boardApi) markStatus(ctx echo.Context) error {
	var data StatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}
	sub, ok, err := api.svc.MarkStatus(ctx.Request().Context(), ctx.Param("studentId"), ctx.Param("objectiveId"), data.Status)
	if err != nil {
		return errors.Wrap(err, "marking status")
	}
	return submissionResult(ctx, sub, ok)
}

func (api *boardApi) setNotes(ctx echo.Context) error {
	var data NotesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NotesRequest")
	}
	sub, ok := api.svc.SetNotes(ctx.Request().Context(), ctx.Param("studentId"), ctx.Param("objectiveId"), data.Notes)
	return submissionResult(ctx, sub, ok)
}

func (api *boardApi) setEvidence(ctx echo.Context) error {
	var data EvidenceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EvidenceRequest")
	}
	sub, ok := api.svc.SetEvidenceURL(ctx.Request().Context(), ctx.Param("studentId"), ctx.Param("objectiveId"), data.EvidenceURL)
	return submissionResult(ctx, sub, ok)
}

func (api *boardApi) addExtra(ctx echo.Context) error {
	var data board.NewExtra
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExtra")
	}
	sub, ok, err := api.svc.AddExtra(ctx.Request().Context(), ctx.Param("studentId"), ctx.Param("objectiveId"), data)
	if err != nil {
		return errors.Wrap(err, "adding extra")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *boardApi) verifyExtra(ctx echo.Context) error {
	var data VerifyRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to VerifyRequest")
	}
	sub, ok := api.svc.VerifyExtra(
		ctx.Request().Context(), ctx.Param("studentId"), ctx.Param("objectiveId"), ctx.Param("extraId"), data.Verified,
	)
	return submissionResult(ctx, sub, ok)
}

func submissionResult(ctx echo.Context, sub board.Submission, ok bool) error {
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, sub)
}

// Export & import

func (api *boardApi) exportJSON(ctx echo.Context) error {
	data, err := api.svc.ExportJSON()
	if err != nil {
		return errors.Wrap(err, "exporting json")
	}
	attachment(ctx, "board.json")
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, data)
}

func (api *boardApi) exportCSV(ctx echo.Context) error {
	csv, err := board.ToCSV(api.svc.Report())
	if err != nil {
		return errors.Wrap(err, "exporting csv")
	}
	attachment(ctx, "progress.csv")
	return ctx.Blob(http.StatusOK, mimeCSV, []byte(csv))
}

func (api *boardApi) exportXLSX(ctx echo.Context) error {
	var buf bytes.Buffer
	if err := board.WriteXLSX(&buf, api.svc.Report()); err != nil {
		return errors.Wrap(err, "exporting xlsx")
	}
	attachment(ctx, "progress.xlsx")
	return ctx.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

func (api *boardApi) importJSON(ctx echo.Context) error {
	data, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxImportSize))
	if err != nil {
		return errors.Wrap(err, "reading import body")
	}
	doc, err := api.svc.Replace(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "importing json")
	}
	return ctx.JSON(http.StatusOK, importSummary(doc))
}

func (api *boardApi) reset(ctx echo.Context) error {
	doc := api.svc.Reset(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, importSummary(doc))
}

func importSummary(doc board.Document) echo.Map {
	return echo.Map{
		"students":    len(doc.Students),
		"objectives":  len(doc.Objectives),
		"submissions": len(doc.Submissions),
	}
}

func attachment(ctx echo.Context, filename string) {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
}
