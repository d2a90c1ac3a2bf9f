package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/report"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/workbook"
	"github.com/farxc/auditor-fiscal-contabil/internal/response"
	"github.com/farxc/auditor-fiscal-contabil/internal/store"
)

type AuditResult struct {
	Report *types.Report             `json:"report"`
	Totals []report.DirectionTotals `json:"totals"`
}

type MissingSections struct {
	Required []string `json:"required"`
	Missing  []string `json:"missing"`
}

type CreateAuditResponse = response.APIResponse[AuditResult]
type MissingSectionsResponse = response.APIResponse[MissingSections]
type GetAuditHistoryResponse = response.APIResponse[[]store.AuditRun]

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// @Summary		Run an audit
// @Description	Reconciles the ICMS fiscal and accounting sections of an uploaded workbook.
// @Tags			Audits
// @Accept			multipart/form-data
// @Produce		json
// @Param			file	formData	file						true	"Workbook (xlsx, xls or zipped csv sections)"
// @Param			format	query		string						false	"json (default) or xlsx"
// @Success		200		{object}	CreateAuditResponse			"Audit report"
// @Failure		400		{object}	response.ErrorResponse		"Invalid upload"
// @Failure		422		{object}	MissingSectionsResponse		"Required sections missing"
// @Failure		503		{object}	response.ErrorResponse		"Audit cancelled"
// @Router			/audits [post]
func (app *application) handleCreateAudit(w http.ResponseWriter, r *http.Request) {
	const component = "AuditHandler"

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "xlsx" {
		writeJSONError(w, http.StatusBadRequest, "invalid format, expected json or xlsx")
		return
	}

	src, err := app.readUpload(w, r)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	if _, err := workbook.Sections(src); err != nil {
		app.appLogger.Warn(component, "Rejecting unreadable workbook: source=%s format=%s error=%v", src.Name, src.Format, err)
		writeJSONError(w, http.StatusUnprocessableEntity, "unreadable workbook: "+err.Error())
		return
	}

	required := audit.RequiredSections()
	if missing := workbook.Missing(src, required); len(missing) > 0 {
		app.appLogger.Warn(component, "Rejecting workbook with missing sections: source=%s missing=%v", src.Name, missing)
		writeJSON(w, http.StatusUnprocessableEntity, &MissingSectionsResponse{
			Success: false,
			Message: "workbook is missing required sections",
			Data:    MissingSections{Required: required, Missing: missing},
		})
		return
	}

	ctx := r.Context()
	rep, err := app.auditor.Run(ctx, src)
	app.cache.Forget(src.Digest)
	if err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, "audit cancelled: "+err.Error())
		return
	}

	app.recordRun(rep)

	if format == "xlsx" {
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "auditoria_"+rep.RunID.String()+".xlsx"))
		if err := report.WriteWorkbook(w, rep); err != nil {
			app.appLogger.Error(component, "Failed to stream workbook: runID=%s error=%v", rep.RunID, err)
		}
		return
	}

	response := &CreateAuditResponse{
		Success: true,
		Data: AuditResult{
			Report: rep,
			Totals: []report.DirectionTotals{report.Totals(rep.Inflows), report.Totals(rep.Outflows)},
		},
		Message: "Audit finished",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// recordRun stores run metadata when history is enabled. Failures are logged
// and never fail the request.
func (app *application) recordRun(rep *types.Report) {
	const component = "AuditHistory"
	if app.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	run := store.NewAuditRun(rep, store.TriggerTypeAPI)
	if err := app.store.AuditRuns.InsertAuditRun(ctx, run); err != nil {
		app.appLogger.Error(component, "Failed to record audit run: runID=%s error=%v", rep.RunID, err)
		return
	}
	app.appLogger.Info(component, "Audit run recorded: runID=%s", rep.RunID)
}

// @Summary		Get audit history
// @Description	Get a list of the latest audit runs.
// @Tags			Audits
// @Produce		json
// @Param			limit	query		int							false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetAuditHistoryResponse		"Successfully retrieved latest audit runs"
// @Failure		500		{object}	response.ErrorResponse		"Failed to get audit history"
// @Failure		503		{object}	response.ErrorResponse		"History disabled"
// @Router			/audits/history [get]
func (app *application) handleGetAuditHistory(w http.ResponseWriter, r *http.Request) {
	if app.store == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "audit history is disabled, set DB_ADDR")
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"), 10)

	ctx := r.Context()
	data, err := app.store.AuditRuns.GetLatest(ctx, limit)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			writeJSONError(w, http.StatusGatewayTimeout, "timed out reading audit history")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to get audit history: "+err.Error())
		return
	}

	response := &GetAuditHistoryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest audit runs",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
