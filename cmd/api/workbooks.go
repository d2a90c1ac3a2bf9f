package main

import (
	"errors"
	"net/http"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/workbook"
	"github.com/farxc/auditor-fiscal-contabil/internal/response"
)

type SectionCheck struct {
	Source   string   `json:"source"`
	Format   string   `json:"format"`
	Sections []string `json:"sections"`
	Required []string `json:"required"`
	Missing  []string `json:"missing"`
	Ready    bool     `json:"ready"`
}

type GetSectionsResponse = response.APIResponse[SectionCheck]

// @Summary		Check workbook sections
// @Description	Lists the sections of an uploaded workbook and which required ones are missing.
// @Tags			Workbooks
// @Accept			multipart/form-data
// @Produce		json
// @Param			file	formData	file					true	"Workbook (xlsx, xls or zipped csv sections)"
// @Success		200		{object}	GetSectionsResponse		"Workbook sections"
// @Failure		400		{object}	response.ErrorResponse	"Invalid upload"
// @Failure		422		{object}	response.ErrorResponse	"Unreadable workbook"
// @Router			/workbooks/sections [post]
func (app *application) handleListSections(w http.ResponseWriter, r *http.Request) {
	src, err := app.readUpload(w, r)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	sections, err := workbook.Sections(src)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "unreadable workbook: "+err.Error())
		return
	}

	missing := workbook.Missing(src, audit.RequiredSections())
	check := SectionCheck{
		Source:   src.Name,
		Format:   src.Format.String(),
		Sections: sections,
		Required: audit.RequiredSections(),
		Missing:  missing,
		Ready:    len(missing) == 0,
	}
	if check.Missing == nil {
		check.Missing = []string{}
	}

	response := &GetSectionsResponse{
		Success: true,
		Data:    check,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func writeUploadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSONError(w, http.StatusRequestEntityTooLarge, "upload too large")
	default:
		writeJSONError(w, http.StatusBadRequest, err.Error())
	}
}
