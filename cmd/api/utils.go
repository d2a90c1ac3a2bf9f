package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/workbook"
)

const uploadField = "file"

var errNoUpload = errors.New("missing multipart field \"file\"")

// readUpload reads the uploaded workbook into an immutable source, bounded by
// MAX_UPLOAD_MB.
func (app *application) readUpload(w http.ResponseWriter, r *http.Request) (workbook.Source, error) {
	maxBytes := int64(app.config.maxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return workbook.Source{}, fmt.Errorf("invalid upload: %w", err)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return workbook.Source{}, errNoUpload
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		return workbook.Source{}, fmt.Errorf("failed to read upload: %w", err)
	}
	return workbook.NewSource(header.Filename, blob), nil
}

func parseLimit(limitParam string, fallback int) int {
	if limitParam == "" {
		return fallback
	}
	if l, err := strconv.Atoi(limitParam); err == nil {
		return l
	}
	return fallback
}
