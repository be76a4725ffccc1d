// Package reconcile exposes the reconciliation HTTP endpoints.
package reconcile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/config"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalize"
	reconcileengine "github.com/Ramsey-B/clover/pkg/reconcile"
	"github.com/Ramsey-B/clover/pkg/report"
	"github.com/Ramsey-B/clover/pkg/tabular"
	"github.com/Ramsey-B/clover/pkg/textextract"
)

// Register registers reconciliation routes
func Register(g *echo.Group) {
	g.POST("", Reconcile)
	g.POST("/report", Report)
}

// Reconcile runs a reconciliation over the uploaded expected file and
// declaration document and returns the full result as JSON
func Reconcile(c echo.Context) error {
	result, err := run(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Report runs a reconciliation and returns one section of the result as a
// downloadable CSV. The section query parameter defaults to missing.
func Report(c echo.Context) error {
	result, err := run(c)
	if err != nil {
		return err
	}

	section := report.Section(c.QueryParam("section"))
	if section == "" {
		section = report.SectionMissing
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, result, section); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename(section)))
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// run parses the multipart request, extracts expected serials and document
// text, and executes the reconciliation engine
func run(c echo.Context) (*models.ReconciliationResult, error) {
	ctx := c.Request().Context()

	ctx, cfg, err := ectoinject.GetContext[*config.Config](ctx)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "config unavailable")
	}
	ctx, engine, err := ectoinject.GetContext[*reconcileengine.Engine](ctx)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "reconciliation engine unavailable")
	}
	ctx, logger, err := ectoinject.GetContext[ectologger.Logger](ctx)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "logger unavailable")
	}

	expectedName, expectedData, err := readFormFile(c, "expected")
	if err != nil {
		return nil, err
	}
	documentName, documentData, err := readFormFile(c, "document")
	if err != nil {
		return nil, err
	}

	table, err := tabular.Read(expectedName, expectedData)
	if err != nil {
		if httperror.IsHTTPError(err) {
			return nil, err
		}
		return nil, httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expected, err := table.Columns(splitColumns(c.FormValue("columns"), cfg.ExpectedColumns)...)
	if err != nil {
		var missing *tabular.MissingColumnError
		if errors.As(err, &missing) {
			return nil, httperror.NewHTTPError(http.StatusBadRequest, missing.Error())
		}
		return nil, err
	}

	chain := textextract.NewChain(logger, documentName)
	text, err := chain.Extract(ctx, documentData)
	if err != nil {
		if errors.Is(err, textextract.ErrNoExtractableText) {
			return nil, httperror.NewHTTPError(http.StatusUnprocessableEntity,
				"no text could be extracted from the document; if it is a scanned image, run OCR or export it as text first")
		}
		return nil, err
	}

	input := reconcileengine.Input{
		Expected:     expected,
		DocumentText: text,
		Pattern:      formValueOr(c, "pattern", cfg.TokenPattern),
		Normalize: normalize.Options{
			Uppercase:    formBool(c, "normalize_uppercase", cfg.NormalizeUppercase),
			StripSpaces:  formBool(c, "normalize_strip_spaces", cfg.NormalizeStripSpaces),
			StripDashes:  formBool(c, "normalize_strip_dashes", cfg.NormalizeStripDashes),
			StripDots:    formBool(c, "normalize_strip_dots", cfg.NormalizeStripDots),
			StripSlashes: formBool(c, "normalize_strip_slashes", cfg.NormalizeStripSlashes),
		},
		Match: matching.Config{
			MaxDistance: formInt(c, "max_distance", cfg.SuggestMaxDistance),
			TopK:        formInt(c, "top_k", cfg.SuggestTopK),
		},
	}

	result, err := engine.Reconcile(ctx, input)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Event emission is best effort and never fails the request. The emitter
	// is only registered when Kafka is enabled.
	if ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx); err == nil && emitter != nil {
		_ = emitter.EmitReconciliationCompleted(ctx, result)
	}

	return result, nil
}

func readFormFile(c echo.Context, field string) (string, []byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", nil, httperror.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("missing form file %q", field))
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, httperror.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("failed to open form file %q", field))
	}
	defer func(file multipart.File) {
		_ = file.Close()
	}(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, httperror.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("failed to read form file %q", field))
	}
	return header.Filename, data, nil
}

// splitColumns parses the comma-separated columns override, falling back to
// the configured default
func splitColumns(value, fallback string) []string {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	var columns []string
	for _, column := range strings.Split(value, ",") {
		if column = strings.TrimSpace(column); column != "" {
			columns = append(columns, column)
		}
	}
	return columns
}

func formValueOr(c echo.Context, field, fallback string) string {
	if value := c.FormValue(field); value != "" {
		return value
	}
	return fallback
}

func formBool(c echo.Context, field string, fallback bool) bool {
	value := c.FormValue(field)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func formInt(c echo.Context, field string, fallback int) int {
	value := c.FormValue(field)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
