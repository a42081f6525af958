package echoweb

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	transportsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/transport"
)

// paramID reads the positive integer path parameter name.
func paramID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be a positive identifier"})
	}
	return id, nil
}

// queryID reads the integer query parameter name; 0 when absent.
func queryID(ctx echo.Context, name string) (int, error) {
	val := ctx.QueryParam(name)
	if val == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be an integer"})
	}
	return id, nil
}

func formInt(ctx echo.Context, name string) int {
	n, _ := strconv.Atoi(ctx.FormValue(name))
	return n
}

func formFloat(ctx echo.Context, name string) float64 {
	f, _ := strconv.ParseFloat(ctx.FormValue(name), 64)
	return f
}

func formBool(ctx echo.Context, name string) bool {
	b, _ := strconv.ParseBool(ctx.FormValue(name))
	return b
}

// formFile returns the uploaded file field, nil when the request carries none.
// done must be called once the file was forwarded.
func formFile(ctx echo.Context, field string) (file *transportsvc.File, done func(), err error) {
	done = func() {}
	fh, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, done, nil
		}
		return nil, done, errors.Wrapf(err, "reading form file %q", field)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, done, errors.Wrapf(err, "opening form file %q", field)
	}
	file = &transportsvc.File{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	}
	return file, func() { _ = f.Close() }, nil
}
