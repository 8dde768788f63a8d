package handlers

import (
	"bytes"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"eshopadmin/internal/codec"
	"eshopadmin/internal/domain"
	applog "eshopadmin/internal/log"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		data["RequestID"] = rid
	}
	return c.Render(tmpl, data)
}

// statusOf maps a domain error to the HTTP status the API reports.
func statusOf(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNoSelection):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNotDisplayed):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail logs err under action and writes it as a JSON error body.
func fail(c *fiber.Ctx, action string, err error) error {
	status := statusOf(err)
	c.Status(status)
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "field": verr.Field})
	case status == fiber.StatusInternalServerError:
		applog.Error(c, action, err, nil)
	default:
		applog.Info(c, action+".rejected", map[string]any{"reason": err.Error()})
	}
	return c.JSON(fiber.Map{"error": err.Error()})
}

func badBody(c *fiber.Ctx, action string, err error) error {
	return fail(c, action, domain.Invalid("body", "malformed request: %v", err))
}

type selectBody struct {
	ID int64 `json:"id"`
}

func sendJSONExport(c *fiber.Ctx, name string, t codec.Table) error {
	var buf bytes.Buffer
	if err := codec.EncodeJSON(&buf, codec.Export(t)); err != nil {
		return fail(c, name+".export", err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`.json"`)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	applog.Audit(c, name+".export", map[string]any{"rows": len(t.Rows), "format": "json"})
	return c.Send(buf.Bytes())
}

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendXLSXExport(c *fiber.Ctx, name string, t codec.Table) error {
	var buf bytes.Buffer
	sheet := strings.ToUpper(name[:1]) + name[1:]
	if err := codec.WriteXLSX(&buf, sheet, t); err != nil {
		return fail(c, name+".export", err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`.xlsx"`)
	c.Set(fiber.HeaderContentType, mimeXLSX)
	applog.Audit(c, name+".export", map[string]any{"rows": len(t.Rows), "format": "xlsx"})
	return c.Send(buf.Bytes())
}

func decodeImport(c *fiber.Ctx) ([]codec.Record, error) {
	recs, err := codec.DecodeRecords(bytes.NewReader(c.Body()))
	if err != nil {
		return nil, domain.Invalid("body", "%v", err)
	}
	return recs, nil
}
