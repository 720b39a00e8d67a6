package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Query-parameter parsing for the filter endpoints. Malformed values fail
// here with an error the handler turns into a 400; the filter engine itself
// never sees them.

const dateOnlyLayout = "2006-01-02"

// queryTime parses an optional timestamp parameter, accepting RFC 3339 or a
// plain date.
func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse(dateOnlyLayout, raw)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %q", key, raw)
	}
	return &t, nil
}

// queryDecimal parses an optional decimal parameter.
func queryDecimal(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %q", key, raw)
	}
	return &d, nil
}

// queryInt parses an optional integer parameter.
func queryInt(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %q", key, raw)
	}
	return &n, nil
}

// badQuery builds the 400 response for a malformed query parameter.
func badQuery(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid query parameter",
		"error":   err.Error(),
	})
}
