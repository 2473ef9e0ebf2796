package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvbuilder/pkg/cv"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// listFilter reads skill, limit and offset from the query string. Bad or
// out-of-range numbers fall back to the defaults.
func listFilter(c *fiber.Ctx) cv.ListFilter {
	f := cv.ListFilter{
		Skill: strings.TrimSpace(c.Query("skill")),
		Limit: defaultListLimit,
	}
	if n, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && n > 0 && n <= maxListLimit {
		f.Limit = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(c.Query("offset"))); err == nil && n >= 0 {
		f.Offset = n
	}
	return f
}
