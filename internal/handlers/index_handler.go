package handlers

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/gofiber/fiber/v2"
)

type IndexHandler struct {
	counter wellCounter
}

func NewIndexHandler(counter wellCounter) *IndexHandler {
	return &IndexHandler{counter: counter}
}

const indexPage = `<!DOCTYPE html>
<html lang="ru">
<head><meta charset="utf-8"><title>Буровой журнал</title></head>
<body>
<h1>Буровой журнал</h1>
<p>Скважин: %d</p>
<p><a href="/api/wells/">API скважин</a></p>
</body>
</html>
`

// Show renders the landing page with the number of wells the caller can see.
func (h *IndexHandler) Show(c *fiber.Ctx) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}

	count, err := h.counter.CountWells(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "index")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(indexPage, count))
}
