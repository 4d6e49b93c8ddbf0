package handlers

import "github.com/gofiber/fiber/v2"

const shellPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>IT Asset Inventory</title>
</head>
<body>
  <h1>IT Asset Inventory</h1>
  <p>The API lives under <code>/api/</code>. See <code>/api/assets/</code>.</p>
</body>
</html>
`

// Index GET / serves the application shell page.
func Index(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(shellPage)
}
