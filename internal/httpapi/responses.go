package httpapi

import (
	"net/http"

	"github.com/cogform/cogform/internal/validate"
	"github.com/gin-gonic/gin"
)

// ok writes the `{success: true, data}` envelope spec §6 specifies for
// every successful response.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// fail writes the `{success: false, error}` envelope, optionally
// attaching a validation result (spec §6, invalid-document responses).
func fail(c *gin.Context, status int, err string, validation *validate.Result) {
	body := gin.H{"success": false, "error": err}
	if validation != nil {
		body["validation"] = validation
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, err string) {
	fail(c, http.StatusBadRequest, err, nil)
}

func notFound(c *gin.Context, err string) {
	fail(c, http.StatusNotFound, err, nil)
}

func serverError(c *gin.Context, err string) {
	fail(c, http.StatusInternalServerError, err, nil)
}
