package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/GriffinCanCode/numcore/internal/ingest"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// ProcessCSV processes a raw multi-line text body
func (h *Handlers) ProcessCSV(c *gin.Context) {
	text, ok := h.readBody(c)
	if !ok {
		return
	}
	h.execute(c, "numeric.process_csv", map[string]interface{}{"text": text})
}

// ProcessSimple processes a raw single-line body
func (h *Handlers) ProcessSimple(c *gin.Context) {
	text, ok := h.readBody(c)
	if !ok {
		return
	}
	h.execute(c, "numeric.process_simple", map[string]interface{}{"input": text})
}

// ProcessUpload processes a multipart "file", which may be compressed or
// in a non UTF-8 encoding.
func (h *Handlers) ProcessUpload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		fail(c, types.ReasonInvalidParams, "file field required")
		return
	}
	file, err := header.Open()
	if err != nil {
		fail(c, types.ReasonInvalidParams, err.Error())
		return
	}
	defer file.Close()

	doc, err := ingest.Read(file, header.Filename, ingest.Options{MaxBytes: h.limits.MaxInputBytes})
	switch {
	case errors.Is(err, ingest.ErrTooLarge):
		fail(c, types.ReasonLimitExceeded, err.Error())
		return
	case errors.Is(err, ingest.ErrUnsupportedContent):
		msg := err.Error()
		c.JSON(http.StatusUnsupportedMediaType, &types.Result{Success: false, Error: &msg, Reason: types.ReasonInvalidParams})
		return
	case err != nil:
		fail(c, types.ReasonInvalidParams, err.Error())
		return
	}

	result, err := h.registry.Execute(c.Request.Context(), "numeric.process_csv",
		map[string]interface{}{"text": doc.Text}, h.appContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if result.Success {
		result.Data["source"] = doc
	}
	respond(c, result)
}

// Statistics computes statistics for {"numbers": [...]}
func (h *Handlers) Statistics(c *gin.Context) {
	params, ok := bindParams(c)
	if !ok {
		return
	}
	h.execute(c, "numeric.statistics", params)
}

// Fibonacci handles GET /fibonacci?count=N
func (h *Handlers) Fibonacci(c *gin.Context) {
	params, ok := queryParams(c, "count")
	if !ok {
		return
	}
	h.execute(c, "numeric.fibonacci", params)
}

// Primes handles GET /primes?limit=N
func (h *Handlers) Primes(c *gin.Context) {
	params, ok := queryParams(c, "limit")
	if !ok {
		return
	}
	h.execute(c, "numeric.primes", params)
}

// MatrixDemo multiplies the built-in operands
func (h *Handlers) MatrixDemo(c *gin.Context) {
	h.execute(c, "numeric.matrix_demo", nil)
}

// MatrixMultiply multiplies {"a": [[...]], "b": [[...]]}
func (h *Handlers) MatrixMultiply(c *gin.Context) {
	params, ok := bindParams(c)
	if !ok {
		return
	}
	h.execute(c, "numeric.matrix_multiply", params)
}

// Pi handles GET /pi?iterations=N&seed=S
func (h *Handlers) Pi(c *gin.Context) {
	params, ok := queryParams(c, "iterations", "seed")
	if !ok {
		return
	}
	h.execute(c, "numeric.monte_carlo_pi", params)
}

func (h *Handlers) readBody(c *gin.Context) (string, bool) {
	body := io.Reader(c.Request.Body)
	max := h.limits.MaxInputBytes
	if max > 0 {
		body = io.LimitReader(body, max+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		fail(c, types.ReasonInvalidParams, err.Error())
		return "", false
	}
	if max > 0 && int64(len(data)) > max {
		fail(c, types.ReasonLimitExceeded, fmt.Sprintf("request body exceeds maximum %d bytes", max))
		return "", false
	}
	return string(data), true
}

func bindParams(c *gin.Context) (map[string]interface{}, bool) {
	var params map[string]interface{}
	if err := c.ShouldBindJSON(&params); err != nil {
		fail(c, types.ReasonInvalidParams, err.Error())
		return nil, false
	}
	return params, true
}

// queryParams converts the given numeric query parameters, keeping integers
// exact. Absent keys are left out so the tool reports them as missing.
func queryParams(c *gin.Context, keys ...string) (map[string]interface{}, bool) {
	params := make(map[string]interface{}, len(keys))
	for _, key := range keys {
		raw, ok := c.GetQuery(key)
		if !ok {
			continue
		}
		if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
			params[key] = u
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fail(c, types.ReasonInvalidParams, fmt.Sprintf("%s must be number", key))
			return nil, false
		}
		params[key] = n
	}
	return params, true
}
