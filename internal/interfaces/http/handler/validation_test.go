package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"DebtorName": "debtor_name",
		"AmountUSD":  "amount_usd",
		"AmountIQD":  "amount_iqd",
		"FreezeRate": "freeze_rate",
		"Rate":       "rate",
		"Kind":       "kind",
	}
	for in, want := range cases {
		assert.Equal(t, want, toSnakeCase(in), "input %q", in)
	}
}

func TestBindingError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		h := &BaseHandler{}
		r := gin.New()
		r.POST("/bind", func(c *gin.Context) {
			var req struct {
				DebtorName string `json:"debtor_name" binding:"required"`
				Kind       string `json:"kind" binding:"required,oneof=CUSTOMER COMPANY PERSONAL"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				h.BindingError(c, err)
				return
			}
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("validator failures become field details", func(t *testing.T) {
		r := newRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{"kind":"FRIEND"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "ERR_VALIDATION")
		assert.Contains(t, body, "debtor_name")
		assert.Contains(t, body, "This field is required")
		assert.Contains(t, body, "Must be one of: CUSTOMER, COMPANY, PERSONAL")
	})

	t.Run("malformed JSON is reported as such", func(t *testing.T) {
		r := newRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{nope`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_JSON")
	})
}
