package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"copilot.dev/backend/internal/http/dto"
	"copilot.dev/backend/internal/http/handler"
	"copilot.dev/backend/internal/knowledge"
)

func bulkBody(n int) []byte {
	items := make([]dto.CreateNuggetRequest, n)
	for i := range items {
		items[i] = dto.CreateNuggetRequest{
			Content: "Tesla Model Y has a 5-star safety rating across all categories.",
			Title:   "Safety rating nugget",
		}
	}
	body, _ := json.Marshal(dto.BulkNuggetsRequest{Items: items})
	return body
}

var _ = Describe("KnowledgeHandler", func() {
	var router *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		h := handler.NewKnowledgeHandler(knowledge.NewMemoryStore())
		router.POST("/knowledge/bulk", h.BulkCreate)
	})

	It("accepts exactly the 50 item cap", func() {
		req := httptest.NewRequest(http.MethodPost, "/knowledge/bulk", bytes.NewBuffer(bulkBody(dto.MaxBulkNuggets)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp dto.BulkNuggetsResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.SuccessCount).To(Equal(dto.MaxBulkNuggets))
	})

	It("rejects 51 items with 422", func() {
		req := httptest.NewRequest(http.MethodPost, "/knowledge/bulk", bytes.NewBuffer(bulkBody(dto.MaxBulkNuggets+1)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
	})
})
