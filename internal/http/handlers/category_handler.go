package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCategories godoc
// @ID          listCategories
// @Summary     List categories
// @Description Returns the static category set posts may be tagged with, in display order.
// @Tags        Categories
// @Produce     json
//
// @Success     200  {object}  envelope.Envelope{body=[]categories.Category}
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	ok(c, http.StatusOK, MsgCategoriesRetrieved, MsgCategoriesCustomer, h.svc.ListCategories())
}
