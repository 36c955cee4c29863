package public

import (
	handlershared "github.com/ecofinds/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

func getProductIDParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name, "error.product_id_invalid")
}
