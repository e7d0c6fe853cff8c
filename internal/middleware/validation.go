package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yigit/academia/internal/pkg/validation"
)

// BindJSON decodes the request body into obj, translating decode failures.
// The raw body stays cached on the context for the validation helpers.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindBodyWith(obj, binding.JSON); err != nil {
		return validation.BindError(obj, err)
	}
	return nil
}

// BindAndValidate decodes the request body into obj and validates it
func BindAndValidate(c *gin.Context, obj interface{}) error {
	if err := BindJSON(c, obj); err != nil {
		return err
	}
	return validation.StructWithFields(obj, validation.FieldsOf(cachedBody(c)))
}

// ItemFields returns the keys present in each object of a JSON array body
// decoded by BindJSON.
func ItemFields(c *gin.Context) []validation.Fields {
	return validation.FieldsOfEach(cachedBody(c))
}

func cachedBody(c *gin.Context) []byte {
	if raw, ok := c.Get(gin.BodyBytesKey); ok {
		if body, ok := raw.([]byte); ok {
			return body
		}
	}
	return nil
}
