package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// requestTimeout bounds the storage work of one request.
const requestTimeout = 5 * time.Second

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json name.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// respondError maps service errors onto status codes.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		// picked up by the request logger
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindJSON decodes the body into req and writes the 400 itself on failure.
// Partial updates pass allowEmpty so an empty body means "no changes".
func bindJSON(c *gin.Context, req any, allowEmpty bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": map[string]string{
		service.NonFieldKey: "invalid request body: " + err.Error(),
	}})
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

// parseID reads a numeric path parameter; a malformed id is a 404 since no
// such resource can exist.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return uint(id), true
}

// pageFrom reads page and page_size, falling back to defaults on bad input.
func pageFrom(c *gin.Context) repository.Page {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || size < 1 {
		size = dto.DefaultPageSize
	}
	if size > dto.MaxPageSize {
		size = dto.MaxPageSize
	}
	return repository.Page{Number: page, Size: size}
}
