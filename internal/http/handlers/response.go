// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers used across all endpoints. Success
// responses are written through the envelope package so every endpoint has
// the same {header, body} shape. Failures are never written here: a handler
// raises an error with fail() and returns, and the global error translator
// (middleware.Errors) turns it into an envelope.
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{
//	  "header": {
//	    "requestRefId": "3141592653",
//	    "responseCode": 200,
//	    "responseMessage": "Categories retrieved successfully.",
//	    "customerMessage": "Successfully loaded categories.",
//	    "timestamp": "2025-01-02T15:04:05.123456Z"
//	  },
//	  "body": [ ... ]
//	}
package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tbourn/campus-pulse/internal/apierr"
	"github.com/tbourn/campus-pulse/internal/http/envelope"
)

// ErrorResponse documents the envelope returned for every failure. It exists
// for the OpenAPI annotations; the translator builds the real value.
type ErrorResponse struct {
	Header envelope.Header `json:"header"`
	Body   map[string]any  `json:"body"`
}

// ValidationErrorBody is the body of a 422 envelope.
type ValidationErrorBody struct {
	Errors []apierr.FieldError `json:"errors"`
}

var registerTagNames sync.Once

// RegisterBindingTagNames makes Gin's binding validator report fields by
// their wire names, so 422 locations read ["body","content"] rather than
// ["body","Content"]. Safe to call more than once.
func RegisterBindingTagNames() {
	registerTagNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			apierr.RegisterTagNames(v)
		}
	})
}

// ok writes a success envelope.
func ok(c *gin.Context, status int, responseMessage, customerMessage string, body any) {
	envelope.JSON(c, status, responseMessage, customerMessage, body)
}

// fail raises err for the error translator and stops the handler chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Fail is the exported variant of fail(), for router-level handlers such as
// NoRoute and NoMethod.
func Fail(c *gin.Context, err error) { fail(c, err) }
