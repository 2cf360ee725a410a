package code

import (
	"net/http"

	"github.com/HappyLadySauce/errors"
)

// coder implements errors.Coder, mapping one int code to an HTTP status
// and a default message.
type coder struct {
	code    int
	httpStatus int
	message string
}

func (c *coder) Code() int        { return c.code }
func (c *coder) HTTPStatus() int  { return c.httpStatus }
func (c *coder) String() string   { return c.message }
func (c *coder) Reference() string { return "" }

// register records one error code with errors.MustRegister so that
// errors.WithCode(code, ...) can resolve it back to an HTTP status and
// message. http_status defaults to 500 when 0 is passed.
func register(code int, httpStatus int, message string) {
	if httpStatus == 0 {
		httpStatus = http.StatusInternalServerError
	}
	errors.MustRegister(&coder{code: code, httpStatus: httpStatus, message: message})
}

// Base server errors (100001-100026).
const (
	// ErrSuccess - 200: OK.
	ErrSuccess int = iota + 100001

	// ErrUnknown - 500: Internal server error.
	ErrUnknown

	// ErrBind - 400: Error occurred while binding the request body to the struct.
	ErrBind

	// ErrValidation - 400: Validation failed.
	ErrValidation

	// ErrTokenInvalid - 401: Token invalid.
	ErrTokenInvalid

	// ErrDatabase - 500: Database error.
	ErrDatabase

	// ErrEncrypt - 401: Error occurred while encrypting the password.
	ErrEncrypt

	// ErrSignatureInvalid - 401: Signature is invalid.
	ErrSignatureInvalid

	// ErrExpired - 401: Token expired.
	ErrExpired

	// ErrInvalidAuthHeader - 401: Invalid authorization header.
	ErrInvalidAuthHeader

	// ErrMissingHeader - 401: The Authorization header was empty.
	ErrMissingHeader

	// ErrPasswordIncorrect - 401: Password was incorrect.
	ErrPasswordIncorrect

	// ErrPermissionDenied - 403: Permission denied.
	ErrPermissionDenied

	// ErrEncodingFailed - 500: Encoding failed due to an error with the data.
	ErrEncodingFailed

	// ErrDecodingFailed - 500: Decoding failed due to an error with the data.
	ErrDecodingFailed

	// ErrInvalidJSON - 500: Data is not valid JSON.
	ErrInvalidJSON

	// ErrEncodingJSON - 500: JSON data could not be encoded.
	ErrEncodingJSON

	// ErrDecodingJSON - 500: JSON data could not be decoded.
	ErrDecodingJSON

	// ErrInvalidYaml - 500: Data is not valid Yaml.
	ErrInvalidYaml

	// ErrEncodingYaml - 500: Yaml data could not be encoded.
	ErrEncodingYaml

	// ErrDecodingYaml - 500: Yaml data could not be decoded.
	ErrDecodingYaml

	// ErrStoreNotInitialized - 500: Store not initialized.
	ErrStoreNotInitialized
)
