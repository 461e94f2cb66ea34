package utils

import "github.com/gofiber/fiber/v2"

// StandardResponse is the envelope wrapping every API payload. Successful
// responses carry CodeSuccess and the payload; failures carry the offending
// error code and an optional human-readable message.
type StandardResponse struct {
	ErrorCode ErrorCode   `json:"error_code"`
	ErrorMsg  string      `json:"error_msg,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// SendData sends a success envelope with the given payload.
func SendData(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(StandardResponse{
		ErrorCode: CodeSuccess,
		Data:      data,
	})
}

// SendEmpty sends a success envelope without a payload.
func SendEmpty(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(StandardResponse{ErrorCode: CodeSuccess})
}

// SendErrorCode sends an error envelope for the given code.
func SendErrorCode(c *fiber.Ctx, code ErrorCode, message string) error {
	return c.Status(code.HTTPStatus()).JSON(StandardResponse{
		ErrorCode: code,
		ErrorMsg:  message,
	})
}

// SendBizError sends the envelope for a business-rule violation.
func SendBizError(c *fiber.Ctx, err *BizError) error {
	return SendErrorCode(c, err.Code, err.Message)
}
