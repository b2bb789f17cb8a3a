package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mountain-explorer/internal/pkg/errors"
)

// queryFloat читает необязательный float параметр (nil если параметр отсутствует)
func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: "number"})
	}
	return &v, nil
}

// queryInt читает необязательный int параметр (0 если параметр отсутствует)
func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: "integer"})
	}
	return v, nil
}

// queryIntPtr читает необязательный int параметр как указатель
func queryIntPtr(c *fiber.Ctx, key string) (*int, error) {
	if strings.TrimSpace(c.Query(key)) == "" {
		return nil, nil
	}
	v, err := queryInt(c, key)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
