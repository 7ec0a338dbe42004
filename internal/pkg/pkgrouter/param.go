package pkgrouter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerror"
	"github.com/julienschmidt/httprouter"
)

// GetParam reads a path parameter stored by httprouter.
func GetParam(ctx context.Context, key string) string {
	return httprouter.ParamsFromContext(ctx).ByName(key)
}

// RequireParam returns the trimmed path parameter, or an invalid input error
// when it is blank.
func RequireParam(ctx context.Context, key string) (string, error) {
	v := strings.TrimSpace(GetParam(ctx, key))
	if v == "" {
		return "", pkgerror.NewInvalidInput(fmt.Errorf("%s is required", key))
	}
	return v, nil
}

// PositiveIntParam parses a path parameter as an integer greater than zero.
func PositiveIntParam(ctx context.Context, key string) (int, error) {
	raw, err := RequireParam(ctx, key)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, pkgerror.NewInvalidInput(fmt.Errorf("invalid %s %q", key, raw))
	}
	return n, nil
}
