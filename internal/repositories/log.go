package repositories

import (
	"strings"

	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
)

// logQuery logs query in a single line with its args, result and error.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
