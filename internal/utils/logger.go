package utils

import (
	"log"
	"strings"
)

// LogEvent prints a standardized log line with module/action/request_id.
// Amounts and ids are fine to log; never log tokens or payment proofs.
func LogEvent(requestID, module, action, message string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("[%s] action=%s request_id=%s %s", strings.ToUpper(module), action, rid, message)
}
