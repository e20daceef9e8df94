package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderID builds the human-readable id customers use for tracking,
// e.g. ORD-20250114-3F9A2C. Uniqueness is backed by the orders index;
// six hex bytes of uuid entropy per day make collisions a non-issue.
func NewOrderID(now time.Time) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), strings.ToUpper(raw[:6]))
}
