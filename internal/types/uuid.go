package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex fog_01HZX4Q5K3V0J9S8D7C6B5A4E3
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_SCHOOL_YEAR      = "sy"
	UUID_PREFIX_SCHOOL_MONTH     = "sm"
	UUID_PREFIX_GRADE            = "grade"
	UUID_PREFIX_STUDENT          = "stu"
	UUID_PREFIX_STUDENT_GRADE    = "enr"
	UUID_PREFIX_MONTHLY_FEE      = "fee"
	UUID_PREFIX_FEE_ON_GRADE     = "fog"
	UUID_PREFIX_DISCOUNT         = "disc"
	UUID_PREFIX_STUDENT_DISCOUNT = "sdisc"
	UUID_PREFIX_PAYMENT          = "pay"
	UUID_PREFIX_PAYMENT_METHOD   = "pm"
	UUID_PREFIX_SETTING          = "set"
)
