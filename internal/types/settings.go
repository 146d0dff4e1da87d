package types

import (
	"github.com/samber/lo"
)

type SettingKey string

const (
	// SettingKeyPaymentDueDay is the day of month tuition falls due (1-31)
	SettingKeyPaymentDueDay SettingKey = "PAYMENT_DUE_DAY"
	// SettingKeyDaysUntilOverdue is the grace period in days after the due date
	SettingKeyDaysUntilOverdue SettingKey = "DAYS_UNTIL_OVERDUE"
	// SettingKeySearchSimilarityThreshold is consumed by the search layer
	SettingKeySearchSimilarityThreshold SettingKey = "SEARCH_SIMILARITY_THRESHOLD"
	// SettingKeySoftDeleteRetentionDays is consumed by the cleanup job
	SettingKeySoftDeleteRetentionDays SettingKey = "SOFT_DELETE_RETENTION_DAYS"
)

func (s SettingKey) String() string {
	return string(s)
}

// IsValidSettingKey checks if a setting key is known
func IsValidSettingKey(key string) bool {
	return lo.Contains([]SettingKey{
		SettingKeyPaymentDueDay,
		SettingKeyDaysUntilOverdue,
		SettingKeySearchSimilarityThreshold,
		SettingKeySoftDeleteRetentionDays,
	}, SettingKey(key))
}
