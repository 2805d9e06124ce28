package dto

import (
	"time"

	"bistro/shared/constant"
	"bistro/shared/model"
	"bistro/shared/timezone"
)

// Metadata is the audit trail carried by every resource response. Timestamps are RFC 3339 in the restaurant
// timezone; an unset timestamp is rendered empty.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedAt:  timestamp(source.CreatedAt),
		ModifiedAt: timestamp(source.ModifiedAt),
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
