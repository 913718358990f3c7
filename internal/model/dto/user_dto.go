package dto

// UpdateProfileRequest is a named profile mutation with a fixed shape; it can
// never touch tier or quota fields.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required,max=100"`
}

// PackageInfo describes the user's current subscription package.
type PackageInfo struct {
	Tier      string `json:"tier"`
	LiveQuota int    `json:"live_quota"`
	LiveUsed  int    `json:"live_used"`
}

// QuotaCheck is the result of a LIVE-mode eligibility probe.
type QuotaCheck struct {
	HasQuota       bool `json:"has_quota"`
	QuotaRemaining int  `json:"quota_remaining"`
}
