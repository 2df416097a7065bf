package common

import "time"

var StartTime = time.Now().Unix() // unit: second
var Version = "v0.0.1"            // overridden at build time with -ldflags

// bcrypt work factor for stored passwords
const PasswordHashCost = 10

// All duration's unit is seconds
// Windows are fixed and keyed per client IP
var (
	GlobalWebRateLimitNum            = 60
	GlobalWebRateLimitDuration int64 = 3 * 60

	UploadRateLimitNum            = 10
	UploadRateLimitDuration int64 = 60

	CriticalRateLimitNum            = 20
	CriticalRateLimitDuration int64 = 20 * 60
)

// RequestIdKey is both the header name and the gin context key.
const RequestIdKey = "X-Request-Id"
