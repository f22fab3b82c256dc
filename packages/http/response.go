package http

import (
	"strconv"
	"strings"
	"time"
)

type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

func (r *Response) Header(key string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsJSON() bool {
	ct := r.ContentType()
	return strings.Contains(ct, "application/json")
}

func (r *Response) IsForm() bool {
	return strings.Contains(r.ContentType(), "application/x-www-form-urlencoded")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}

// RateLimit is the raw x-rate-limit-* metadata of a response.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// RateLimit returns the rate limit headers. ok is false unless the limit,
// remaining and reset headers are all present and numeric.
func (r *Response) RateLimit() (RateLimit, bool) {
	limit, err := strconv.Atoi(r.Header("X-Rate-Limit-Limit"))
	if err != nil {
		return RateLimit{}, false
	}
	remaining, err := strconv.Atoi(r.Header("X-Rate-Limit-Remaining"))
	if err != nil {
		return RateLimit{}, false
	}
	reset, err := strconv.ParseInt(r.Header("X-Rate-Limit-Reset"), 10, 64)
	if err != nil {
		return RateLimit{}, false
	}
	return RateLimit{Limit: limit, Remaining: remaining, Reset: time.Unix(reset, 0)}, true
}
