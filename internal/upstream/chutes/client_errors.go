package chutes

import (
	"net/url"
	"strings"
)

func classifyErr(err error) string {
	if err == nil {
		return ""
	}
	if ue, ok := err.(*url.Error); ok {
		if ue.Timeout() {
			return "timeout"
		}
		if ue.Err != nil {
			s := ue.Err.Error()
			if strings.Contains(s, "no such host") {
				return "dns"
			}
			if strings.Contains(s, "connection reset") {
				return "conn_reset"
			}
			if strings.Contains(s, "broken pipe") {
				return "conn_broken_pipe"
			}
			if strings.Contains(s, "i/o timeout") {
				return "timeout"
			}
		}
	}
	s := err.Error()
	if strings.Contains(s, "deadline exceeded") {
		return "deadline"
	}
	if strings.Contains(s, "context canceled") {
		return "canceled"
	}
	if strings.Contains(s, "no such host") {
		return "dns"
	}
	if strings.Contains(s, "connection reset") {
		return "conn_reset"
	}
	if strings.Contains(s, "broken pipe") {
		return "conn_broken_pipe"
	}
	if strings.Contains(s, "timeout") {
		return "timeout"
	}
	return "other"
}
