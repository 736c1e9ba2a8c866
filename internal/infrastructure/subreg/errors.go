package subreg

import (
	"fmt"

	"github.com/opslake/subregops/internal/domain"
)

// Fault code families reported by the endpoint. The major code selects the
// family, the minor code the specific condition within it.
const (
	MajorAuth      = 500
	MajorTransient = 503
	MajorDNS       = 524

	MinorBadCredentials = 101
	MinorSessionExpired = 104
	MinorDomainNotFound = 213
	MinorRecordNotFound = 214
	MinorZoneNotFound   = 215
	MinorPollEmpty      = 301
)

// APIError is an application-level error carried inside a successful SOAP
// envelope (status: error). It matches the domain sentinels through
// errors.Is so callers never switch on raw codes.
type APIError struct {
	Command string
	Message string
	Major   int
	Minor   int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: major %d minor %d: %s", e.Command, e.Major, e.Minor, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrSessionExpired:
		return e.Major == MajorAuth && e.Minor == MinorSessionExpired
	case domain.ErrAuthFailed:
		return e.Major == MajorAuth
	case domain.ErrTransient:
		return e.Major == MajorTransient
	case domain.ErrDomainNotFound:
		return e.Major == MajorDNS && e.Minor == MinorDomainNotFound
	case domain.ErrRecordNotFound:
		return e.Major == MajorDNS && e.Minor == MinorRecordNotFound
	case domain.ErrZoneNotFound:
		return e.Major == MajorDNS && e.Minor == MinorZoneNotFound
	case domain.ErrPollEmpty:
		return e.Minor == MinorPollEmpty
	}
	return false
}
