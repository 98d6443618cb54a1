package share

import "errors"

var (
	ErrLinkNotFound = errors.New("share link not found")
	ErrLinkExpired  = errors.New("share link has expired")
	ErrLinkRevoked  = errors.New("share link has been revoked")
	ErrInvalidTTL   = errors.New("invalid ttl")
)
