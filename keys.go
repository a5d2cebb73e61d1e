package trailhead

import "github.com/xy-planning-network/trailhead/http/keyring"

const (
	// IpAddrKey stashes the IP address of an HTTP request being handled by trailhead.
	IpAddrKey keyring.Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey keyring.Key = "RequestIDKey"

	// ResponderKey stashes the resp.Responder handlers respond with.
	ResponderKey keyring.Key = "ResponderKey"
)
