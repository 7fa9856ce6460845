package config

import (
	"os"
	"strings"
)

// PiAPIBaseURL points at the Pi platform API used to verify access tokens.
// Empty means sandbox mode: logins are accepted with a demo identity.
func PiAPIBaseURL() string {
	return os.Getenv("PI_API_BASE_URL")
}

// AdminPiUIDs lists the external identities that moderate the feed. The
// sandbox demo identity is an admin by default so a fresh checkout has a
// working review queue.
func AdminPiUIDs() []string {
	raw := os.Getenv("ADMIN_PI_UIDS")
	if raw == "" {
		raw = "uid_admin_777"
	}

	var uids []string
	for _, uid := range strings.Split(raw, ",") {
		if uid = strings.TrimSpace(uid); uid != "" {
			uids = append(uids, uid)
		}
	}
	return uids
}

func EnrichmentEnabled() bool {
	return os.Getenv("ENRICHMENT_DISABLED") != "true"
}

func Port() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return port
}
