package config

import (
	"fmt"

	"vesseldocs-backend/pkg/errors"
)

// Mode names a deployment target for the retrieval backend.
type Mode string

const (
	ModeLocal      Mode = "local"
	ModeCloud      Mode = "cloud"
	ModeProduction Mode = "production"
)

// ParseMode converts a string into a Mode, rejecting unknown values.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal, ModeCloud, ModeProduction:
		return Mode(s), nil
	default:
		return "", errors.NewConfigurationError(fmt.Sprintf("unknown backend mode %q (expected local, cloud or production)", s))
	}
}

// Profile is the tagged union of backend deployment profiles. Each variant
// carries only the fields relevant to it; callers resolve the variant with
// a type switch rather than probing optional fields.
type Profile interface {
	Mode() Mode
	// Endpoint is the address a connectivity probe targets.
	Endpoint() string
	// Describe returns a short operator-facing summary without secrets.
	Describe() string
}

// LocalProfile is the test-fixture deployment: documents served from a
// directory on disk next to a local health endpoint.
type LocalProfile struct {
	Address      string
	DocumentRoot string
}

func (p LocalProfile) Mode() Mode       { return ModeLocal }
func (p LocalProfile) Endpoint() string { return p.Address }
func (p LocalProfile) Describe() string {
	return fmt.Sprintf("local fixture at %s (root %s)", p.Address, p.DocumentRoot)
}

// CloudProfile is the cloud object-store deployment.
type CloudProfile struct {
	Address      string
	StorageSpace string
	ServiceKey   string
}

func (p CloudProfile) Mode() Mode       { return ModeCloud }
func (p CloudProfile) Endpoint() string { return p.Address }
func (p CloudProfile) Describe() string {
	return fmt.Sprintf("cloud store %s (space %s)", p.Address, p.StorageSpace)
}

// ProductionProfile is the on-premises file share aboard the vessel.
type ProductionProfile struct {
	Host      string
	ShareName string
	Username  string
	Password  string
}

func (p ProductionProfile) Mode() Mode { return ModeProduction }
func (p ProductionProfile) Endpoint() string {
	return fmt.Sprintf("smb://%s/%s", p.Host, p.ShareName)
}
func (p ProductionProfile) Describe() string {
	return fmt.Sprintf("production share %s as %s", p.Endpoint(), p.Username)
}
