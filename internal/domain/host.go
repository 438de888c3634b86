package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultSSHPort = 22

type HostID string

type Host struct {
	ID       HostID
	Name     string
	Address  string
	Port     int
	Username string
	// SecretRef names the vault entry holding the password. The password
	// itself never travels with the profile.
	SecretRef string
}

func (h Host) Validate() error {
	if strings.TrimSpace(string(h.ID)) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(h.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(h.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidConfig)
	}
	if h.Port < 0 || h.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, h.Port)
	}

	return nil
}

func (h Host) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}

	return h.Target().Destination()
}

func (h Host) Target() Target {
	port := h.Port
	if port == 0 {
		port = DefaultSSHPort
	}

	return Target{Address: h.Address, Port: port, Username: h.Username}
}

// Target is the minimal addressing needed by every remote invocation.
type Target struct {
	Address  string
	Port     int
	Username string
}

func (t Target) Validate() error {
	if strings.TrimSpace(t.Address) == "" || strings.TrimSpace(t.Username) == "" {
		return fmt.Errorf("%w: missing address or username", ErrInvalidConfig)
	}

	return nil
}

func (t Target) Destination() string {
	return t.Username + "@" + t.Address
}

func (t Target) PortString() string {
	if t.Port == 0 {
		return strconv.Itoa(DefaultSSHPort)
	}

	return strconv.Itoa(t.Port)
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%s", t.Destination(), t.PortString())
}
