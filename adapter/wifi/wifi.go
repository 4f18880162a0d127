package wifi

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"radio-box-ng/pkg/logger"
)

type Config struct {
	Interface   string
	JoinTimeout time.Duration
	APSSID      string
	APPassword  string
}

// Manager drives the platform network tool (nmcli). Association itself
// is the OS's business; this only requests it and falls back to an
// access point so the HTTP surface stays reachable for reconfiguration.
type Manager struct {
	cfg *Config
	log *logger.Zerolog
}

func NewManager(cfg *Config, log *logger.Zerolog) *Manager {
	if cfg.JoinTimeout == 0 {
		cfg.JoinTimeout = 15 * time.Second
	}
	return &Manager{cfg: cfg, log: log}
}

func (m *Manager) Join(ssid, password string) error {
	if ssid == "" {
		return fmt.Errorf("no ssid configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.JoinTimeout)
	defer cancel()

	args := []string{"device", "wifi", "connect", ssid, "password", password}
	if m.cfg.Interface != "" {
		args = append(args, "ifname", m.cfg.Interface)
	}

	out, err := exec.CommandContext(ctx, "nmcli", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("nmcli connect failed: %v: %s", err, out)
	}

	m.log.Info().Msgf("joined network %s", ssid)
	return nil
}

func (m *Manager) StartAccessPoint() error {
	args := []string{"device", "wifi", "hotspot", "ssid", m.cfg.APSSID, "password", m.cfg.APPassword}
	if m.cfg.Interface != "" {
		args = append(args, "ifname", m.cfg.Interface)
	}

	out, err := exec.Command("nmcli", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("nmcli hotspot failed: %v: %s", err, out)
	}

	m.log.Info().Msgf("access point %s started", m.cfg.APSSID)
	return nil
}

// EnsureNetwork joins the configured network, falling back to the access
// point. Returns true when running in access-point mode. Never fatal:
// the daemon keeps serving whatever interfaces are reachable.
func (m *Manager) EnsureNetwork(ssid, password string) bool {
	err := m.Join(ssid, password)
	if err == nil {
		return false
	}
	m.log.Error().Msgf("failed to join %q: %v", ssid, err)

	if err := m.StartAccessPoint(); err != nil {
		m.log.Error().Msgf("failed to start access point: %v", err)
	}
	return true
}
