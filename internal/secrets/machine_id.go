package secrets

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

const passwordSalt = "lazyfilter-keyring-salt-v1"

// deriveFilePassword derives the file backend password from the machine id
// and user name, so it is stable across runs on one machine only
func deriveFilePassword() (string, error) {
	machineID, err := machineID()
	if err != nil {
		machineID, _ = os.Hostname()
	}

	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}
	if username == "" {
		username = fmt.Sprintf("uid-%d", os.Getuid())
	}

	hash := sha256.Sum256([]byte(machineID + username + passwordSalt))
	return base64.StdEncoding.EncodeToString(hash[:]), nil
}

func machineID() (string, error) {
	switch runtime.GOOS {
	case "linux":
		for _, path := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id"} {
			if data, err := os.ReadFile(path); err == nil {
				return strings.TrimSpace(string(data)), nil
			}
		}
	case "darwin":
		if out, err := exec.Command("ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output(); err == nil {
			if id, ok := valueAfter(string(out), "IOPlatformUUID", "="); ok {
				return strings.Trim(id, `"`), nil
			}
		}
	case "windows":
		if out, err := exec.Command("wmic", "csproduct", "get", "UUID").Output(); err == nil {
			for _, line := range strings.Split(string(out), "\n") {
				if line = strings.TrimSpace(line); line != "" && line != "UUID" {
					return line, nil
				}
			}
		}
	}
	return os.Hostname()
}

// valueAfter finds the first line containing marker and returns what follows sep
func valueAfter(output, marker, sep string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, marker) {
			continue
		}
		if _, v, ok := strings.Cut(line, sep); ok {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}
