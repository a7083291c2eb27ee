package device

import (
	"strings"

	"codeberg.org/mutker/colorlog/internal/errors"
	"codeberg.org/mutker/colorlog/internal/logger"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

const noDescription = "n/a"

// EnumeratorLister lists ports through go.bug.st/serial/enumerator, falling
// back to the plain port list where detailed enumeration is unsupported.
type EnumeratorLister struct{}

func (EnumeratorLister) List() ([]PortInfo, error) {
	errFactory := errors.New()

	details, err := enumerator.GetDetailedPortsList()
	if err == nil {
		ports := make([]PortInfo, 0, len(details))
		for _, d := range details {
			desc := d.Product
			if desc == "" {
				desc = noDescription
			}
			ports = append(ports, PortInfo{Path: d.Name, Description: desc})
		}
		return ports, nil
	}

	logger.Debug().Err(err).Msg("Detailed port enumeration failed, using plain port list")

	names, err := serial.GetPortsList()
	if err != nil {
		return nil, errFactory.Wrap(ErrEnumerateFailed, err)
	}

	ports := make([]PortInfo, 0, len(names))
	for _, name := range names {
		ports = append(ports, PortInfo{Path: name, Description: noDescription})
	}
	return ports, nil
}

// Match returns the first port, in the given order, whose path contains one
// of MatchSubstrings.
func Match(ports []PortInfo) (PortInfo, bool) {
	for _, p := range ports {
		for _, sub := range MatchSubstrings {
			if strings.Contains(p.Path, sub) {
				return p, true
			}
		}
	}
	return PortInfo{}, false
}

// Locate enumerates ports once and picks the Arduino. The enumerated list is
// returned in every case so the caller can print it when nothing matched.
func Locate(l Lister) (string, []PortInfo, error) {
	errFactory := errors.New()

	ports, err := l.List()
	if err != nil {
		if errors.HasCode(err, ErrEnumerateFailed) {
			return "", nil, err
		}
		return "", nil, errFactory.Wrap(ErrEnumerateFailed, err)
	}

	logger.Debug().Int("ports", len(ports)).Msg("Enumerated serial ports")

	port, ok := Match(ports)
	if !ok {
		return "", ports, errFactory.New(ErrPortNotFound)
	}

	logger.Info().
		Str("path", port.Path).
		Str("description", port.Description).
		Msg("Found Arduino")

	return port.Path, ports, nil
}
