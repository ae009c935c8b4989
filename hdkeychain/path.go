package hdkeychain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lightningnetwork/lnhd/eckey"
)

// Path is a sequence of child indexes leading from a key to one of its
// descendants. Hardened steps have HardenedKeyStart added.
type Path []uint32

// ParsePath parses the text form of a derivation path such as
// "m/44'/0'/0'/0/1". Hardened steps may be marked with ', h or H. The path
// must start at the root, written m or M.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if parts[0] != "m" && parts[0] != "M" {
		return nil, eckey.NewError(eckey.KindInvalidPath,
			"path %q does not start with m", s)
	}

	path := make(Path, 0, len(parts)-1)
	for _, part := range parts[1:] {
		index, err := parseStep(part)
		if err != nil {
			return nil, eckey.WrapError(eckey.KindInvalidPath, err,
				"path %q", s)
		}

		path = append(path, index)
	}

	return path, nil
}

// parseStep parses a single path component.
func parseStep(part string) (uint32, error) {
	var hardened bool
	switch {
	case strings.HasSuffix(part, "'"),
		strings.HasSuffix(part, "h"),
		strings.HasSuffix(part, "H"):

		hardened = true
		part = part[:len(part)-1]
	}

	// Signs and other prefixes accepted by ParseUint's base detection are
	// not part of the path syntax.
	if part == "" || part[0] < '0' || part[0] > '9' {
		return 0, fmt.Errorf("invalid component %q", part)
	}

	index, err := strconv.ParseUint(part, 10, 32)
	if err != nil {
		return 0, err
	}
	if index >= HardenedKeyStart {
		return 0, fmt.Errorf("index %d out of range", index)
	}

	if hardened {
		index += HardenedKeyStart
	}

	return uint32(index), nil
}

// String returns the text form of the path, marking hardened steps with '.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, index := range p {
		b.WriteString("/")
		if index >= HardenedKeyStart {
			b.WriteString(strconv.FormatUint(
				uint64(index-HardenedKeyStart), 10,
			))
			b.WriteString("'")

			continue
		}

		b.WriteString(strconv.FormatUint(uint64(index), 10))
	}

	return b.String()
}

// FormatPath returns the text form of a sequence of child indexes.
func FormatPath(path []uint32) string {
	return Path(path).String()
}

// DerivePath derives the descendant of key reached by following path. An
// empty path returns key itself.
func DerivePath(key ExtendedKey, path Path) (ExtendedKey, error) {
	for i, index := range path {
		child, err := key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("unable to derive %v: %w",
				path[:i+1], err)
		}

		key = child
	}

	return key, nil
}
