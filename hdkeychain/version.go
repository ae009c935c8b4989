package hdkeychain

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// XPrvVersion is the version of serialized mainnet extended private
	// keys, encoding to the "xprv" prefix.
	XPrvVersion uint32 = 0x0488ade4

	// XPubVersion is the version of serialized mainnet extended public
	// keys, encoding to the "xpub" prefix.
	XPubVersion uint32 = 0x0488b21e
)

// Versions is the pair of version bytes used to serialize the private and
// public variants of an extended key. A key keeps the pair of the network it
// was created for, so neutering a testnet private key yields a testnet public
// key.
type Versions struct {
	Private [4]byte
	Public  [4]byte
}

// NewVersions builds a version pair from its numeric form.
func NewVersions(private, public uint32) Versions {
	var v Versions
	binary.BigEndian.PutUint32(v.Private[:], private)
	binary.BigEndian.PutUint32(v.Public[:], public)

	return v
}

// VersionsForNet returns the version pair of the given network.
func VersionsForNet(net *chaincfg.Params) Versions {
	return Versions{
		Private: net.HDPrivateKeyID,
		Public:  net.HDPublicKeyID,
	}
}

// MainNetVersions is the xprv/xpub pair.
var MainNetVersions = NewVersions(XPrvVersion, XPubVersion)

// knownNets are the networks whose versions are recognized when decoding.
// Networks sharing a pair (testnet, regtest and signet) resolve to the same
// entry.
var knownNets = []*chaincfg.Params{
	&chaincfg.MainNetParams,
	&chaincfg.TestNet3Params,
	&chaincfg.RegressionNetParams,
	&chaincfg.SimNetParams,
	&chaincfg.SigNetParams,
}

// LookupVersion resolves decoded version bytes to the pair they belong to
// and reports whether they denote the private variant.
func LookupVersion(version [4]byte) (Versions, bool, bool) {
	for _, net := range knownNets {
		versions := VersionsForNet(net)
		switch version {
		case versions.Private:
			return versions, true, true
		case versions.Public:
			return versions, false, true
		}
	}

	return Versions{}, false, false
}

// NetForName returns the chain parameters of a network by its btcd name, for
// example "mainnet" or "testnet3".
func NetForName(name string) (*chaincfg.Params, bool) {
	for _, net := range knownNets {
		if net.Name == name {
			return net, true
		}
	}

	return nil, false
}
