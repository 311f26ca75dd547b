package params

import "strings"

const (
	// AdditionalDataPrefix marks the additional-data keys meant for the SDK.
	AdditionalDataPrefix = "threeds2."

	// ServiceGroup is the group the SDK reads its directory server
	// information from.
	ServiceGroup Group = "threeDS2DirectoryServerInformation"

	// KeyDirectoryServerID and KeyPublicKey are the entries the SDK
	// requires in ServiceGroup.
	KeyDirectoryServerID = "directoryServerId"
	KeyPublicKey         = "publicKey"
)

// FromImport returns Parameters whose group holds every entry of source
// whose key starts with prefix, stored under the key with prefix removed.
// Other entries are ignored. A nil or empty source yields empty Parameters.
func FromImport(source map[string]string, prefix string, group Group) *Parameters {
	p := New()
	p.ImportInto(source, prefix, group)
	return p
}

// FromAdditionalData imports the threeds2.-prefixed entries of the
// additional data returned with a payment request into ServiceGroup.
func FromAdditionalData(additionalData map[string]string) *Parameters {
	return FromImport(additionalData, AdditionalDataPrefix, ServiceGroup)
}

// ImportInto copies the prefixed entries of source into group of p,
// overwriting existing keys, and returns the number of entries copied.
func (p *Parameters) ImportInto(source map[string]string, prefix string, group Group) int {
	n := 0
	for k, v := range source {
		key, ok := strings.CutPrefix(k, prefix)
		if !ok {
			continue
		}
		p.SetIn(key, Some(v), group)
		n++
	}
	return n
}
