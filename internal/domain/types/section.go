package types

const (
	// DefaultSection is used when a store is opened without a section name.
	DefaultSection Section = "secure-local"

	// BaseDirectory is the single directory inside the storage root that holds
	// one file per section.
	BaseDirectory = "secure-base"
)

// Section names an isolated document namespace. It is used verbatim as the
// name of the backing file.
type Section string

// String returns the string form of the section.
func (s Section) String() string { return string(s) }

// OrDefault returns DefaultSection when s is empty.
func (s Section) OrDefault() Section {
	if s == "" {
		return DefaultSection
	}
	return s
}
