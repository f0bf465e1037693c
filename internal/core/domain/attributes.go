package domain

// ProviderIdentityAttributes are the identity attributes asserted by the
// external document issuing provider after a completed handshake. They live
// only for the duration of one session and are never written to durable
// storage. Only the comparison verdicts are persisted.
type ProviderIdentityAttributes struct {
	FullName    string
	DateOfBirth string
	// Document numbers are optional. Presence depends on what the provider
	// has issued to this user.
	LicenseNumber    string
	PANNumber        string
	NationalIDNumber string
}

// ReferenceNumber returns the provider asserted document number for the
// category and whether it is present.
func (a ProviderIdentityAttributes) ReferenceNumber(category DocumentCategory) (string, bool) {
	var n string
	switch category {
	case CategoryDrivingLicense:
		n = a.LicenseNumber
	case CategoryPAN:
		n = a.PANNumber
	case CategoryNationalID:
		n = a.NationalIDNumber
	}
	return n, n != ""
}
