package domain

import "time"

// Vcard is the profile card of an account, replaced wholesale on each commit.
type Vcard struct {
	AccountID ID
	Name      string
	Photo     *Blob
	UpdatedAt time.Time
}
