package resolve

// Stats counts run outcomes per record kind and disposition. A Stats value
// is owned by one Pipeline and reset with it; it is never persisted.
type Stats struct {
	ContactsProcessed    int
	ContactsMatched      int
	ContactsAutoAccepted int
	ContactsManualReview int
	ContactsRejected     int

	// SubsidiaryGroupsProcessed counts parent groups, not child rows.
	SubsidiaryGroupsProcessed    int
	SubsidiariesMatched          int
	SubsidiaryGroupsAutoAccepted int
	SubsidiaryGroupsManualReview int
	SubsidiaryGroupsRejected     int

	Errors int
}
