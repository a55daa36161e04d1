package soundshift

// ListingEntry is one row of a dictionary listing.
type ListingEntry struct {
	// Spelling is the morpheme tags joined with '+'.
	Spelling string
	// RawRoman is the romanization of the underived form.
	RawRoman string
	// Roman is the romanization of the derived form.
	Roman string
	// IPA is the derived form with stress marks.
	IPA string
	// Definitions are the glosses of the word.
	Definitions []string
	// Err is set when the row could not be rendered; the other fields
	// hold whatever was computed before the failure.
	Err error
}

// LookupResult holds the lookup result for a single token of a text.
type LookupResult struct {
	// Token is the romanized token as it appears in the text.
	Token string
	// Word is nil when the token is not in the dictionary.
	Word *Word
	// Err explains a nil Word.
	Err error
}
