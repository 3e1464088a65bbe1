package model

// NotificationMessage is rendered from a city and its reading only.
type NotificationMessage struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// SegmentFilter targets every device whose tag Key relates to Value.
type SegmentFilter struct {
	Field    string `json:"field"`
	Key      string `json:"key"`
	Relation string `json:"relation"`
	Value    string `json:"value"`
}

// CitySegment is the tag filter used for segment dispatch.
func CitySegment(city string) SegmentFilter {
	return SegmentFilter{Field: "tag", Key: "city", Relation: "=", Value: city}
}

// RecipientSet holds either explicit device tokens or a segment filter.
type RecipientSet struct {
	DeviceTokens []string
	Segment      *SegmentFilter
}

// IsSegment reports whether membership is resolved by the push provider.
func (r RecipientSet) IsSegment() bool {
	return r.Segment != nil
}

// Empty is true for a token list with no entries. A segment is never empty.
func (r RecipientSet) Empty() bool {
	return !r.IsSegment() && len(r.DeviceTokens) == 0
}

// Count is the number of explicit tokens, zero for a segment.
func (r RecipientSet) Count() int {
	return len(r.DeviceTokens)
}

// ProviderReceipt describes an accepted push request.
type ProviderReceipt struct {
	NotificationID string
	Recipients     int
	StatusCode     int
}
