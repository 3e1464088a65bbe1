package external

// OneSignalFilter is one entry of the notification "filters" array.
type OneSignalFilter struct {
	Field    string `json:"field"`
	Key      string `json:"key"`
	Relation string `json:"relation"`
	Value    string `json:"value"`
}

// OneSignalNotificationRequest is the body of POST /api/v1/notifications. Exactly one of
// Filters and IncludePlayerIDs is set.
type OneSignalNotificationRequest struct {
	AppID            string            `json:"app_id"`
	Filters          []OneSignalFilter `json:"filters,omitempty"`
	IncludePlayerIDs []string          `json:"include_player_ids,omitempty"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
}

type OneSignalNotificationResponse struct {
	ID         string `json:"id"`
	Recipients int    `json:"recipients"`
	Errors     any    `json:"errors,omitempty"`
}

// OneSignalDeviceUpdateRequest is the body of PUT /api/v1/players/{id}.
type OneSignalDeviceUpdateRequest struct {
	AppID          string            `json:"app_id"`
	Tags           map[string]string `json:"tags"`
	ExternalUserID string            `json:"external_user_id,omitempty"`
}

type OneSignalDeviceUpdateResponse struct {
	Success bool `json:"success"`
}

type OneSignalErrorResponse struct {
	Errors any `json:"errors"`
}
