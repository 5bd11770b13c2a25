package v1

type ShiftGuardClient struct {
	Transport *Transport
	Sessions  *SessionEndpoint
	Alerts    *AlertEndpoint
}

// NewShiftGuardClient initializes the API client
func NewShiftGuardClient(baseURL string, token string) *ShiftGuardClient {
	t := NewTransport(baseURL, token)
	return &ShiftGuardClient{
		Transport: t,
		Sessions:  &SessionEndpoint{transport: t},
		Alerts:    &AlertEndpoint{transport: t},
	}
}
