package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	QRTypeFiat        = "fiat"
	QRTypeCrypto      = "crypto"
	QRTypeNova        = "nova"
	QRTypeNFTMint     = "nft_mint"
	QRTypeNFTListing  = "nft_listing"
	QRTypeMultiOption = "multi_option"
)

// AllQRTypes lists every QR code type the API accepts.
var AllQRTypes = []string{
	QRTypeFiat, QRTypeCrypto, QRTypeNova, QRTypeNFTMint, QRTypeNFTListing, QRTypeMultiOption,
}

const (
	EventScan    = "scan"
	EventClicked = "clicked"
	EventPaid    = "paid"
	EventMinted  = "minted"
)

// QRCode is a QR code as the API returns it. DestinationConfig is type-specific and is kept as
// an arbitrary JSON value.
type QRCode struct {
	ID                string        `json:"id"`
	Slug              string        `json:"slug"`
	Name              string        `json:"name"`
	Type              string        `json:"type"`
	DestinationConfig ldvalue.Value `json:"destination_config"`
	IsActive          bool          `json:"is_active"`
	ScanCount         int           `json:"scan_count"`
	UserID            string        `json:"user_id,omitempty"`
	CreatedAt         string        `json:"created_at,omitempty"`
}

type CreateQRParams struct {
	Name              string        `json:"name,omitempty"`
	Type              string        `json:"type,omitempty"`
	DestinationConfig ldvalue.Value `json:"destination_config"`
}

// UpdateQRParams is a partial update; nil fields are left unchanged.
type UpdateQRParams struct {
	Name              *string        `json:"name,omitempty"`
	IsActive          *bool          `json:"is_active,omitempty"`
	DestinationConfig *ldvalue.Value `json:"destination_config,omitempty"`
}

// QRCreated is the body of a successful POST /qr.
type QRCreated struct {
	QR    *QRCode `json:"qr"`
	QRURL string  `json:"qrUrl"`
}

type QRResponse struct {
	QR *QRCode `json:"qr"`
}

type QRList struct {
	QRCodes []QRCode `json:"qrCodes"`
}

// LimitError is the body of a POST /qr that was refused because the plan limit was reached.
type LimitError struct {
	Error        string `json:"error"`
	LimitReached bool   `json:"limitReached"`
	CurrentCount int    `json:"currentCount,omitempty"`
	Limit        int    `json:"limit,omitempty"`
	Plan         string `json:"plan,omitempty"`
}

// EventParams is the body of POST /qr/{slug}/event.
type EventParams struct {
	EventType string        `json:"event_type"`
	Country   string        `json:"country,omitempty"`
	UserAgent string        `json:"user_agent,omitempty"`
	Metadata  ldvalue.Value `json:"metadata"`
}

type QREvent struct {
	ID        string        `json:"id"`
	QRCodeID  string        `json:"qr_code_id"`
	EventType string        `json:"event_type"`
	Country   string        `json:"country,omitempty"`
	Metadata  ldvalue.Value `json:"metadata"`
}

// AnalyticsResponse is the body of GET /qr/{slug}/analytics.
type AnalyticsResponse struct {
	QR     *QRCode        `json:"qr"`
	Events []QREvent      `json:"events"`
	Stats  AnalyticsStats `json:"stats"`
}

type AnalyticsStats struct {
	TotalScans   int `json:"totalScans"`
	RecentEvents int `json:"recentEvents"`
}
