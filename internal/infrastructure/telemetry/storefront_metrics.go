package telemetry

import "context"

// Outcome values for the AttrOutcome attribute
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
)

// StorefrontMetrics holds the business counters of the shop.
type StorefrontMetrics struct {
	inquiries    *Counter
	logins       *Counter
	imageUploads *Counter
	uploadSize   *Histogram
	events       *Counter
}

// NewStorefrontMetrics creates the storefront instruments on the provider's meter
func NewStorefrontMetrics(mp *MeterProvider) (*StorefrontMetrics, error) {
	meter := mp.Meter(TracerName)

	inquiries, err := NewCounter(meter, "inquiry_submissions_total",
		"Contact form submissions by outcome", "{submission}")
	if err != nil {
		return nil, err
	}
	logins, err := NewCounter(meter, "admin_login_attempts_total",
		"Admin login attempts by outcome", "{attempt}")
	if err != nil {
		return nil, err
	}
	imageUploads, err := NewCounter(meter, "image_uploads_total",
		"Product image uploads by outcome", "{upload}")
	if err != nil {
		return nil, err
	}
	uploadSize, err := NewHistogram(meter, HistogramOpts{
		Name:        "image_upload_size_bytes",
		Description: "Accepted product image sizes",
		Unit:        "By",
		Boundaries:  UploadSizeBuckets,
	})
	if err != nil {
		return nil, err
	}
	events, err := NewCounter(meter, "analytics_events_total",
		"Tracked storefront interactions by event name", "{event}")
	if err != nil {
		return nil, err
	}

	return &StorefrontMetrics{
		inquiries:    inquiries,
		logins:       logins,
		imageUploads: imageUploads,
		uploadSize:   uploadSize,
		events:       events,
	}, nil
}

// NewNoopStorefrontMetrics returns instruments bound to the global (no-op by default) meter
func NewNoopStorefrontMetrics() *StorefrontMetrics {
	m, err := NewStorefrontMetrics(nil)
	if err != nil {
		// the global no-op meter never fails to create instruments
		panic(err)
	}
	return m
}

// RecordInquiry counts a contact form submission
func (m *StorefrontMetrics) RecordInquiry(ctx context.Context, outcome, locale string) {
	if m == nil {
		return
	}
	m.inquiries.Inc(ctx, AttrOutcome.String(outcome), AttrLocale.String(locale))
}

// RecordLogin counts an admin login attempt
func (m *StorefrontMetrics) RecordLogin(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.logins.Inc(ctx, AttrOutcome.String(outcome))
}

// RecordImageUpload counts an upload and, when accepted, its size
func (m *StorefrontMetrics) RecordImageUpload(ctx context.Context, outcome string, size int64) {
	if m == nil {
		return
	}
	m.imageUploads.Inc(ctx, AttrOutcome.String(outcome))
	if outcome == OutcomeSuccess {
		m.uploadSize.Record(ctx, float64(size))
	}
}

// RecordEvent counts a tracked storefront event
func (m *StorefrontMetrics) RecordEvent(ctx context.Context, name string) {
	if m == nil {
		return
	}
	m.events.Inc(ctx, AttrEventName.String(name))
}
