package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrBadMessage marks a source message whose payload cannot be decoded into a
// sounding request. Poison pill; the message is counted and skipped.
var ErrBadMessage = errors.New("bad sounding message")

// RawSounding represents an unprocessed message from the source topic.
type RawSounding struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// SoundingRequest is the decoded payload of a source message: one vertical
// profile plus an optional surrounding θe grid for boundary detection.
type SoundingRequest struct {
	Profile Profile     `json:"profile"`
	Grid    *ThetaEGrid `json:"grid,omitempty"`
}

// ParseSoundingRequest decodes a source payload. Decode failures wrap
// ErrBadMessage so the pipeline can distinguish poison pills from analysis
// errors.
func ParseSoundingRequest(payload []byte) (SoundingRequest, error) {
	var req SoundingRequest
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return SoundingRequest{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if req.Profile.ValidTime.IsZero() {
		return SoundingRequest{}, fmt.Errorf("%w: missing valid_time", ErrBadMessage)
	}
	return req, nil
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// SerializeResult packages a diagnostic result for the sink topic. The key is
// "lat,lon@valid_time" so results for one point and cycle land on one
// partition; mode and tier ride in headers for header-only consumers.
func SerializeResult(res DiagnosticResult) (OutputEvent, error) {
	value, err := json.Marshal(res)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("marshaling diagnostic result: %w", err)
	}
	key := fmt.Sprintf("%.4f,%.4f@%s", res.Lat, res.Lon, res.ValidTime.UTC().Format(time.RFC3339))
	return OutputEvent{
		Key:   []byte(key),
		Value: value,
		Headers: map[string]string{
			"mode": res.Mode.String(),
			"tier": res.Tier.String(),
		},
	}, nil
}
