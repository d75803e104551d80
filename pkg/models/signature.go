package models

import "fmt"

// SignaturePayload carries the zero-trust signature material attached to a
// workflow request. Nonce and sequence number feed replay protection on the
// signature service side; the orchestrator forwards them untouched.
type SignaturePayload struct {
	Signer         string `json:"signer"`
	Algorithm      string `json:"algorithm"`
	Nonce          string `json:"nonce"`
	SequenceNumber int64  `json:"sequence_number"`
	Timestamp      int64  `json:"timestamp"`
	Value          string `json:"value"`
}

// SignatureValidationResult is the signature service verdict for one payload.
// ValidationID is the causal token later steps must thread through dependent
// downstream calls.
type SignatureValidationResult struct {
	ValidationID string            `json:"validation_id"`
	Valid        bool              `json:"valid"`
	Message      string            `json:"message,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// SignatureFromMap extracts a signature payload from a decoded JSON object,
// typically the "signature" member of a workflow input bag.
func SignatureFromMap(raw map[string]any) (SignaturePayload, error) {
	payload := SignaturePayload{}

	signer, ok := raw["signer"].(string)
	if !ok || signer == "" {
		return payload, fmt.Errorf("signature missing signer")
	}

	value, ok := raw["value"].(string)
	if !ok || value == "" {
		return payload, fmt.Errorf("signature missing value")
	}

	payload.Signer = signer
	payload.Value = value

	if algorithm, ok := raw["algorithm"].(string); ok {
		payload.Algorithm = algorithm
	}

	if nonce, ok := raw["nonce"].(string); ok {
		payload.Nonce = nonce
	}

	if sequence, ok := raw["sequence_number"].(float64); ok {
		payload.SequenceNumber = int64(sequence)
	}

	if timestamp, ok := raw["timestamp"].(float64); ok {
		payload.Timestamp = int64(timestamp)
	}

	return payload, nil
}
