// Package codec encodes registry records to the bytes committed to state and
// decodes them back. One schema per entity kind; encode/decode round-trips
// exactly. Decoding is strict: bytes carrying unknown fields are rejected so
// a record can never silently lose data across a round trip.
package codec

import (
	"bytes"
	"encoding/json"

	"tracechain/internal/domain"
	dErrors "tracechain/pkg/domain-errors"
)

// Encode serializes a registry record.
func Encode(record any) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode record")
	}
	return data, nil
}

func decode(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "decode record")
	}
	return nil
}

// DecodeSystemAdmin decodes the singleton SystemAdmin record.
func DecodeSystemAdmin(data []byte) (domain.SystemAdmin, error) {
	var record domain.SystemAdmin
	err := decode(data, &record)
	return record, err
}

// DecodeTaskType decodes a TaskType record.
func DecodeTaskType(data []byte) (domain.TaskType, error) {
	var record domain.TaskType
	err := decode(data, &record)
	return record, err
}

// DecodeProductType decodes a ProductType record.
func DecodeProductType(data []byte) (domain.ProductType, error) {
	var record domain.ProductType
	err := decode(data, &record)
	return record, err
}

// DecodeEventParameterType decodes an EventParameterType record.
func DecodeEventParameterType(data []byte) (domain.EventParameterType, error) {
	var record domain.EventParameterType
	err := decode(data, &record)
	return record, err
}

// DecodeEventType decodes an EventType record.
func DecodeEventType(data []byte) (domain.EventType, error) {
	var record domain.EventType
	err := decode(data, &record)
	return record, err
}

// DecodePropertyType decodes a PropertyType record.
func DecodePropertyType(data []byte) (domain.PropertyType, error) {
	var record domain.PropertyType
	err := decode(data, &record)
	return record, err
}
