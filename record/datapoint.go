// File: record/datapoint.go
// Author: momentics <momentics@gmail.com>
//
// DataPoint is the record carried through pools and sequences by the
// command front end, with its JSON encoding.

package record

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Errors reported by encoding and decoding.
var (
	ErrInvalidValue  = errors.New("invalid value")
	ErrSerialization = errors.New("serialization error")
)

// SchemaID identifies the embedded DataPoint JSON schema.
const SchemaID = "https://github.com/momentics/hioload-mem/record/datapoint.schema.json"

//go:embed datapoint.schema.json
var schemaJSON []byte

// Schema returns the raw JSON schema for DataPoint.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(SchemaID, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile(SchemaID)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
})

// DataPoint is a single timestamped measurement.
type DataPoint struct {
	ID        uint64  `json:"id"`
	Value     float64 `json:"value"`
	Timestamp string  `json:"timestamp"`
}

// Validate reports values that have no JSON representation.
func (p DataPoint) Validate() error {
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return fmt.Errorf("%w: value %v", ErrInvalidValue, p.Value)
	}
	return nil
}

// Encode returns the compact JSON form of p.
func Encode(p DataPoint) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	buf, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return buf, nil
}

// Decode parses buf and checks it against the DataPoint schema, so missing
// fields and wrong types are rejected rather than zero-filled.
func Decode(buf []byte) (DataPoint, error) {
	var p DataPoint
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf))
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	sch, err := compiledSchema()
	if err != nil {
		return p, err
	}
	if err := sch.Validate(doc); err != nil {
		return p, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if err := json.Unmarshal(buf, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return p, nil
}

// Generate returns a random point stamped with the current UTC time.
func Generate() DataPoint {
	return DataPoint{
		ID:        1 + rand.Uint64N(999),
		Value:     rand.Float64() * 100,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// Encoder writes points as JSON lines.
type Encoder struct {
	enc *json.Encoder
	n   int
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// Encode writes one point followed by a newline.
func (e *Encoder) Encode(p DataPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := e.enc.Encode(p); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	e.n++
	return nil
}

// EncodeAll writes every point in ps.
func (e *Encoder) EncodeAll(ps []DataPoint) error {
	for i, p := range ps {
		if err := e.Encode(p); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}
	return nil
}

// Count returns the number of points written.
func (e *Encoder) Count() int {
	return e.n
}
