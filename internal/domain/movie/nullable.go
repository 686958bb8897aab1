package movie

import (
	"bytes"
	"encoding/json"
	"math"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

var jsonNull = []byte("null")

// NullInt is an integer that may be absent. Stored values of any non-integer
// BSON type decode as absent so dirty catalogue rows still load.
type NullInt struct {
	Value int
	Valid bool
}

// Int returns a present NullInt.
func Int(v int) NullInt { return NullInt{Value: v, Valid: true} }

// IntFromPtr maps nil to absent.
func IntFromPtr(v *int) NullInt {
	if v == nil {
		return NullInt{}
	}
	return Int(*v)
}

// IsZero reports absence; used by omitempty and omitzero.
func (n NullInt) IsZero() bool { return !n.Valid }

// Ptr returns nil when absent.
func (n NullInt) Ptr() *int {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// MarshalBSONValue writes an int32, or null when absent.
func (n NullInt) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !n.Valid {
		return bsontype.Null, nil, nil
	}
	if n.Value > math.MaxInt32 || n.Value < math.MinInt32 {
		return bsontype.Int64, bsoncore.AppendInt64(nil, int64(n.Value)), nil
	}
	return bsontype.Int32, bsoncore.AppendInt32(nil, int32(n.Value)), nil
}

// UnmarshalBSONValue accepts int32 and int64; everything else is absent.
func (n *NullInt) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*n = NullInt{}
	switch t {
	case bsontype.Int32:
		if v, _, ok := bsoncore.ReadInt32(data); ok {
			*n = Int(int(v))
		}
	case bsontype.Int64:
		if v, _, ok := bsoncore.ReadInt64(data); ok {
			*n = Int(int(v))
		}
	}
	return nil
}

// MarshalJSON writes a number or null.
func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts a number or null.
func (n *NullInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*n = NullInt{}
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Int(v)
	return nil
}

// NullFloat is a float that may be absent. Integer BSON values are widened;
// strings and other types decode as absent.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a present NullFloat.
func Float(v float64) NullFloat { return NullFloat{Value: v, Valid: true} }

// IsZero reports absence.
func (n NullFloat) IsZero() bool { return !n.Valid }

// Ptr returns nil when absent.
func (n NullFloat) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// MarshalBSONValue writes a double, or null when absent.
func (n NullFloat) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !n.Valid {
		return bsontype.Null, nil, nil
	}
	return bsontype.Double, bsoncore.AppendDouble(nil, n.Value), nil
}

// UnmarshalBSONValue accepts double, int32 and int64.
func (n *NullFloat) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*n = NullFloat{}
	switch t {
	case bsontype.Double:
		if v, _, ok := bsoncore.ReadDouble(data); ok {
			*n = Float(v)
		}
	case bsontype.Int32:
		if v, _, ok := bsoncore.ReadInt32(data); ok {
			*n = Float(float64(v))
		}
	case bsontype.Int64:
		if v, _, ok := bsoncore.ReadInt64(data); ok {
			*n = Float(float64(v))
		}
	}
	return nil
}

// MarshalJSON writes a number or null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts a number or null.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}
